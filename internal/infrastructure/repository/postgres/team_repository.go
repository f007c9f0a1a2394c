package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/football-data/internal/domain/team"
	qb "github.com/riskibarqy/football-data/internal/platform/querybuilder"
)

type TeamRepository struct {
	q Querier
}

func NewTeamRepository(q Querier) *TeamRepository {
	return &TeamRepository{q: q}
}

func (r *TeamRepository) Upsert(ctx context.Context, t team.Team) error {
	model := teamTableModel{
		ID:          t.ID,
		Name:        t.Name,
		Code:        t.Code,
		CountryName: t.CountryName,
		Founded:     t.Founded,
		National:    t.National,
		Logo:        t.Logo,
		LastUpdated: t.LastUpdated,
	}
	if model.LastUpdated.IsZero() {
		model.LastUpdated = time.Now().UTC()
	}

	query, args, err := qb.InsertModel("teams", model, `ON CONFLICT (id)
		DO UPDATE SET name = EXCLUDED.name, code = EXCLUDED.code, country_name = EXCLUDED.country_name,
		founded = EXCLUDED.founded, national = EXCLUDED.national, logo = EXCLUDED.logo,
		last_updated = EXCLUDED.last_updated`)
	if err != nil {
		return fmt.Errorf("build upsert team query: %w", err)
	}

	return withSavepoint(ctx, r.q, func() error {
		if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert team: %w", err)
		}
		return nil
	})
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team query: %w", err)
	}

	var row teamTableModel
	if err := r.q.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *TeamRepository) List(ctx context.Context, filter team.Filter) ([]team.Team, error) {
	builder := qb.Select("*").From("teams").OrderBy("name ASC")
	if filter.Name != "" {
		builder.Where(qb.Expr("name ILIKE ?", "%"+filter.Name+"%"))
	}
	if filter.Country != "" {
		builder.Where(qb.Eq("country_name", filter.Country))
	}
	if filter.Limit > 0 {
		builder.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		builder.Offset(filter.Offset)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TeamRepository) DeleteUpdatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return deleteUpdatedBefore(ctx, r.q, "teams", cutoff)
}
