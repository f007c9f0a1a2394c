package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/football-data/internal/domain/league"
	qb "github.com/riskibarqy/football-data/internal/platform/querybuilder"
)

type LeagueRepository struct {
	q Querier
}

func NewLeagueRepository(q Querier) *LeagueRepository {
	return &LeagueRepository{q: q}
}

func (r *LeagueRepository) Upsert(ctx context.Context, l league.League) error {
	model := leagueTableModel{
		ID:          l.ID,
		Name:        l.Name,
		Type:        l.Type,
		Logo:        l.Logo,
		CountryName: l.CountryName,
		LastUpdated: l.LastUpdated,
	}
	if model.Type == "" {
		model.Type = league.TypeUnknown
	}
	if model.LastUpdated.IsZero() {
		model.LastUpdated = time.Now().UTC()
	}

	query, args, err := qb.InsertModel("leagues", model, `ON CONFLICT (id)
		DO UPDATE SET name = EXCLUDED.name, type = EXCLUDED.type, logo = EXCLUDED.logo,
		country_name = EXCLUDED.country_name, last_updated = EXCLUDED.last_updated`)
	if err != nil {
		return fmt.Errorf("build upsert league query: %w", err)
	}

	return withSavepoint(ctx, r.q, func() error {
		if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert league: %w", err)
		}
		return nil
	})
}

func (r *LeagueRepository) GetByID(ctx context.Context, id int64) (league.League, bool, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league query: %w", err)
	}

	var row leagueTableModel
	if err := r.q.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *LeagueRepository) List(ctx context.Context, filter league.Filter) ([]league.League, error) {
	builder := qb.Select("*").From("leagues").OrderBy("name ASC")
	if filter.Name != "" {
		builder.Where(qb.Expr("name ILIKE ?", "%"+filter.Name+"%"))
	}
	if filter.Limit > 0 {
		builder.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		builder.Offset(filter.Offset)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select leagues query: %w", err)
	}

	var rows []leagueTableModel
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select leagues: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *LeagueRepository) DeleteUpdatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return deleteUpdatedBefore(ctx, r.q, "leagues", cutoff)
}
