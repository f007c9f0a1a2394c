package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/football-data/internal/domain/season"
	qb "github.com/riskibarqy/football-data/internal/platform/querybuilder"
)

type SeasonRepository struct {
	q Querier
}

func NewSeasonRepository(q Querier) *SeasonRepository {
	return &SeasonRepository{q: q}
}

// Upsert resolves conflicts on (league_id, year) and returns the
// surviving row's id.
func (r *SeasonRepository) Upsert(ctx context.Context, s season.Season) (int64, error) {
	model := seasonInsertModel{
		LeagueID:    s.LeagueID,
		Year:        s.Year,
		StartDate:   s.StartDate,
		EndDate:     s.EndDate,
		Current:     s.Current,
		LastUpdated: s.LastUpdated,
	}
	if model.LastUpdated.IsZero() {
		model.LastUpdated = time.Now().UTC()
	}

	query, args, err := qb.InsertModel("seasons", model, `ON CONFLICT (league_id, year)
		DO UPDATE SET start_date = EXCLUDED.start_date, end_date = EXCLUDED.end_date,
		current = EXCLUDED.current, last_updated = EXCLUDED.last_updated
		RETURNING id`)
	if err != nil {
		return 0, fmt.Errorf("build upsert season query: %w", err)
	}

	var id int64
	err = withSavepoint(ctx, r.q, func() error {
		if err := r.q.GetContext(ctx, &id, query, args...); err != nil {
			return fmt.Errorf("upsert season: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *SeasonRepository) GetByLeagueYear(ctx context.Context, leagueID int64, year int) (season.Season, bool, error) {
	query, args, err := qb.Select("*").From("seasons").
		Where(qb.Eq("league_id", leagueID), qb.Eq("year", year)).
		ToSQL()
	if err != nil {
		return season.Season{}, false, fmt.Errorf("build get season query: %w", err)
	}

	var row seasonTableModel
	if err := r.q.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, fmt.Errorf("get season by league and year: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *SeasonRepository) ListByLeague(ctx context.Context, leagueID int64) ([]season.Season, error) {
	query, args, err := qb.Select("*").From("seasons").
		Where(qb.Eq("league_id", leagueID)).
		OrderBy("year DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select seasons query: %w", err)
	}

	var rows []seasonTableModel
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select seasons by league: %w", err)
	}

	out := make([]season.Season, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *SeasonRepository) DeleteUpdatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return deleteUpdatedBefore(ctx, r.q, "seasons", cutoff)
}
