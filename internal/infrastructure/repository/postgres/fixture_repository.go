package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/football-data/internal/domain/fixture"
	qb "github.com/riskibarqy/football-data/internal/platform/querybuilder"
)

type FixtureRepository struct {
	q Querier
}

func NewFixtureRepository(q Querier) *FixtureRepository {
	return &FixtureRepository{q: q}
}

func (r *FixtureRepository) Upsert(ctx context.Context, f fixture.Fixture) error {
	model := fixtureToTableModel(f)
	if model.Timezone == "" {
		model.Timezone = "UTC"
	}
	if model.StatusShort == "" {
		model.StatusShort = "NS"
	}
	if model.LastUpdated.IsZero() {
		model.LastUpdated = time.Now().UTC()
	}

	query, args, err := qb.InsertModel("fixtures", model, `ON CONFLICT (id)
		DO UPDATE SET referee = EXCLUDED.referee, timezone = EXCLUDED.timezone,
		kickoff_at = EXCLUDED.kickoff_at, league_id = EXCLUDED.league_id,
		season_id = EXCLUDED.season_id, round = EXCLUDED.round,
		home_team_id = EXCLUDED.home_team_id, away_team_id = EXCLUDED.away_team_id,
		venue_id = EXCLUDED.venue_id, status_long = EXCLUDED.status_long,
		status_short = EXCLUDED.status_short, elapsed = EXCLUDED.elapsed,
		goals_home = EXCLUDED.goals_home, goals_away = EXCLUDED.goals_away,
		score_halftime_home = EXCLUDED.score_halftime_home, score_halftime_away = EXCLUDED.score_halftime_away,
		score_fulltime_home = EXCLUDED.score_fulltime_home, score_fulltime_away = EXCLUDED.score_fulltime_away,
		score_extratime_home = EXCLUDED.score_extratime_home, score_extratime_away = EXCLUDED.score_extratime_away,
		score_penalty_home = EXCLUDED.score_penalty_home, score_penalty_away = EXCLUDED.score_penalty_away,
		last_updated = EXCLUDED.last_updated`)
	if err != nil {
		return fmt.Errorf("build upsert fixture query: %w", err)
	}

	return withSavepoint(ctx, r.q, func() error {
		if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert fixture: %w", err)
		}
		return nil
	})
}

func (r *FixtureRepository) GetByID(ctx context.Context, id int64) (fixture.Fixture, bool, error) {
	query, args, err := qb.Select("*").From("fixtures").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fixture.Fixture{}, false, fmt.Errorf("build get fixture query: %w", err)
	}

	var row fixtureTableModel
	if err := r.q.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fixture.Fixture{}, false, nil
		}
		return fixture.Fixture{}, false, fmt.Errorf("get fixture by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *FixtureRepository) List(ctx context.Context, filter fixture.Filter) ([]fixture.Fixture, error) {
	builder := qb.Select("*").From("fixtures").OrderBy("kickoff_at ASC")
	if filter.LeagueID > 0 {
		builder.Where(qb.Eq("league_id", filter.LeagueID))
	}
	if !filter.From.IsZero() {
		builder.Where(qb.Expr("kickoff_at >= ?", filter.From.UTC()))
	}
	if !filter.To.IsZero() {
		builder.Where(qb.Expr("kickoff_at < ?", filter.To.UTC()))
	}
	if filter.Limit > 0 {
		builder.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		builder.Offset(filter.Offset)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fixtures query: %w", err)
	}

	var rows []fixtureTableModel
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select fixtures: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
