package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/football-data/internal/domain/player"
	qb "github.com/riskibarqy/football-data/internal/platform/querybuilder"
)

type PlayerRepository struct {
	q Querier
}

func NewPlayerRepository(q Querier) *PlayerRepository {
	return &PlayerRepository{q: q}
}

func (r *PlayerRepository) Upsert(ctx context.Context, p player.Player) error {
	model := playerTableModel{
		ID:           p.ID,
		TeamID:       p.TeamID,
		Name:         p.Name,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Age:          p.Age,
		BirthDate:    p.BirthDate,
		BirthPlace:   p.BirthPlace,
		BirthCountry: p.BirthCountry,
		Nationality:  p.Nationality,
		Height:       p.Height,
		Weight:       p.Weight,
		Injured:      p.Injured,
		Photo:        p.Photo,
		LastUpdated:  p.LastUpdated,
	}
	if model.LastUpdated.IsZero() {
		model.LastUpdated = time.Now().UTC()
	}

	query, args, err := qb.InsertModel("players", model, `ON CONFLICT (id)
		DO UPDATE SET team_id = EXCLUDED.team_id, name = EXCLUDED.name, firstname = EXCLUDED.firstname,
		lastname = EXCLUDED.lastname, age = EXCLUDED.age, birth_date = EXCLUDED.birth_date,
		birth_place = EXCLUDED.birth_place, birth_country = EXCLUDED.birth_country,
		nationality = EXCLUDED.nationality, height = EXCLUDED.height, weight = EXCLUDED.weight,
		injured = EXCLUDED.injured, photo = EXCLUDED.photo, last_updated = EXCLUDED.last_updated`)
	if err != nil {
		return fmt.Errorf("build upsert player query: %w", err)
	}

	return withSavepoint(ctx, r.q, func() error {
		if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert player: %w", err)
		}
		return nil
	})
}

func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (player.Player, bool, error) {
	query, args, err := qb.Select("*").From("players").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player query: %w", err)
	}

	var row playerTableModel
	if err := r.q.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *PlayerRepository) List(ctx context.Context, filter player.Filter) ([]player.Player, error) {
	builder := qb.Select("*").From("players").OrderBy("name ASC")
	if filter.Name != "" {
		builder.Where(qb.Expr("name ILIKE ?", "%"+filter.Name+"%"))
	}
	if filter.TeamID > 0 {
		builder.Where(qb.Eq("team_id", filter.TeamID))
	}
	if filter.Limit > 0 {
		builder.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		builder.Offset(filter.Offset)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerRepository) DeleteUpdatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return deleteUpdatedBefore(ctx, r.q, "players", cutoff)
}
