package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/football-data/internal/domain/venue"
	qb "github.com/riskibarqy/football-data/internal/platform/querybuilder"
)

type VenueRepository struct {
	q Querier
}

func NewVenueRepository(q Querier) *VenueRepository {
	return &VenueRepository{q: q}
}

func (r *VenueRepository) Upsert(ctx context.Context, v venue.Venue) error {
	model := venueTableModel{
		ID:          v.ID,
		TeamID:      v.TeamID,
		Name:        v.Name,
		Address:     v.Address,
		City:        v.City,
		Capacity:    v.Capacity,
		Surface:     v.Surface,
		Image:       v.Image,
		LastUpdated: v.LastUpdated,
	}
	if model.LastUpdated.IsZero() {
		model.LastUpdated = time.Now().UTC()
	}

	query, args, err := qb.InsertModel("venues", model, `ON CONFLICT (id)
		DO UPDATE SET team_id = EXCLUDED.team_id, name = EXCLUDED.name, address = EXCLUDED.address,
		city = EXCLUDED.city, capacity = EXCLUDED.capacity, surface = EXCLUDED.surface,
		image = EXCLUDED.image, last_updated = EXCLUDED.last_updated`)
	if err != nil {
		return fmt.Errorf("build upsert venue query: %w", err)
	}

	return withSavepoint(ctx, r.q, func() error {
		if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert venue: %w", err)
		}
		return nil
	})
}

func (r *VenueRepository) GetByTeam(ctx context.Context, teamID int64) (venue.Venue, bool, error) {
	query, args, err := qb.Select("*").From("venues").
		Where(qb.Eq("team_id", teamID)).
		ToSQL()
	if err != nil {
		return venue.Venue{}, false, fmt.Errorf("build get venue query: %w", err)
	}

	var row venueTableModel
	if err := r.q.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return venue.Venue{}, false, nil
		}
		return venue.Venue{}, false, fmt.Errorf("get venue by team: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *VenueRepository) DeleteUpdatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return deleteUpdatedBefore(ctx, r.q, "venues", cutoff)
}
