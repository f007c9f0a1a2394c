package postgres

import (
	"time"

	"github.com/riskibarqy/football-data/internal/domain/venue"
)

type venueTableModel struct {
	ID          int64     `db:"id"`
	TeamID      int64     `db:"team_id"`
	Name        string    `db:"name"`
	Address     *string   `db:"address"`
	City        *string   `db:"city"`
	Capacity    *int      `db:"capacity"`
	Surface     *string   `db:"surface"`
	Image       *string   `db:"image"`
	LastUpdated time.Time `db:"last_updated"`
}

func (m venueTableModel) toDomain() venue.Venue {
	return venue.Venue{
		ID:          m.ID,
		TeamID:      m.TeamID,
		Name:        m.Name,
		Address:     m.Address,
		City:        m.City,
		Capacity:    m.Capacity,
		Surface:     m.Surface,
		Image:       m.Image,
		LastUpdated: m.LastUpdated,
	}
}
