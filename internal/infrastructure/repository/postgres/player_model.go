package postgres

import (
	"time"

	"github.com/riskibarqy/football-data/internal/domain/player"
)

type playerTableModel struct {
	ID           int64      `db:"id"`
	TeamID       int64      `db:"team_id"`
	Name         string     `db:"name"`
	FirstName    *string    `db:"firstname"`
	LastName     *string    `db:"lastname"`
	Age          *int       `db:"age"`
	BirthDate    *time.Time `db:"birth_date"`
	BirthPlace   *string    `db:"birth_place"`
	BirthCountry *string    `db:"birth_country"`
	Nationality  *string    `db:"nationality"`
	Height       *string    `db:"height"`
	Weight       *string    `db:"weight"`
	Injured      bool       `db:"injured"`
	Photo        *string    `db:"photo"`
	LastUpdated  time.Time  `db:"last_updated"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:           m.ID,
		TeamID:       m.TeamID,
		Name:         m.Name,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Age:          m.Age,
		BirthDate:    m.BirthDate,
		BirthPlace:   m.BirthPlace,
		BirthCountry: m.BirthCountry,
		Nationality:  m.Nationality,
		Height:       m.Height,
		Weight:       m.Weight,
		Injured:      m.Injured,
		Photo:        m.Photo,
		LastUpdated:  m.LastUpdated,
	}
}
