package postgres

import (
	"time"

	"github.com/riskibarqy/football-data/internal/domain/league"
)

type leagueTableModel struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Type        string    `db:"type"`
	Logo        *string   `db:"logo"`
	CountryName string    `db:"country_name"`
	LastUpdated time.Time `db:"last_updated"`
}

func (m leagueTableModel) toDomain() league.League {
	return league.League{
		ID:          m.ID,
		Name:        m.Name,
		Type:        m.Type,
		Logo:        m.Logo,
		CountryName: m.CountryName,
		LastUpdated: m.LastUpdated,
	}
}
