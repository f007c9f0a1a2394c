package postgres

import (
	"time"

	"github.com/riskibarqy/football-data/internal/domain/country"
)

type countryTableModel struct {
	Name        string    `db:"name"`
	Code        *string   `db:"code"`
	Flag        *string   `db:"flag"`
	LastUpdated time.Time `db:"last_updated"`
}

func (m countryTableModel) toDomain() country.Country {
	return country.Country{
		Name:        m.Name,
		Code:        m.Code,
		Flag:        m.Flag,
		LastUpdated: m.LastUpdated,
	}
}
