package postgres

import (
	"time"

	"github.com/riskibarqy/football-data/internal/domain/team"
)

type teamTableModel struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Code        *string   `db:"code"`
	CountryName string    `db:"country_name"`
	Founded     *int      `db:"founded"`
	National    bool      `db:"national"`
	Logo        *string   `db:"logo"`
	LastUpdated time.Time `db:"last_updated"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:          m.ID,
		Name:        m.Name,
		Code:        m.Code,
		CountryName: m.CountryName,
		Founded:     m.Founded,
		National:    m.National,
		Logo:        m.Logo,
		LastUpdated: m.LastUpdated,
	}
}
