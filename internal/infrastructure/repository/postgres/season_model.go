package postgres

import (
	"time"

	"github.com/riskibarqy/football-data/internal/domain/season"
)

type seasonTableModel struct {
	ID          int64     `db:"id"`
	LeagueID    int64     `db:"league_id"`
	Year        int       `db:"year"`
	StartDate   time.Time `db:"start_date"`
	EndDate     time.Time `db:"end_date"`
	Current     bool      `db:"current"`
	LastUpdated time.Time `db:"last_updated"`
}

// seasonInsertModel omits the serial id column.
type seasonInsertModel struct {
	LeagueID    int64     `db:"league_id"`
	Year        int       `db:"year"`
	StartDate   time.Time `db:"start_date"`
	EndDate     time.Time `db:"end_date"`
	Current     bool      `db:"current"`
	LastUpdated time.Time `db:"last_updated"`
}

func (m seasonTableModel) toDomain() season.Season {
	return season.Season{
		ID:          m.ID,
		LeagueID:    m.LeagueID,
		Year:        m.Year,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		Current:     m.Current,
		LastUpdated: m.LastUpdated,
	}
}
