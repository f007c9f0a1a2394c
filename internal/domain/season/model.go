package season

import (
	"fmt"
	"time"
)

// Season is one playing year of a league. The id is local; the natural
// key is (league, year).
type Season struct {
	ID          int64
	LeagueID    int64
	Year        int
	StartDate   time.Time
	EndDate     time.Time
	Current     bool
	LastUpdated time.Time
}

func (s Season) Validate() error {
	if s.LeagueID <= 0 {
		return fmt.Errorf("season league id is required")
	}
	if s.Year <= 0 {
		return fmt.Errorf("season year is required")
	}
	if !s.StartDate.Before(s.EndDate) {
		return fmt.Errorf("season start date must be before end date")
	}

	return nil
}
