package fixture

import (
	"fmt"
	"time"
)

// Score holds one side's goal tallies across the full breakdown. Every
// field is independently nullable; list payloads only carry the regular
// total.
type Score struct {
	Goals     *int
	Halftime  *int
	Fulltime  *int
	Extratime *int
	Penalty   *int
}

// Fixture represents one match keyed by the provider's numeric id.
type Fixture struct {
	ID          int64
	Referee     *string
	Timezone    string
	KickoffAt   time.Time
	LeagueID    int64
	SeasonID    int64
	Round       *string
	HomeTeamID  int64
	AwayTeamID  int64
	VenueID     *int64
	StatusLong  *string
	StatusShort string
	Elapsed     *int
	Home        Score
	Away        Score
	LastUpdated time.Time
}

func (f Fixture) Validate() error {
	if f.ID <= 0 {
		return fmt.Errorf("fixture id is required")
	}
	if f.LeagueID <= 0 {
		return fmt.Errorf("fixture league id is required")
	}
	if f.SeasonID <= 0 {
		return fmt.Errorf("fixture season id is required")
	}
	if f.HomeTeamID <= 0 || f.AwayTeamID <= 0 {
		return fmt.Errorf("fixture team ids are required")
	}
	if f.KickoffAt.IsZero() {
		return fmt.Errorf("fixture kickoff is required")
	}
	for _, side := range []Score{f.Home, f.Away} {
		for _, v := range []*int{side.Goals, side.Halftime, side.Fulltime, side.Extratime, side.Penalty} {
			if v != nil && *v < 0 {
				return fmt.Errorf("fixture score cannot be negative")
			}
		}
	}

	return nil
}
