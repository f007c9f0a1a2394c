package player

import (
	"fmt"
	"time"
)

// Player is an athlete keyed by the provider's numeric id. A player
// belongs to exactly one tracked team at a time.
type Player struct {
	ID           int64
	TeamID       int64
	Name         string
	FirstName    *string
	LastName     *string
	Age          *int
	BirthDate    *time.Time
	BirthPlace   *string
	BirthCountry *string
	Nationality  *string
	Height       *string
	Weight       *string
	Injured      bool
	Photo        *string
	LastUpdated  time.Time
}

func (p Player) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("player id is required")
	}
	if p.TeamID <= 0 {
		return fmt.Errorf("player team id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}

	return nil
}
