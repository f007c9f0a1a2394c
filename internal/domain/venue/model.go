package venue

import (
	"fmt"
	"time"
)

// Venue is a team's home ground. A team owns at most one venue.
type Venue struct {
	ID          int64
	TeamID      int64
	Name        string
	Address     *string
	City        *string
	Capacity    *int
	Surface     *string
	Image       *string
	LastUpdated time.Time
}

func (v Venue) Validate() error {
	if v.ID <= 0 {
		return fmt.Errorf("venue id is required")
	}
	if v.TeamID <= 0 {
		return fmt.Errorf("venue team id is required")
	}
	if v.Name == "" {
		return fmt.Errorf("venue name is required")
	}
	if v.Capacity != nil && *v.Capacity < 0 {
		return fmt.Errorf("venue capacity cannot be negative")
	}

	return nil
}
