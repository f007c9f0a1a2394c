package team

import (
	"fmt"
	"time"
)

// Team is a club or national side keyed by the provider's numeric id.
type Team struct {
	ID          int64
	Name        string
	Code        *string
	CountryName string
	Founded     *int
	National    bool
	Logo        *string
	LastUpdated time.Time
}

func (t Team) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.CountryName == "" {
		return fmt.Errorf("team country is required")
	}

	return nil
}
