package league

import (
	"fmt"
	"time"
)

// TypeUnknown is assigned when a payload references a league without
// describing it.
const TypeUnknown = "Unknown"

// League is a competition keyed by the provider's numeric id.
type League struct {
	ID          int64
	Name        string
	Type        string
	Logo        *string
	CountryName string
	LastUpdated time.Time
}

func (l League) Validate() error {
	if l.ID <= 0 {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if l.CountryName == "" {
		return fmt.Errorf("league country is required")
	}

	return nil
}
