package country

import (
	"fmt"
	"time"
)

// Country is reference data keyed by the provider's country name.
type Country struct {
	Name        string
	Code        *string
	Flag        *string
	LastUpdated time.Time
}

func (c Country) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("country name is required")
	}

	return nil
}
