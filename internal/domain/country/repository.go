package country

import (
	"context"
	"time"
)

// Repository describes country persistence needs from use cases.
type Repository interface {
	Upsert(ctx context.Context, c Country) error
	GetByName(ctx context.Context, name string) (Country, bool, error)
	DeleteUpdatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
