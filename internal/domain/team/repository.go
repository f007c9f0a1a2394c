package team

import (
	"context"
	"time"
)

// Filter narrows team listings.
type Filter struct {
	Name    string
	Country string
	Limit   int
	Offset  int
}

// Repository describes team persistence needs from use cases.
type Repository interface {
	Upsert(ctx context.Context, t Team) error
	GetByID(ctx context.Context, id int64) (Team, bool, error)
	List(ctx context.Context, filter Filter) ([]Team, error)
	DeleteUpdatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
