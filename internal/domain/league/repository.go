package league

import (
	"context"
	"time"
)

// Filter narrows league listings.
type Filter struct {
	Name   string
	Limit  int
	Offset int
}

// Repository describes league persistence needs from use cases.
type Repository interface {
	Upsert(ctx context.Context, l League) error
	GetByID(ctx context.Context, id int64) (League, bool, error)
	List(ctx context.Context, filter Filter) ([]League, error)
	DeleteUpdatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
