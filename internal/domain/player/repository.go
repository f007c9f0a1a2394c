package player

import (
	"context"
	"time"
)

// Filter narrows player listings.
type Filter struct {
	Name   string
	TeamID int64
	Limit  int
	Offset int
}

// Repository describes player persistence needs from use cases.
type Repository interface {
	Upsert(ctx context.Context, p Player) error
	GetByID(ctx context.Context, id int64) (Player, bool, error)
	List(ctx context.Context, filter Filter) ([]Player, error)
	DeleteUpdatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
