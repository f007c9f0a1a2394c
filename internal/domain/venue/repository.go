package venue

import (
	"context"
	"time"
)

// Repository describes venue persistence needs from use cases.
type Repository interface {
	Upsert(ctx context.Context, v Venue) error
	GetByTeam(ctx context.Context, teamID int64) (Venue, bool, error)
	DeleteUpdatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
