package season

import (
	"context"
	"time"
)

// Repository describes season persistence needs from use cases.
// Upsert resolves conflicts on (league, year) and returns the row's
// local id so fixtures can reference it.
type Repository interface {
	Upsert(ctx context.Context, s Season) (int64, error)
	GetByLeagueYear(ctx context.Context, leagueID int64, year int) (Season, bool, error)
	ListByLeague(ctx context.Context, leagueID int64) ([]Season, error)
	DeleteUpdatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
