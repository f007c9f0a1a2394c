package fixture

import (
	"context"
	"time"
)

// Filter narrows fixture listings. From and To bound the kickoff
// timestamp; a zero value leaves that side unbounded.
type Filter struct {
	LeagueID int64
	From     time.Time
	To       time.Time
	Limit    int
	Offset   int
}

// Repository describes fixture persistence needs from use cases.
// Fixtures are never swept directly; they disappear via cascade when
// their league, season or teams are deleted.
type Repository interface {
	Upsert(ctx context.Context, f Fixture) error
	GetByID(ctx context.Context, id int64) (Fixture, bool, error)
	List(ctx context.Context, filter Filter) ([]Fixture, error)
}
