package usecase

import (
	"context"

	"github.com/riskibarqy/football-data/internal/domain/country"
	"github.com/riskibarqy/football-data/internal/domain/fixture"
	"github.com/riskibarqy/football-data/internal/domain/league"
	"github.com/riskibarqy/football-data/internal/domain/player"
	"github.com/riskibarqy/football-data/internal/domain/season"
	"github.com/riskibarqy/football-data/internal/domain/team"
	"github.com/riskibarqy/football-data/internal/domain/venue"
)

// Repositories bundles the domain repositories one unit of work sees.
// Inside a sync run they are all bound to the same transaction.
type Repositories struct {
	Countries country.Repository
	Leagues   league.Repository
	Seasons   season.Repository
	Teams     team.Repository
	Venues    venue.Repository
	Players   player.Repository
	Fixtures  fixture.Repository
}

// TxRunner runs a unit of work inside one database transaction. The
// transaction commits only when fn returns nil.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(Repositories) error) error
}
