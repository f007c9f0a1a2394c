package app

import (
	"context"

	"github.com/riskibarqy/football-data/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/football-data/internal/usecase"
)

// txRunner adapts the postgres store's transaction scope to the
// repository bundle the use cases consume.
type txRunner struct {
	store *postgres.Store
}

func (t *txRunner) WithinTx(ctx context.Context, fn func(usecase.Repositories) error) error {
	return t.store.WithinTx(ctx, func(repos *postgres.Repositories) error {
		return fn(usecaseRepositories(repos))
	})
}

func usecaseRepositories(r *postgres.Repositories) usecase.Repositories {
	return usecase.Repositories{
		Countries: r.Countries,
		Leagues:   r.Leagues,
		Seasons:   r.Seasons,
		Teams:     r.Teams,
		Venues:    r.Venues,
		Players:   r.Players,
		Fixtures:  r.Fixtures,
	}
}
