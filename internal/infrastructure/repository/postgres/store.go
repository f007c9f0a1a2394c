package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Querier is the query surface repositories need. Both *sqlx.DB and
// *sqlx.Tx satisfy it, so the same repository code runs standalone or
// inside a transaction.
type Querier interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

// Repositories bundles every table repository over one Querier.
type Repositories struct {
	Countries *CountryRepository
	Leagues   *LeagueRepository
	Seasons   *SeasonRepository
	Teams     *TeamRepository
	Venues    *VenueRepository
	Players   *PlayerRepository
	Fixtures  *FixtureRepository
}

func NewRepositories(q Querier) *Repositories {
	return &Repositories{
		Countries: NewCountryRepository(q),
		Leagues:   NewLeagueRepository(q),
		Seasons:   NewSeasonRepository(q),
		Teams:     NewTeamRepository(q),
		Venues:    NewVenueRepository(q),
		Players:   NewPlayerRepository(q),
		Fixtures:  NewFixtureRepository(q),
	}
}

// Store owns the database handle and hands out repositories, either
// auto-committing or scoped to one transaction.
type Store struct {
	db    *sqlx.DB
	repos *Repositories
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db, repos: NewRepositories(db)}
}

func (s *Store) Repositories() *Repositories {
	return s.repos
}

// WithinTx runs fn with repositories bound to a single transaction.
// The transaction commits only when fn returns nil.
func (s *Store) WithinTx(ctx context.Context, fn func(*Repositories) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(NewRepositories(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("rollback transaction: %v (original: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
