package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/football-data/internal/domain/fixture"
	"github.com/riskibarqy/football-data/internal/domain/league"
	"github.com/riskibarqy/football-data/internal/domain/player"
	"github.com/riskibarqy/football-data/internal/domain/season"
	"github.com/riskibarqy/football-data/internal/domain/team"
	"github.com/riskibarqy/football-data/internal/domain/venue"
	"github.com/riskibarqy/football-data/internal/platform/logging"
)

const (
	defaultPageSize    = 20
	maxPageSize        = 100
	searchKindLimit    = 10
	recentFixtureLimit = 10
)

type LeagueQuery struct {
	Search string
	Limit  int
	Offset int
}

type TeamQuery struct {
	Search  string
	Country string
	Limit   int
	Offset  int
}

type PlayerQuery struct {
	Search string
	TeamID int64
	Limit  int
	Offset int
}

type FixtureQuery struct {
	LeagueID int64
	From     time.Time
	To       time.Time
	Limit    int
	Offset   int
}

// LeagueDetail is a league with its season history and the most
// recently played fixtures.
type LeagueDetail struct {
	League         league.League
	Seasons        []season.Season
	RecentFixtures []fixture.Fixture
}

// TeamDetail is a team with its home ground and current squad.
type TeamDetail struct {
	Team    team.Team
	Venue   *venue.Venue
	Players []player.Player
}

// SearchResult groups cross-entity name matches.
type SearchResult struct {
	Leagues []league.League
	Teams   []team.Team
	Players []player.Player
}

type BrowserConfig struct {
	Repos         Repositories
	Logger        *logging.Logger
	SearchWorkers int
}

// Browser serves the read-only lookup surface over the relational
// store. Cross-entity search fans out on a shared worker pool.
type Browser struct {
	repos  Repositories
	logger *logging.Logger
	pool   *ants.Pool
}

func NewBrowser(cfg BrowserConfig) (*Browser, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	workers := cfg.SearchWorkers
	if workers <= 0 {
		workers = 3
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create search pool: %w", err)
	}

	return &Browser{
		repos:  cfg.Repos,
		logger: logger,
		pool:   pool,
	}, nil
}

func (b *Browser) Close() {
	b.pool.Release()
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (b *Browser) Leagues(ctx context.Context, q LeagueQuery) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "Browser.Leagues")
	defer span.End()

	limit, offset := clampPage(q.Limit, q.Offset)
	return b.repos.Leagues.List(ctx, league.Filter{
		Name:   strings.TrimSpace(q.Search),
		Limit:  limit,
		Offset: offset,
	})
}

func (b *Browser) LeagueDetail(ctx context.Context, id int64) (LeagueDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "Browser.LeagueDetail")
	defer span.End()

	if id <= 0 {
		return LeagueDetail{}, fmt.Errorf("%w: league id must be positive", ErrInvalidInput)
	}

	l, found, err := b.repos.Leagues.GetByID(ctx, id)
	if err != nil {
		return LeagueDetail{}, err
	}
	if !found {
		return LeagueDetail{}, fmt.Errorf("%w: league %d", ErrNotFound, id)
	}

	seasons, err := b.repos.Seasons.ListByLeague(ctx, id)
	if err != nil {
		return LeagueDetail{}, err
	}
	recent, err := b.repos.Fixtures.List(ctx, fixture.Filter{
		LeagueID: id,
		Limit:    recentFixtureLimit,
	})
	if err != nil {
		return LeagueDetail{}, err
	}

	return LeagueDetail{League: l, Seasons: seasons, RecentFixtures: recent}, nil
}

func (b *Browser) Teams(ctx context.Context, q TeamQuery) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "Browser.Teams")
	defer span.End()

	limit, offset := clampPage(q.Limit, q.Offset)
	return b.repos.Teams.List(ctx, team.Filter{
		Name:    strings.TrimSpace(q.Search),
		Country: strings.TrimSpace(q.Country),
		Limit:   limit,
		Offset:  offset,
	})
}

func (b *Browser) TeamDetail(ctx context.Context, id int64) (TeamDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "Browser.TeamDetail")
	defer span.End()

	if id <= 0 {
		return TeamDetail{}, fmt.Errorf("%w: team id must be positive", ErrInvalidInput)
	}

	t, found, err := b.repos.Teams.GetByID(ctx, id)
	if err != nil {
		return TeamDetail{}, err
	}
	if !found {
		return TeamDetail{}, fmt.Errorf("%w: team %d", ErrNotFound, id)
	}

	detail := TeamDetail{Team: t}
	if v, found, err := b.repos.Venues.GetByTeam(ctx, id); err != nil {
		return TeamDetail{}, err
	} else if found {
		detail.Venue = &v
	}

	detail.Players, err = b.repos.Players.List(ctx, player.Filter{TeamID: id})
	if err != nil {
		return TeamDetail{}, err
	}
	return detail, nil
}

func (b *Browser) Players(ctx context.Context, q PlayerQuery) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "Browser.Players")
	defer span.End()

	limit, offset := clampPage(q.Limit, q.Offset)
	return b.repos.Players.List(ctx, player.Filter{
		Name:   strings.TrimSpace(q.Search),
		TeamID: q.TeamID,
		Limit:  limit,
		Offset: offset,
	})
}

func (b *Browser) Fixtures(ctx context.Context, q FixtureQuery) ([]fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "Browser.Fixtures")
	defer span.End()

	if !q.From.IsZero() && !q.To.IsZero() && q.To.Before(q.From) {
		return nil, fmt.Errorf("%w: fixture window end precedes start", ErrInvalidInput)
	}

	limit, offset := clampPage(q.Limit, q.Offset)
	return b.repos.Fixtures.List(ctx, fixture.Filter{
		LeagueID: q.LeagueID,
		From:     q.From,
		To:       q.To,
		Limit:    limit,
		Offset:   offset,
	})
}

func (b *Browser) FixtureDetail(ctx context.Context, id int64) (fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "Browser.FixtureDetail")
	defer span.End()

	if id <= 0 {
		return fixture.Fixture{}, fmt.Errorf("%w: fixture id must be positive", ErrInvalidInput)
	}

	f, found, err := b.repos.Fixtures.GetByID(ctx, id)
	if err != nil {
		return fixture.Fixture{}, err
	}
	if !found {
		return fixture.Fixture{}, fmt.Errorf("%w: fixture %d", ErrNotFound, id)
	}
	return f, nil
}

// Search matches leagues, teams and players by name in parallel. The
// first lookup error wins; partial results are discarded.
func (b *Browser) Search(ctx context.Context, query string) (SearchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "Browser.Search")
	defer span.End()

	query = strings.TrimSpace(query)
	if query == "" {
		return SearchResult{}, fmt.Errorf("%w: search query is required", ErrInvalidInput)
	}

	var (
		result SearchResult
		wg     sync.WaitGroup
		mu     sync.Mutex
		first  error
	)

	fail := func(err error) {
		mu.Lock()
		if first == nil {
			first = err
		}
		mu.Unlock()
	}

	tasks := []func(){
		func() {
			leagues, err := b.repos.Leagues.List(ctx, league.Filter{Name: query, Limit: searchKindLimit})
			if err != nil {
				fail(err)
				return
			}
			result.Leagues = leagues
		},
		func() {
			teams, err := b.repos.Teams.List(ctx, team.Filter{Name: query, Limit: searchKindLimit})
			if err != nil {
				fail(err)
				return
			}
			result.Teams = teams
		},
		func() {
			players, err := b.repos.Players.List(ctx, player.Filter{Name: query, Limit: searchKindLimit})
			if err != nil {
				fail(err)
				return
			}
			result.Players = players
		},
	}

	for _, task := range tasks {
		task := task
		wg.Add(1)
		if err := b.pool.Submit(func() {
			defer wg.Done()
			task()
		}); err != nil {
			wg.Done()
			fail(err)
		}
	}
	wg.Wait()

	if first != nil {
		return SearchResult{}, first
	}
	return result, nil
}
