package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/football-data/internal/domain/fixture"
	"github.com/riskibarqy/football-data/internal/domain/league"
	"github.com/riskibarqy/football-data/internal/domain/player"
	"github.com/riskibarqy/football-data/internal/domain/season"
	"github.com/riskibarqy/football-data/internal/domain/team"
	"github.com/riskibarqy/football-data/internal/domain/venue"
	"github.com/riskibarqy/football-data/internal/platform/logging"
	"github.com/riskibarqy/football-data/internal/usecase"
)

type stubLeagues struct{ items []league.League }

func (s *stubLeagues) Upsert(context.Context, league.League) error { return nil }

func (s *stubLeagues) GetByID(_ context.Context, id int64) (league.League, bool, error) {
	for _, l := range s.items {
		if l.ID == id {
			return l, true, nil
		}
	}
	return league.League{}, false, nil
}

func (s *stubLeagues) List(_ context.Context, filter league.Filter) ([]league.League, error) {
	var out []league.League
	for _, l := range s.items {
		if filter.Name != "" && !strings.Contains(strings.ToLower(l.Name), strings.ToLower(filter.Name)) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (s *stubLeagues) DeleteUpdatedBefore(context.Context, time.Time) (int64, error) { return 0, nil }

type stubSeasons struct{ items []season.Season }

func (s *stubSeasons) Upsert(context.Context, season.Season) (int64, error) { return 0, nil }

func (s *stubSeasons) GetByLeagueYear(_ context.Context, leagueID int64, year int) (season.Season, bool, error) {
	for _, item := range s.items {
		if item.LeagueID == leagueID && item.Year == year {
			return item, true, nil
		}
	}
	return season.Season{}, false, nil
}

func (s *stubSeasons) ListByLeague(_ context.Context, leagueID int64) ([]season.Season, error) {
	var out []season.Season
	for _, item := range s.items {
		if item.LeagueID == leagueID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *stubSeasons) DeleteUpdatedBefore(context.Context, time.Time) (int64, error) { return 0, nil }

type stubTeams struct{ items []team.Team }

func (s *stubTeams) Upsert(context.Context, team.Team) error { return nil }

func (s *stubTeams) GetByID(_ context.Context, id int64) (team.Team, bool, error) {
	for _, t := range s.items {
		if t.ID == id {
			return t, true, nil
		}
	}
	return team.Team{}, false, nil
}

func (s *stubTeams) List(_ context.Context, filter team.Filter) ([]team.Team, error) {
	var out []team.Team
	for _, t := range s.items {
		if filter.Name != "" && !strings.Contains(strings.ToLower(t.Name), strings.ToLower(filter.Name)) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *stubTeams) DeleteUpdatedBefore(context.Context, time.Time) (int64, error) { return 0, nil }

type stubVenues struct{ items []venue.Venue }

func (s *stubVenues) Upsert(context.Context, venue.Venue) error { return nil }

func (s *stubVenues) GetByTeam(_ context.Context, teamID int64) (venue.Venue, bool, error) {
	for _, v := range s.items {
		if v.TeamID == teamID {
			return v, true, nil
		}
	}
	return venue.Venue{}, false, nil
}

func (s *stubVenues) DeleteUpdatedBefore(context.Context, time.Time) (int64, error) { return 0, nil }

type stubPlayers struct{ items []player.Player }

func (s *stubPlayers) Upsert(context.Context, player.Player) error { return nil }

func (s *stubPlayers) GetByID(_ context.Context, id int64) (player.Player, bool, error) {
	for _, p := range s.items {
		if p.ID == id {
			return p, true, nil
		}
	}
	return player.Player{}, false, nil
}

func (s *stubPlayers) List(_ context.Context, filter player.Filter) ([]player.Player, error) {
	var out []player.Player
	for _, p := range s.items {
		if filter.TeamID > 0 && p.TeamID != filter.TeamID {
			continue
		}
		if filter.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Name)) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *stubPlayers) DeleteUpdatedBefore(context.Context, time.Time) (int64, error) { return 0, nil }

type stubFixtures struct{ items []fixture.Fixture }

func (s *stubFixtures) Upsert(context.Context, fixture.Fixture) error { return nil }

func (s *stubFixtures) GetByID(_ context.Context, id int64) (fixture.Fixture, bool, error) {
	for _, f := range s.items {
		if f.ID == id {
			return f, true, nil
		}
	}
	return fixture.Fixture{}, false, nil
}

func (s *stubFixtures) List(_ context.Context, filter fixture.Filter) ([]fixture.Fixture, error) {
	var out []fixture.Fixture
	for _, f := range s.items {
		if filter.LeagueID > 0 && f.LeagueID != filter.LeagueID {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

type stubUpdater struct {
	run     usecase.RunReport
	err     error
	lastDay int
	allRuns int
}

func (s *stubUpdater) UpdateAll(context.Context) (usecase.RunReport, error) {
	s.allRuns++
	return s.run, s.err
}

func (s *stubUpdater) UpdateForDay(_ context.Context, day int) (usecase.RunReport, error) {
	s.lastDay = day
	if day < 0 || day > 6 {
		return usecase.RunReport{}, usecase.ErrInvalidInput
	}
	return s.run, s.err
}

func newTestRouter(t *testing.T, updater UpdateRunner) http.Handler {
	t.Helper()

	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	repos := usecase.Repositories{
		Leagues: &stubLeagues{items: []league.League{
			{ID: 39, Name: "Premier League", Type: "League", CountryName: "England", LastUpdated: now},
		}},
		Seasons: &stubSeasons{items: []season.Season{
			{ID: 1, LeagueID: 39, Year: 2025, StartDate: now.AddDate(0, -7, 0), EndDate: now.AddDate(0, 5, 0), Current: true},
		}},
		Teams: &stubTeams{items: []team.Team{
			{ID: 33, Name: "Manchester United", CountryName: "England", LastUpdated: now},
		}},
		Venues: &stubVenues{items: []venue.Venue{
			{ID: 700, TeamID: 33, Name: "Old Trafford", LastUpdated: now},
		}},
		Players: &stubPlayers{items: []player.Player{
			{ID: 901, TeamID: 33, Name: "Alex United", LastUpdated: now},
		}},
		Fixtures: &stubFixtures{items: []fixture.Fixture{
			{ID: 5001, LeagueID: 39, SeasonID: 1, HomeTeamID: 33, AwayTeamID: 34, KickoffAt: now.Add(-24 * time.Hour), Timezone: "UTC", StatusShort: "FT"},
		}},
	}

	browser, err := usecase.NewBrowser(usecase.BrowserConfig{Repos: repos, Logger: logging.NewNop()})
	require.NoError(t, err)
	t.Cleanup(browser.Close)

	handler := NewHandler(browser, updater, logging.NewNop())
	return NewRouter(handler, logging.NewNop(), nil, "job-secret")
}

func doRequest(t *testing.T, router http.Handler, method, target string, headers map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body map[string]any
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestRouterHealthz(t *testing.T) {
	router := newTestRouter(t, &stubUpdater{})

	rec, body := doRequest(t, router, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]any)
	require.Equal(t, "ok", data["status"])
}

func TestRouterListLeagues(t *testing.T) {
	router := newTestRouter(t, &stubUpdater{})

	rec, body := doRequest(t, router, http.MethodGet, "/v1/leagues?q=premier", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	items := body["data"].([]any)
	require.Len(t, items, 1)
	first := items[0].(map[string]any)
	require.Equal(t, "Premier League", first["name"])
	require.Equal(t, "England", first["country"])
}

func TestRouterGetLeagueDetail(t *testing.T) {
	router := newTestRouter(t, &stubUpdater{})

	rec, body := doRequest(t, router, http.MethodGet, "/v1/leagues/39", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	data := body["data"].(map[string]any)
	require.Len(t, data["seasons"].([]any), 1)
	require.Len(t, data["recentFixtures"].([]any), 1)
}

func TestRouterGetTeamNotFound(t *testing.T) {
	router := newTestRouter(t, &stubUpdater{})

	rec, body := doRequest(t, router, http.MethodGet, "/v1/teams/404", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	errorObj := body["error"].(map[string]any)
	require.Equal(t, "NOT_FOUND", errorObj["status"])
}

func TestRouterGetTeamWithVenueAndSquad(t *testing.T) {
	router := newTestRouter(t, &stubUpdater{})

	rec, body := doRequest(t, router, http.MethodGet, "/v1/teams/33", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	data := body["data"].(map[string]any)
	venueObj := data["venue"].(map[string]any)
	require.Equal(t, "Old Trafford", venueObj["name"])
	require.Len(t, data["players"].([]any), 1)
}

func TestRouterListFixturesRejectsBadDate(t *testing.T) {
	router := newTestRouter(t, &stubUpdater{})

	rec, _ := doRequest(t, router, http.MethodGet, "/v1/fixtures?from=tomorrow", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouterSearch(t *testing.T) {
	router := newTestRouter(t, &stubUpdater{})

	rec, body := doRequest(t, router, http.MethodGet, "/v1/search?q=united", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	data := body["data"].(map[string]any)
	require.Len(t, data["teams"].([]any), 1)
	require.Len(t, data["players"].([]any), 1)
	require.Empty(t, data["leagues"])

	rec, _ = doRequest(t, router, http.MethodGet, "/v1/search", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouterUpdateJobRequiresToken(t *testing.T) {
	updater := &stubUpdater{}
	router := newTestRouter(t, updater)

	rec, _ := doRequest(t, router, http.MethodPost, "/v1/internal/jobs/update", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Zero(t, updater.allRuns)
}

func TestRouterUpdateJobRunsToday(t *testing.T) {
	updater := &stubUpdater{run: usecase.RunReport{
		Day:      6,
		Phases:   []usecase.Phase{usecase.PhaseFixtures},
		APICalls: 3,
		Sync:     usecase.NewReport(),
	}}
	router := newTestRouter(t, updater)

	rec, body := doRequest(t, router, http.MethodPost, "/v1/internal/jobs/update", map[string]string{
		"X-Internal-Job-Token": "job-secret",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, updater.allRuns)

	data := body["data"].(map[string]any)
	require.Equal(t, float64(3), data["apiCalls"])
	require.Equal(t, []any{"fixtures"}, data["phases"])
}

func TestRouterUpdateJobWithExplicitDay(t *testing.T) {
	updater := &stubUpdater{run: usecase.RunReport{Day: 2, Sync: usecase.NewReport()}}
	router := newTestRouter(t, updater)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/update", strings.NewReader(`{"day":2}`))
	req.Header.Set("X-Internal-Job-Token", "job-secret")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 2, updater.lastDay)

	// Out-of-range days fail validation before reaching the service.
	req = httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/update", strings.NewReader(`{"day":9}`))
	req.Header.Set("X-Internal-Job-Token", "job-secret")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
