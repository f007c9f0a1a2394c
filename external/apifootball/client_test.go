package apifootball

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/football-data/internal/platform/cache"
	"github.com/riskibarqy/football-data/internal/platform/logging"
	"github.com/riskibarqy/football-data/internal/platform/resilience"
	"github.com/riskibarqy/football-data/internal/usecase"
)

func newTestClient(t *testing.T, handler http.Handler, session *usecase.Session) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		HTTPClient:     server.Client(),
		BaseURL:        server.URL,
		Key:            "test-key",
		Host:           "test-host",
		Cache:          cache.NewStore(time.Hour),
		Session:        session,
		Logger:         logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	})
	client.backoff = func(int) time.Duration { return 0 }

	return client, server
}

func TestFetchCountries_CacheServesRepeatCalls(t *testing.T) {
	var hits atomic.Int64
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if got := r.Header.Get("X-RapidAPI-Key"); got != "test-key" {
			t.Errorf("unexpected api key header: %q", got)
		}
		if got := r.Header.Get("X-RapidAPI-Host"); got != "test-host" {
			t.Errorf("unexpected api host header: %q", got)
		}
		w.Write([]byte(`{"response":[{"name":"England","code":"GB","flag":"https://example/gb.svg"}]}`))
	})

	session := usecase.NewSession(95)
	client, _ := newTestClient(t, handler, session)
	ctx := context.Background()

	first, err := client.FetchCountries(ctx)
	if err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	second, err := client.FetchCountries(ctx)
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}

	if hits.Load() != 1 {
		t.Fatalf("expected one network call, got %d", hits.Load())
	}
	if session.Calls() != 1 {
		t.Fatalf("expected one recorded call, got %d", session.Calls())
	}
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected one country per fetch, got %d and %d", len(first), len(second))
	}
	if first[0].Name != "England" || *first[0].Code != "GB" {
		t.Fatalf("unexpected country mapping: %+v", first[0])
	}
}

func TestRequest_RetryBoundAndCounter(t *testing.T) {
	var attempts atomic.Int64
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	})

	session := usecase.NewSession(95)
	client, _ := newTestClient(t, handler, session)

	_, err := client.FetchLeagues(context.Background())
	if err == nil {
		t.Fatalf("expected error after retries exhausted")
	}
	if !IsTransient(err) {
		t.Fatalf("expected transient classification, got %v", err)
	}
	if attempts.Load() != 5 {
		t.Fatalf("expected exactly 5 attempts, got %d", attempts.Load())
	}
	if session.Calls() != 0 {
		t.Fatalf("failed attempts must not advance the counter, got %d", session.Calls())
	}
}

func TestRequest_RecoversWithinAttemptBudget(t *testing.T) {
	var attempts atomic.Int64
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			http.Error(w, "flaky", http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"response":[]}`))
	})

	session := usecase.NewSession(95)
	client, _ := newTestClient(t, handler, session)

	if _, err := client.FetchCountries(context.Background()); err != nil {
		t.Fatalf("expected recovery on third attempt: %v", err)
	}
	if attempts.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts.Load())
	}
	if session.Calls() != 1 {
		t.Fatalf("expected one recorded call, got %d", session.Calls())
	}
}

func TestFetchFixturesByDate_Mapping(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("date"); got != "2026-08-29" {
			t.Errorf("unexpected date param: %q", got)
		}
		w.Write([]byte(`{"response":[{
			"fixture":{"id":101,"referee":"M. Oliver","timezone":"Europe/London","date":"2026-08-29T15:00:00+01:00","venue":{"id":556},"status":{"long":"Match Finished","short":"FT","elapsed":90}},
			"league":{"id":39,"name":"Premier League","country":"England","season":2026,"round":"Regular Season - 3"},
			"teams":{"home":{"id":1,"name":"Alpha","country":"England"},"away":{"id":2,"name":"Beta","country":"England"}},
			"goals":{"home":2,"away":1}
		}]}`))
	})

	client, _ := newTestClient(t, handler, usecase.NewSession(95))

	fixtures, err := client.FetchFixturesByDate(context.Background(), time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("fetch fixtures: %v", err)
	}
	if len(fixtures) != 1 {
		t.Fatalf("expected one fixture, got %d", len(fixtures))
	}

	f := fixtures[0]
	if f.ID != 101 || f.LeagueID != 39 || f.SeasonYear != 2026 {
		t.Fatalf("unexpected ids: %+v", f)
	}
	if f.HomeTeamID != 1 || f.AwayTeamID != 2 {
		t.Fatalf("unexpected team ids: %+v", f)
	}
	if f.GoalsHome == nil || *f.GoalsHome != 2 || f.GoalsAway == nil || *f.GoalsAway != 1 {
		t.Fatalf("unexpected goals: %+v", f)
	}
	if f.StatusShort != "FT" || f.Elapsed == nil || *f.Elapsed != 90 {
		t.Fatalf("unexpected status: %+v", f)
	}
	if f.KickoffAt.IsZero() {
		t.Fatalf("kickoff not parsed")
	}
}

func TestFetchPlayers_NullableFields(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":[
			{"player":{"id":7,"name":"A. Keeper","firstname":"Alex","lastname":"Keeper","age":29,"birth":{"date":"1997-03-02","place":"Leeds","country":"England"},"nationality":"England","height":"191 cm","weight":"84 kg","injured":false,"photo":"https://example/7.png"}},
			{"player":{"id":8,"name":"B. Winger","birth":{}}}
		]}`))
	})

	client, _ := newTestClient(t, handler, usecase.NewSession(95))

	players, err := client.FetchPlayers(context.Background(), 33, 2026, 1)
	if err != nil {
		t.Fatalf("fetch players: %v", err)
	}
	if len(players) != 2 {
		t.Fatalf("expected two players, got %d", len(players))
	}
	if players[0].BirthDate == nil || players[0].BirthDate.Year() != 1997 {
		t.Fatalf("expected parsed birth date, got %+v", players[0].BirthDate)
	}
	if players[1].BirthDate != nil || players[1].FirstName != nil {
		t.Fatalf("expected nil optional fields, got %+v", players[1])
	}
}

func TestFetchTeam_EmptyResponse(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":[]}`))
	})

	client, _ := newTestClient(t, handler, usecase.NewSession(95))

	_, found, err := client.FetchTeam(context.Background(), 999)
	if err != nil {
		t.Fatalf("fetch team: %v", err)
	}
	if found {
		t.Fatalf("expected not found for empty response")
	}
}

func TestFetchTeamsByLeagueSeason_Mapping(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("league"); got != "39" {
			t.Errorf("unexpected league param: %q", got)
		}
		if got := r.URL.Query().Get("season"); got != "2026" {
			t.Errorf("unexpected season param: %q", got)
		}
		w.Write([]byte(`{"response":[
			{"team":{"id":33,"name":"Manchester United","country":"England","national":false},"venue":{"id":556,"name":"Old Trafford","city":"Manchester","capacity":76212}},
			{"team":{"id":34,"name":"Newcastle","country":"England","national":false},"venue":{}}
		]}`))
	})

	client, _ := newTestClient(t, handler, usecase.NewSession(95))

	teams, err := client.FetchTeamsByLeagueSeason(context.Background(), 39, 2026)
	if err != nil {
		t.Fatalf("fetch teams: %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(teams))
	}
	if teams[0].Team.ID != 33 || teams[0].Venue == nil || teams[0].Venue.Name != "Old Trafford" {
		t.Fatalf("unexpected first team mapping: %+v", teams[0])
	}
	if teams[1].Venue != nil {
		t.Fatalf("missing venue payload must map to nil, got %+v", teams[1].Venue)
	}

	if _, err := client.FetchTeamsByLeagueSeason(context.Background(), 0, 2026); err == nil {
		t.Fatalf("expected invalid input error for zero league id")
	}
}

func TestCacheKeyIsOrderInsensitive(t *testing.T) {
	var hits atomic.Int64
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"response":[]}`))
	})

	client, _ := newTestClient(t, handler, usecase.NewSession(95))
	ctx := context.Background()

	if _, err := client.request(ctx, "players", map[string]string{"team": "33", "season": "2026", "page": "1"}); err != nil {
		t.Fatalf("first request: %v", err)
	}
	if _, err := client.request(ctx, "players", map[string]string{"page": "1", "team": "33", "season": "2026"}); err != nil {
		t.Fatalf("second request: %v", err)
	}

	if hits.Load() != 1 {
		t.Fatalf("identical parameter sets must share a cache entry, got %d hits", hits.Load())
	}
}
