package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/football-data/internal/platform/logging"
)

// fakeProvider mimics the gateway client, including its call
// accounting: every fetch records one call on the session.
type fakeProvider struct {
	session  *Session
	calls    []string
	countries []ExternalCountry
	leagues  []ExternalLeague
	teams    map[int64]ExternalTeamDetail
	players  map[int64][][]ExternalPlayer
	fixtures []ExternalFixture
}

func (p *fakeProvider) record(call string) {
	p.calls = append(p.calls, call)
	p.session.RecordCall()
}

func (p *fakeProvider) FetchCountries(context.Context) ([]ExternalCountry, error) {
	p.record("countries")
	return p.countries, nil
}

func (p *fakeProvider) FetchLeagues(context.Context) ([]ExternalLeague, error) {
	p.record("leagues")
	return p.leagues, nil
}

func (p *fakeProvider) FetchTeam(_ context.Context, teamID int64) (ExternalTeamDetail, bool, error) {
	p.record(fmt.Sprintf("team:%d", teamID))
	detail, ok := p.teams[teamID]
	return detail, ok, nil
}

func (p *fakeProvider) FetchTeamsByLeagueSeason(_ context.Context, leagueID int64, year int) ([]ExternalTeamDetail, error) {
	p.record(fmt.Sprintf("league-teams:%d:%d", leagueID, year))
	return nil, nil
}

func (p *fakeProvider) FetchPlayers(_ context.Context, teamID int64, year, page int) ([]ExternalPlayer, error) {
	p.record(fmt.Sprintf("players:%d:%d", teamID, page))
	pages := p.players[teamID]
	if page > len(pages) {
		return nil, nil
	}
	return pages[page-1], nil
}

func (p *fakeProvider) FetchFixturesByDate(_ context.Context, date time.Time) ([]ExternalFixture, error) {
	p.record("fixtures:" + date.Format("2006-01-02"))
	return p.fixtures, nil
}

func newTestSyncer(t *testing.T, provider *fakeProvider, roster map[int64][]int64) (*Syncer, *memDB, *Reconciler) {
	t.Helper()
	db := newMemDB()
	rec := newTestReconciler(db, nil)
	syncer := NewSyncer(SyncerConfig{
		Provider:   provider,
		Session:    provider.session,
		Roster:     roster,
		Logger:     logging.NewNop(),
		Now:        fixedNow,
		Sleep:      func(context.Context, time.Duration) error { return nil },
		PageJitter: func() time.Duration { return 0 },
	})
	return syncer, db, rec
}

func TestSyncFixturesUsesPriorDay(t *testing.T) {
	provider := &fakeProvider{
		session: NewSession(95),
		fixtures: []ExternalFixture{{
			ID: 50, KickoffAt: fixedNow().Add(-20 * time.Hour),
			LeagueID: 39, SeasonYear: 2025, HomeTeamID: 33, AwayTeamID: 34,
		}},
	}
	syncer, db, rec := newTestSyncer(t, provider, map[int64][]int64{39: {33, 34}})

	report := NewReport()
	require.NoError(t, syncer.SyncFixtures(context.Background(), rec, report))

	require.Equal(t, []string{"fixtures:2026-03-09"}, provider.calls)
	require.Len(t, db.fixtures, 1)
	require.Equal(t, 1, report.Created)
}

func TestSyncReferenceFiltersRoster(t *testing.T) {
	provider := &fakeProvider{
		session:   NewSession(95),
		countries: []ExternalCountry{{Name: "England"}, {Name: "Spain"}},
		leagues: []ExternalLeague{
			{ID: 39, Name: "Premier League", Type: "League", CountryName: "England"},
			{ID: 999, Name: "Untracked Cup", Type: "Cup", CountryName: "Spain"},
		},
	}
	syncer, db, rec := newTestSyncer(t, provider, map[int64][]int64{39: {33, 34}})

	report := NewReport()
	require.NoError(t, syncer.SyncReference(context.Background(), rec, report))

	require.Equal(t, []string{"countries", "leagues"}, provider.calls)
	_, found, _ := db.repositories().Leagues.GetByID(context.Background(), 39)
	require.True(t, found)
	_, found, _ = db.repositories().Leagues.GetByID(context.Background(), 999)
	require.False(t, found)
	require.Len(t, db.countries, 2)
}

func TestSyncSquadsCoversDaySliceOnly(t *testing.T) {
	roster := map[int64][]int64{39: {33, 34, 40, 42, 46, 47, 48, 49, 50, 51}}
	provider := &fakeProvider{
		session: NewSession(95),
		teams: map[int64]ExternalTeamDetail{
			40: {Team: ExternalTeam{ID: 40, Name: "Aston Villa", CountryName: "England"}},
			42: {Team: ExternalTeam{ID: 42, Name: "Arsenal", CountryName: "England"}},
		},
		players: map[int64][][]ExternalPlayer{
			40: {
				{{ID: 1, Name: "One"}, {ID: 2, Name: "Two"}},
				{{ID: 3, Name: "Three"}},
			},
			42: {},
		},
	}
	syncer, db, rec := newTestSyncer(t, provider, roster)

	plan, err := PhasesFor(1)
	require.NoError(t, err)

	report := NewReport()
	require.NoError(t, syncer.SyncSquads(context.Background(), plan, rec, report))

	// Tuesday covers roster positions 2 and 3. Player paging stops on
	// the first empty page: team 40 has two pages, team 42 none.
	require.Equal(t, []string{
		"team:40", "players:40:1", "players:40:2", "players:40:3",
		"team:42", "players:42:1",
	}, provider.calls)

	require.Len(t, db.teams, 2)
	require.Len(t, db.players, 3)
	stored, found, _ := db.repositories().Players.GetByID(context.Background(), 3)
	require.True(t, found)
	require.Equal(t, int64(40), stored.TeamID)
}

func TestSyncSquadsSkipsMissingTeam(t *testing.T) {
	roster := map[int64][]int64{39: {33, 34}}
	provider := &fakeProvider{
		session: NewSession(95),
		teams: map[int64]ExternalTeamDetail{
			34: {Team: ExternalTeam{ID: 34, Name: "Newcastle", CountryName: "England"}},
		},
	}
	syncer, db, rec := newTestSyncer(t, provider, roster)

	plan, err := PhasesFor(0)
	require.NoError(t, err)

	report := NewReport()
	require.NoError(t, syncer.SyncSquads(context.Background(), plan, rec, report))

	// Team 33 is unknown upstream; no player pages are fetched for it.
	require.Equal(t, []string{"team:33", "team:34", "players:34:1"}, provider.calls)
	require.Len(t, db.teams, 1)
}

func TestSyncBudgetStopsPhasesEarly(t *testing.T) {
	provider := &fakeProvider{
		session: NewSession(1),
		teams: map[int64]ExternalTeamDetail{
			33: {Team: ExternalTeam{ID: 33, Name: "Manchester United"}},
		},
	}
	syncer, _, rec := newTestSyncer(t, provider, map[int64][]int64{39: {33, 34}})

	plan, err := PhasesFor(0)
	require.NoError(t, err)

	report := NewReport()
	require.NoError(t, syncer.Run(context.Background(), plan, rec, report))

	// The single budgeted call goes to fixtures; the reference and
	// squads phases then exit before touching the network.
	require.Equal(t, []string{"fixtures:2026-03-09"}, provider.calls)
	require.True(t, provider.session.BudgetExhausted())
}

func TestSyncFixturesRunsDespiteExhaustedBudget(t *testing.T) {
	session := NewSession(1)
	session.RecordCall()
	require.True(t, session.BudgetExhausted())

	provider := &fakeProvider{session: session}
	syncer, _, rec := newTestSyncer(t, provider, map[int64][]int64{39: {33}})

	plan, err := PhasesFor(6)
	require.NoError(t, err)

	report := NewReport()
	require.NoError(t, syncer.Run(context.Background(), plan, rec, report))

	// The daily fixture refresh is not budget-gated.
	require.Equal(t, []string{"fixtures:2026-03-09"}, provider.calls)
}

func TestSyncVenuesCoversWholeRoster(t *testing.T) {
	roster := map[int64][]int64{
		39:  {33, 34},
		140: {529},
	}
	venueA := ExternalVenue{ID: 700, Name: "Old Trafford", Capacity: intPtr(76212)}
	venueB := ExternalVenue{ID: 739, Name: "Camp Nou"}
	provider := &fakeProvider{
		session: NewSession(95),
		teams: map[int64]ExternalTeamDetail{
			33:  {Team: ExternalTeam{ID: 33, Name: "Manchester United"}, Venue: &venueA},
			34:  {Team: ExternalTeam{ID: 34, Name: "Newcastle"}}, // no venue on record
			529: {Team: ExternalTeam{ID: 529, Name: "Barcelona"}, Venue: &venueB},
		},
	}
	syncer, db, rec := newTestSyncer(t, provider, roster)

	report := NewReport()
	require.NoError(t, syncer.SyncVenues(context.Background(), rec, report))

	require.Equal(t, []string{"team:33", "team:34", "team:529"}, provider.calls)
	require.Len(t, db.venues, 2)
	require.Equal(t, 2, report.Created)

	stored, found, _ := db.repositories().Venues.GetByTeam(context.Background(), 33)
	require.True(t, found)
	require.Equal(t, int64(700), stored.ID)
}
