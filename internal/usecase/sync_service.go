package usecase

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"github.com/riskibarqy/football-data/internal/platform/logging"
)

// maxPlayerPages bounds squad pagination; the provider pages players
// twenty per page and tracked squads never exceed four pages.
const maxPlayerPages = 4

// SyncerConfig wires one Syncer. Sleep and PageJitter exist so tests
// can run without wall-clock delays.
type SyncerConfig struct {
	Provider   SyncProvider
	Session    *Session
	Roster     map[int64][]int64
	Pause      time.Duration
	Logger     *logging.Logger
	Now        func() time.Time
	Sleep      func(ctx context.Context, d time.Duration) error
	PageJitter func() time.Duration
}

// Syncer executes the phases of one sync run against a provider,
// feeding the fetched records through a Reconciler. Every phase checks
// the session budget before each network call and exits cleanly when
// the threshold is reached.
type Syncer struct {
	provider SyncProvider
	session  *Session
	roster   map[int64][]int64
	pause    time.Duration
	logger   *logging.Logger
	now      func() time.Time
	sleep    func(ctx context.Context, d time.Duration) error
	jitter   func() time.Duration
}

func NewSyncer(cfg SyncerConfig) *Syncer {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	now := cfg.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	sleep := cfg.Sleep
	if sleep == nil {
		sleep = sleepContext
	}
	jitter := cfg.PageJitter
	if jitter == nil {
		jitter = func() time.Duration {
			return time.Second + time.Duration(rand.Int63n(int64(2*time.Second)))
		}
	}

	return &Syncer{
		provider: cfg.Provider,
		session:  cfg.Session,
		roster:   cfg.Roster,
		pause:    cfg.Pause,
		logger:   logger,
		now:      now,
		sleep:    sleep,
		jitter:   jitter,
	}
}

// Run executes every phase the plan names, in the fixed order
// fixtures, reference, squads, venues.
func (s *Syncer) Run(ctx context.Context, plan Plan, rec *Reconciler, report *Report) error {
	if plan.Contains(PhaseFixtures) {
		if err := s.SyncFixtures(ctx, rec, report); err != nil {
			return err
		}
	}
	if plan.Contains(PhaseReference) {
		if err := s.SyncReference(ctx, rec, report); err != nil {
			return err
		}
	}
	if plan.Contains(PhaseSquads) {
		if err := s.SyncSquads(ctx, plan, rec, report); err != nil {
			return err
		}
	}
	if plan.Contains(PhaseVenues) {
		if err := s.SyncVenues(ctx, rec, report); err != nil {
			return err
		}
	}
	return nil
}

// SyncFixtures refreshes the prior calendar day's fixtures. The daily
// fixture call runs unconditionally; the budget gates only the phases
// after it.
func (s *Syncer) SyncFixtures(ctx context.Context, rec *Reconciler, report *Report) error {
	date := s.now().AddDate(0, 0, -1)
	items, err := s.provider.FetchFixturesByDate(ctx, date)
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "fixtures fetched", "date", date.Format("2006-01-02"), "count", len(items))
	return rec.ReconcileFixtures(ctx, items, report)
}

// SyncReference refreshes countries and the tracked leagues with their
// season history. League payloads outside the roster are discarded.
func (s *Syncer) SyncReference(ctx context.Context, rec *Reconciler, report *Report) error {
	if s.budgetReached(ctx, PhaseReference) {
		return nil
	}
	countries, err := s.provider.FetchCountries(ctx)
	if err != nil {
		return err
	}
	if err := rec.ReconcileCountries(ctx, countries, report); err != nil {
		return err
	}

	if s.budgetReached(ctx, PhaseReference) {
		return nil
	}
	leagues, err := s.provider.FetchLeagues(ctx)
	if err != nil {
		return err
	}

	tracked := leagues[:0]
	for _, item := range leagues {
		if _, ok := s.roster[item.ID]; ok {
			tracked = append(tracked, item)
		}
	}
	return rec.ReconcileLeagues(ctx, tracked, report)
}

// SyncSquads refreshes the plan's roster slice of each tracked league:
// team details first, then that team's players page by page.
func (s *Syncer) SyncSquads(ctx context.Context, plan Plan, rec *Reconciler, report *Report) error {
	year := s.now().Year()

	for _, leagueID := range s.sortedLeagueIDs() {
		for _, teamID := range plan.TeamSlice(s.roster[leagueID]) {
			if s.budgetReached(ctx, PhaseSquads) {
				return nil
			}

			detail, found, err := s.provider.FetchTeam(ctx, teamID)
			if err != nil {
				return err
			}
			if !found {
				s.logger.WarnContext(ctx, "team missing from provider", "team_id", teamID)
				continue
			}
			if err := rec.ReconcileTeam(ctx, detail.Team, report); err != nil {
				return err
			}

			if err := s.syncPlayers(ctx, teamID, year, rec, report); err != nil {
				return err
			}
			if err := s.sleep(ctx, s.pause); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Syncer) syncPlayers(ctx context.Context, teamID int64, year int, rec *Reconciler, report *Report) error {
	for page := 1; page <= maxPlayerPages; page++ {
		if s.budgetReached(ctx, PhaseSquads) {
			return nil
		}
		if err := s.sleep(ctx, s.jitter()); err != nil {
			return err
		}

		items, err := s.provider.FetchPlayers(ctx, teamID, year, page)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		if err := rec.ReconcilePlayers(ctx, teamID, items, report); err != nil {
			return err
		}
	}
	return nil
}

// SyncVenues refreshes the home ground of every roster team. Teams the
// provider no longer knows, or that have no venue on record, are
// passed over without touching the report.
func (s *Syncer) SyncVenues(ctx context.Context, rec *Reconciler, report *Report) error {
	for _, leagueID := range s.sortedLeagueIDs() {
		for _, teamID := range s.roster[leagueID] {
			if s.budgetReached(ctx, PhaseVenues) {
				return nil
			}

			detail, found, err := s.provider.FetchTeam(ctx, teamID)
			if err != nil {
				return err
			}
			if found && detail.Venue != nil {
				if err := rec.ReconcileVenue(ctx, teamID, *detail.Venue, report); err != nil {
					return err
				}
			}
			if err := s.sleep(ctx, s.pause); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Syncer) budgetReached(ctx context.Context, phase Phase) bool {
	if !s.session.BudgetExhausted() {
		return false
	}
	s.logger.InfoContext(ctx, "call budget reached, stopping early", "phase", string(phase), "calls", s.session.Calls())
	return true
}

func (s *Syncer) sortedLeagueIDs() []int64 {
	ids := make([]int64, 0, len(s.roster))
	for id := range s.roster {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
