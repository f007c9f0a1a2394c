package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/football-data/internal/platform/logging"
)

// RetentionConfig sets the two staleness horizons. Squad rows (teams,
// players) live a week without a refresh; reference rows (countries,
// leagues, seasons, venues) only a day, since the daily run renews the
// ones that still matter.
type RetentionConfig struct {
	ReferenceMaxAge time.Duration
	SquadMaxAge     time.Duration
	Logger          *logging.Logger
	Now             func() time.Time
}

// SweepReport counts deleted rows per table. Fixtures never appear:
// they only leave via cascade.
type SweepReport struct {
	Players   int64
	Teams     int64
	Venues    int64
	Seasons   int64
	Leagues   int64
	Countries int64
}

func (r SweepReport) Total() int64 {
	return r.Players + r.Teams + r.Venues + r.Seasons + r.Leagues + r.Countries
}

// Sweeper deletes rows whose last refresh predates their horizon.
type Sweeper struct {
	referenceMaxAge time.Duration
	squadMaxAge     time.Duration
	logger          *logging.Logger
	now             func() time.Time
}

func NewSweeper(cfg RetentionConfig) *Sweeper {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	now := cfg.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}

	return &Sweeper{
		referenceMaxAge: cfg.ReferenceMaxAge,
		squadMaxAge:     cfg.SquadMaxAge,
		logger:          logger,
		now:             now,
	}
}

// Sweep removes stale rows child-first so no delete trips a foreign
// key on a row removed later in the same pass.
func (s *Sweeper) Sweep(ctx context.Context, repos Repositories) (SweepReport, error) {
	var report SweepReport
	var err error

	squadCutoff := s.now().Add(-s.squadMaxAge)
	referenceCutoff := s.now().Add(-s.referenceMaxAge)

	if report.Players, err = repos.Players.DeleteUpdatedBefore(ctx, squadCutoff); err != nil {
		return report, err
	}
	if report.Teams, err = repos.Teams.DeleteUpdatedBefore(ctx, squadCutoff); err != nil {
		return report, err
	}
	if report.Venues, err = repos.Venues.DeleteUpdatedBefore(ctx, referenceCutoff); err != nil {
		return report, err
	}
	if report.Seasons, err = repos.Seasons.DeleteUpdatedBefore(ctx, referenceCutoff); err != nil {
		return report, err
	}
	if report.Leagues, err = repos.Leagues.DeleteUpdatedBefore(ctx, referenceCutoff); err != nil {
		return report, err
	}
	if report.Countries, err = repos.Countries.DeleteUpdatedBefore(ctx, referenceCutoff); err != nil {
		return report, err
	}

	if report.Total() > 0 {
		s.logger.InfoContext(ctx, "retention sweep removed stale rows",
			"players", report.Players,
			"teams", report.Teams,
			"venues", report.Venues,
			"seasons", report.Seasons,
			"leagues", report.Leagues,
			"countries", report.Countries,
		)
	}
	return report, nil
}
