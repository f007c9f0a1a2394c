package usecase

import (
	"context"
	"time"

	"github.com/sourcegraph/conc/panics"

	"github.com/riskibarqy/football-data/internal/platform/logging"
)

// UpdateConfig wires one UpdateService. ProviderFactory builds the
// gateway client bound to a run's session so the client's call
// accounting and the budget checks observe the same tally.
type UpdateConfig struct {
	Tx               TxRunner
	ProviderFactory  func(session *Session) SyncProvider
	Roster           map[int64][]int64
	CallBudget       int
	Pause            time.Duration
	ReferenceMaxAge  time.Duration
	SquadMaxAge      time.Duration
	IsRecordConflict func(error) bool
	Logger           *logging.Logger
	Now              func() time.Time
	Sleep            func(ctx context.Context, d time.Duration) error
	PageJitter       func() time.Duration
}

// RunReport summarizes one completed sync run.
type RunReport struct {
	Day       int
	Phases    []Phase
	APICalls  int
	Duration  time.Duration
	Sync      *Report
	Swept     SweepReport
	StartedAt time.Time
}

// UpdateService runs the daily refresh: it derives the plan from the
// day of week, executes the phases and the retention sweep inside one
// transaction, and commits only when everything held. A panic anywhere
// in a phase is converted to an error so the transaction rolls back.
type UpdateService struct {
	cfg UpdateConfig
}

func NewUpdateService(cfg UpdateConfig) *UpdateService {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return time.Now().UTC() }
	}
	return &UpdateService{cfg: cfg}
}

// UpdateAll runs today's plan.
func (u *UpdateService) UpdateAll(ctx context.Context) (RunReport, error) {
	return u.UpdateForDay(ctx, DayOfWeek(u.cfg.Now()))
}

// UpdateForDay runs the plan for an explicit day of week (0=Monday).
func (u *UpdateService) UpdateForDay(ctx context.Context, day int) (RunReport, error) {
	ctx, span := startUsecaseSpan(ctx, "UpdateService.UpdateForDay")
	defer span.End()

	plan, err := PhasesFor(day)
	if err != nil {
		return RunReport{}, err
	}

	startedAt := u.cfg.Now()
	session := NewSession(u.cfg.CallBudget)
	provider := u.cfg.ProviderFactory(session)
	report := NewReport()

	syncer := NewSyncer(SyncerConfig{
		Provider:   provider,
		Session:    session,
		Roster:     u.cfg.Roster,
		Pause:      u.cfg.Pause,
		Logger:     u.cfg.Logger,
		Now:        u.cfg.Now,
		Sleep:      u.cfg.Sleep,
		PageJitter: u.cfg.PageJitter,
	})
	sweeper := NewSweeper(RetentionConfig{
		ReferenceMaxAge: u.cfg.ReferenceMaxAge,
		SquadMaxAge:     u.cfg.SquadMaxAge,
		Logger:          u.cfg.Logger,
		Now:             u.cfg.Now,
	})

	var swept SweepReport
	err = u.cfg.Tx.WithinTx(ctx, func(repos Repositories) error {
		rec := NewReconciler(repos, ReconcilerConfig{
			Logger:           u.cfg.Logger,
			Now:              u.cfg.Now,
			IsRecordConflict: u.cfg.IsRecordConflict,
		})

		var runErr error
		recovered := panics.Try(func() {
			if runErr = syncer.Run(ctx, plan, rec, report); runErr != nil {
				return
			}
			swept, runErr = sweeper.Sweep(ctx, repos)
		})
		if recovered != nil {
			return recovered.AsError()
		}
		return runErr
	})

	run := RunReport{
		Day:       plan.Day,
		Phases:    plan.Phases,
		APICalls:  session.Calls(),
		Duration:  u.cfg.Now().Sub(startedAt),
		Sync:      report,
		Swept:     swept,
		StartedAt: startedAt,
	}
	if err != nil {
		u.cfg.Logger.ErrorContext(ctx, "sync run rolled back", "day", plan.Day, "api_calls", run.APICalls, "error", err)
		return run, err
	}

	u.cfg.Logger.InfoContext(ctx, "sync run committed",
		"day", plan.Day,
		"api_calls", run.APICalls,
		"created", report.Created,
		"updated", report.Updated,
		"skipped", report.Skipped,
		"swept", swept.Total(),
	)
	return run, nil
}
