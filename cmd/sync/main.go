package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/joho/godotenv"

	"github.com/riskibarqy/football-data/internal/app"
	"github.com/riskibarqy/football-data/internal/config"
	"github.com/riskibarqy/football-data/internal/platform/logging"
	"github.com/riskibarqy/football-data/internal/usecase"
)

var dayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func main() {
	day := flag.Int("day", -1, "day of week to plan for (0=Monday .. 6=Sunday, default today)")
	dryRun := flag.Bool("dry-run", false, "print the plan without touching the API or database")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	targetDay := *day
	if targetDay < 0 {
		targetDay = usecase.DayOfWeek(time.Now().UTC())
	}

	if *dryRun {
		if err := printPlan(targetDay, cfg.Roster); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}
	defer func() { _ = application.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Hour)
	defer cancel()

	run, err := application.Updates().UpdateForDay(ctx, targetDay)
	if err != nil {
		logger.Error("sync run failed", "day", targetDay, "error", err)
		os.Exit(1)
	}

	fmt.Printf("day: %s\n", dayNames[run.Day])
	fmt.Printf("api calls: %d\n", run.APICalls)
	fmt.Printf("created: %d updated: %d skipped: %d\n", run.Sync.Created, run.Sync.Updated, run.Sync.Skipped)
	fmt.Printf("swept: %d\n", run.Swept.Total())
	fmt.Printf("duration: %s\n", run.Duration)
}

func printPlan(day int, roster map[int64][]int64) error {
	plan, err := usecase.PhasesFor(day)
	if err != nil {
		return err
	}

	fmt.Printf("plan for %s:\n", dayNames[plan.Day])
	for _, phase := range plan.Phases {
		fmt.Printf("  - %s\n", phase)
	}

	if !plan.Contains(usecase.PhaseSquads) {
		return nil
	}

	leagueIDs := make([]int64, 0, len(roster))
	for id := range roster {
		leagueIDs = append(leagueIDs, id)
	}
	sort.Slice(leagueIDs, func(i, j int) bool { return leagueIDs[i] < leagueIDs[j] })

	fmt.Printf("squad slice (positions %d..%d):\n", plan.SliceStart, plan.SliceEnd-1)
	for _, leagueID := range leagueIDs {
		teams := plan.TeamSlice(roster[leagueID])
		fmt.Printf("  league %d: teams %v\n", leagueID, teams)
	}
	return nil
}
