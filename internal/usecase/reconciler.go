package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/football-data/internal/domain/country"
	"github.com/riskibarqy/football-data/internal/domain/fixture"
	"github.com/riskibarqy/football-data/internal/domain/league"
	"github.com/riskibarqy/football-data/internal/domain/player"
	"github.com/riskibarqy/football-data/internal/domain/season"
	"github.com/riskibarqy/football-data/internal/domain/team"
	"github.com/riskibarqy/football-data/internal/domain/venue"
	"github.com/riskibarqy/football-data/internal/platform/logging"
)

// countryUnknown backs dependency rows when a payload references a
// country it does not name.
const countryUnknown = "Unknown"

// ReconcilerConfig tunes a Reconciler. IsRecordConflict classifies a
// storage error as a record-level data-quality failure (absorbed into
// the report) rather than an infrastructure fault (escalated, aborting
// the surrounding transaction).
type ReconcilerConfig struct {
	Logger           *logging.Logger
	Now              func() time.Time
	IsRecordConflict func(error) bool
}

// Reconciler maps raw provider records to local upserts, creating any
// missing dependency row with best-effort defaults. One bad record
// never aborts its siblings.
type Reconciler struct {
	repos            Repositories
	logger           *logging.Logger
	now              func() time.Time
	isRecordConflict func(error) bool
}

func NewReconciler(repos Repositories, cfg ReconcilerConfig) *Reconciler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	now := cfg.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	isRecordConflict := cfg.IsRecordConflict
	if isRecordConflict == nil {
		isRecordConflict = func(error) bool { return false }
	}

	return &Reconciler{
		repos:            repos,
		logger:           logger,
		now:              now,
		isRecordConflict: isRecordConflict,
	}
}

// absorb decides the fate of a storage error for one record. Returning
// nil means the failure was recorded and siblings may continue.
func (r *Reconciler) absorb(ctx context.Context, report *Report, kind string, key any, err error) error {
	if err == nil {
		return nil
	}
	if r.isRecordConflict(err) {
		r.logger.WarnContext(ctx, "record reconciliation skipped", "kind", kind, "key", fmt.Sprint(key), "error", err)
		report.recordSkipped(kind, key, err.Error())
		return nil
	}
	return err
}

func (r *Reconciler) ReconcileCountries(ctx context.Context, items []ExternalCountry, report *Report) error {
	for _, item := range items {
		record := country.Country{
			Name:        item.Name,
			Code:        item.Code,
			Flag:        item.Flag,
			LastUpdated: r.now(),
		}
		if err := record.Validate(); err != nil {
			report.recordSkipped("country", record.Name, err.Error())
			continue
		}

		_, existed, err := r.repos.Countries.GetByName(ctx, record.Name)
		if err != nil {
			return err
		}
		if err := r.repos.Countries.Upsert(ctx, record); err != nil {
			if err := r.absorb(ctx, report, "country", record.Name, err); err != nil {
				return err
			}
			continue
		}

		if existed {
			report.recordUpdated("country", record.Name)
		} else {
			report.recordCreated("country", record.Name)
		}
	}
	return nil
}

func (r *Reconciler) ReconcileLeagues(ctx context.Context, items []ExternalLeague, report *Report) error {
	for _, item := range items {
		record := league.League{
			ID:          item.ID,
			Name:        item.Name,
			Type:        item.Type,
			Logo:        item.Logo,
			CountryName: item.CountryName,
			LastUpdated: r.now(),
		}
		if record.Type == "" {
			record.Type = league.TypeUnknown
		}
		if record.CountryName == "" {
			record.CountryName = countryUnknown
		}
		if err := record.Validate(); err != nil {
			report.recordSkipped("league", record.ID, err.Error())
			continue
		}

		if err := r.ensureCountry(ctx, record.CountryName); err != nil {
			return err
		}

		_, existed, err := r.repos.Leagues.GetByID(ctx, record.ID)
		if err != nil {
			return err
		}
		if err := r.repos.Leagues.Upsert(ctx, record); err != nil {
			if err := r.absorb(ctx, report, "league", record.ID, err); err != nil {
				return err
			}
			continue
		}

		if existed {
			report.recordUpdated("league", record.ID)
		} else {
			report.recordCreated("league", record.ID)
		}

		if err := r.reconcileSeasons(ctx, record.ID, item.Seasons, report); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reconciler) reconcileSeasons(ctx context.Context, leagueID int64, items []ExternalSeason, report *Report) error {
	for _, item := range items {
		record := season.Season{
			LeagueID:    leagueID,
			Year:        item.Year,
			StartDate:   item.Start,
			EndDate:     item.End,
			Current:     item.Current,
			LastUpdated: r.now(),
		}
		key := fmt.Sprintf("%d/%d", leagueID, item.Year)
		if err := record.Validate(); err != nil {
			report.recordSkipped("season", key, err.Error())
			continue
		}

		_, existed, err := r.repos.Seasons.GetByLeagueYear(ctx, leagueID, record.Year)
		if err != nil {
			return err
		}
		if _, err := r.repos.Seasons.Upsert(ctx, record); err != nil {
			if err := r.absorb(ctx, report, "season", key, err); err != nil {
				return err
			}
			continue
		}

		if existed {
			report.recordUpdated("season", key)
		} else {
			report.recordCreated("season", key)
		}
	}
	return nil
}

func (r *Reconciler) ReconcileTeam(ctx context.Context, item ExternalTeam, report *Report) error {
	record := team.Team{
		ID:          item.ID,
		Name:        item.Name,
		Code:        item.Code,
		CountryName: item.CountryName,
		Founded:     item.Founded,
		National:    item.National,
		Logo:        item.Logo,
		LastUpdated: r.now(),
	}
	if record.CountryName == "" {
		record.CountryName = countryUnknown
	}
	if err := record.Validate(); err != nil {
		report.recordSkipped("team", record.ID, err.Error())
		return nil
	}

	if err := r.ensureCountry(ctx, record.CountryName); err != nil {
		return err
	}

	_, existed, err := r.repos.Teams.GetByID(ctx, record.ID)
	if err != nil {
		return err
	}
	if err := r.repos.Teams.Upsert(ctx, record); err != nil {
		return r.absorb(ctx, report, "team", record.ID, err)
	}

	if existed {
		report.recordUpdated("team", record.ID)
	} else {
		report.recordCreated("team", record.ID)
	}
	return nil
}

func (r *Reconciler) ReconcileVenue(ctx context.Context, teamID int64, item ExternalVenue, report *Report) error {
	record := venue.Venue{
		ID:          item.ID,
		TeamID:      teamID,
		Name:        item.Name,
		Address:     item.Address,
		City:        item.City,
		Capacity:    item.Capacity,
		Surface:     item.Surface,
		Image:       item.Image,
		LastUpdated: r.now(),
	}
	if err := record.Validate(); err != nil {
		report.recordSkipped("venue", record.ID, err.Error())
		return nil
	}

	existing, existed, err := r.repos.Venues.GetByTeam(ctx, teamID)
	if err != nil {
		return err
	}
	existed = existed && existing.ID == record.ID
	if err := r.repos.Venues.Upsert(ctx, record); err != nil {
		return r.absorb(ctx, report, "venue", record.ID, err)
	}

	if existed {
		report.recordUpdated("venue", record.ID)
	} else {
		report.recordCreated("venue", record.ID)
	}
	return nil
}

func (r *Reconciler) ReconcilePlayers(ctx context.Context, teamID int64, items []ExternalPlayer, report *Report) error {
	for _, item := range items {
		record := player.Player{
			ID:           item.ID,
			TeamID:       teamID,
			Name:         item.Name,
			FirstName:    item.FirstName,
			LastName:     item.LastName,
			Age:          item.Age,
			BirthDate:    item.BirthDate,
			BirthPlace:   item.BirthPlace,
			BirthCountry: item.BirthCountry,
			Nationality:  item.Nationality,
			Height:       item.Height,
			Weight:       item.Weight,
			Injured:      item.Injured,
			Photo:        item.Photo,
			LastUpdated:  r.now(),
		}
		if err := record.Validate(); err != nil {
			report.recordSkipped("player", record.ID, err.Error())
			continue
		}

		_, existed, err := r.repos.Players.GetByID(ctx, record.ID)
		if err != nil {
			return err
		}
		if err := r.repos.Players.Upsert(ctx, record); err != nil {
			if err := r.absorb(ctx, report, "player", record.ID, err); err != nil {
				return err
			}
			continue
		}

		if existed {
			report.recordUpdated("player", record.ID)
		} else {
			report.recordCreated("player", record.ID)
		}
	}
	return nil
}

// ReconcileFixtures upserts fixtures from the list payload, eagerly
// creating missing league, team and season dependency rows with
// defaults. Only the reduced score subset present on the list payload
// is written; full breakdown columns stay null.
func (r *Reconciler) ReconcileFixtures(ctx context.Context, items []ExternalFixture, report *Report) error {
	for _, item := range items {
		if err := r.reconcileFixture(ctx, item, report); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reconciler) reconcileFixture(ctx context.Context, item ExternalFixture, report *Report) error {
	if item.ID <= 0 || item.LeagueID <= 0 || item.HomeTeamID <= 0 || item.AwayTeamID <= 0 ||
		item.SeasonYear <= 0 || item.KickoffAt.IsZero() {
		report.recordSkipped("fixture", item.ID, "malformed fixture payload")
		return nil
	}

	if err := r.ensureLeague(ctx, item.LeagueID, item.LeagueName, item.LeagueCountry); err != nil {
		return err
	}
	if err := r.ensureTeam(ctx, item.HomeTeamID, item.HomeTeamName, item.HomeTeamCountry); err != nil {
		return err
	}
	if err := r.ensureTeam(ctx, item.AwayTeamID, item.AwayTeamName, item.AwayTeamCountry); err != nil {
		return err
	}
	seasonID, err := r.ensureSeason(ctx, item.LeagueID, item.SeasonYear)
	if err != nil {
		return err
	}

	record := fixture.Fixture{
		ID:          item.ID,
		Referee:     item.Referee,
		Timezone:    item.Timezone,
		KickoffAt:   item.KickoffAt,
		LeagueID:    item.LeagueID,
		SeasonID:    seasonID,
		Round:       item.Round,
		HomeTeamID:  item.HomeTeamID,
		AwayTeamID:  item.AwayTeamID,
		StatusLong:  item.StatusLong,
		StatusShort: item.StatusShort,
		Elapsed:     item.Elapsed,
		Home:        fixture.Score{Goals: item.GoalsHome},
		Away:        fixture.Score{Goals: item.GoalsAway},
		LastUpdated: r.now(),
	}
	if record.Timezone == "" {
		record.Timezone = "UTC"
	}
	if record.StatusShort == "" {
		record.StatusShort = "NS"
	}
	if err := record.Validate(); err != nil {
		report.recordSkipped("fixture", record.ID, err.Error())
		return nil
	}

	_, existed, err := r.repos.Fixtures.GetByID(ctx, record.ID)
	if err != nil {
		return err
	}
	if err := r.repos.Fixtures.Upsert(ctx, record); err != nil {
		return r.absorb(ctx, report, "fixture", record.ID, err)
	}

	if existed {
		report.recordUpdated("fixture", record.ID)
	} else {
		report.recordCreated("fixture", record.ID)
	}
	return nil
}

// ensureCountry get-or-creates a country dependency row. Dependency
// creation does not count toward the batch report.
func (r *Reconciler) ensureCountry(ctx context.Context, name string) error {
	if name == "" {
		name = countryUnknown
	}

	_, found, err := r.repos.Countries.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if found {
		return nil
	}

	return r.repos.Countries.Upsert(ctx, country.Country{
		Name:        name,
		LastUpdated: r.now(),
	})
}

func (r *Reconciler) ensureLeague(ctx context.Context, id int64, name, countryName string) error {
	_, found, err := r.repos.Leagues.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if found {
		return nil
	}

	if countryName == "" {
		countryName = countryUnknown
	}
	if err := r.ensureCountry(ctx, countryName); err != nil {
		return err
	}

	if name == "" {
		name = fmt.Sprintf("League %d", id)
	}
	return r.repos.Leagues.Upsert(ctx, league.League{
		ID:          id,
		Name:        name,
		Type:        league.TypeUnknown,
		CountryName: countryName,
		LastUpdated: r.now(),
	})
}

func (r *Reconciler) ensureTeam(ctx context.Context, id int64, name, countryName string) error {
	_, found, err := r.repos.Teams.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if found {
		return nil
	}

	if countryName == "" {
		countryName = countryUnknown
	}
	if err := r.ensureCountry(ctx, countryName); err != nil {
		return err
	}

	if name == "" {
		name = fmt.Sprintf("Team %d", id)
	}
	return r.repos.Teams.Upsert(ctx, team.Team{
		ID:          id,
		Name:        name,
		CountryName: countryName,
		National:    false,
		LastUpdated: r.now(),
	})
}

// ensureSeason get-or-creates a season by (league, year), defaulting a
// one-year window starting today, flagged current.
func (r *Reconciler) ensureSeason(ctx context.Context, leagueID int64, year int) (int64, error) {
	existing, found, err := r.repos.Seasons.GetByLeagueYear(ctx, leagueID, year)
	if err != nil {
		return 0, err
	}
	if found {
		return existing.ID, nil
	}

	today := r.now().Truncate(24 * time.Hour)
	return r.repos.Seasons.Upsert(ctx, season.Season{
		LeagueID:    leagueID,
		Year:        year,
		StartDate:   today,
		EndDate:     today.AddDate(1, 0, 0),
		Current:     true,
		LastUpdated: r.now(),
	})
}
