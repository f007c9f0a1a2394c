package postgres

import (
	"time"

	"github.com/riskibarqy/football-data/internal/domain/fixture"
)

type fixtureTableModel struct {
	ID                 int64     `db:"id"`
	Referee            *string   `db:"referee"`
	Timezone           string    `db:"timezone"`
	KickoffAt          time.Time `db:"kickoff_at"`
	LeagueID           int64     `db:"league_id"`
	SeasonID           int64     `db:"season_id"`
	Round              *string   `db:"round"`
	HomeTeamID         int64     `db:"home_team_id"`
	AwayTeamID         int64     `db:"away_team_id"`
	VenueID            *int64    `db:"venue_id"`
	StatusLong         *string   `db:"status_long"`
	StatusShort        string    `db:"status_short"`
	Elapsed            *int      `db:"elapsed"`
	GoalsHome          *int      `db:"goals_home"`
	GoalsAway          *int      `db:"goals_away"`
	ScoreHalftimeHome  *int      `db:"score_halftime_home"`
	ScoreHalftimeAway  *int      `db:"score_halftime_away"`
	ScoreFulltimeHome  *int      `db:"score_fulltime_home"`
	ScoreFulltimeAway  *int      `db:"score_fulltime_away"`
	ScoreExtratimeHome *int      `db:"score_extratime_home"`
	ScoreExtratimeAway *int      `db:"score_extratime_away"`
	ScorePenaltyHome   *int      `db:"score_penalty_home"`
	ScorePenaltyAway   *int      `db:"score_penalty_away"`
	LastUpdated        time.Time `db:"last_updated"`
}

func fixtureToTableModel(f fixture.Fixture) fixtureTableModel {
	return fixtureTableModel{
		ID:                 f.ID,
		Referee:            f.Referee,
		Timezone:           f.Timezone,
		KickoffAt:          f.KickoffAt,
		LeagueID:           f.LeagueID,
		SeasonID:           f.SeasonID,
		Round:              f.Round,
		HomeTeamID:         f.HomeTeamID,
		AwayTeamID:         f.AwayTeamID,
		VenueID:            f.VenueID,
		StatusLong:         f.StatusLong,
		StatusShort:        f.StatusShort,
		Elapsed:            f.Elapsed,
		GoalsHome:          f.Home.Goals,
		GoalsAway:          f.Away.Goals,
		ScoreHalftimeHome:  f.Home.Halftime,
		ScoreHalftimeAway:  f.Away.Halftime,
		ScoreFulltimeHome:  f.Home.Fulltime,
		ScoreFulltimeAway:  f.Away.Fulltime,
		ScoreExtratimeHome: f.Home.Extratime,
		ScoreExtratimeAway: f.Away.Extratime,
		ScorePenaltyHome:   f.Home.Penalty,
		ScorePenaltyAway:   f.Away.Penalty,
		LastUpdated:        f.LastUpdated,
	}
}

func (m fixtureTableModel) toDomain() fixture.Fixture {
	return fixture.Fixture{
		ID:          m.ID,
		Referee:     m.Referee,
		Timezone:    m.Timezone,
		KickoffAt:   m.KickoffAt,
		LeagueID:    m.LeagueID,
		SeasonID:    m.SeasonID,
		Round:       m.Round,
		HomeTeamID:  m.HomeTeamID,
		AwayTeamID:  m.AwayTeamID,
		VenueID:     m.VenueID,
		StatusLong:  m.StatusLong,
		StatusShort: m.StatusShort,
		Elapsed:     m.Elapsed,
		Home: fixture.Score{
			Goals:     m.GoalsHome,
			Halftime:  m.ScoreHalftimeHome,
			Fulltime:  m.ScoreFulltimeHome,
			Extratime: m.ScoreExtratimeHome,
			Penalty:   m.ScorePenaltyHome,
		},
		Away: fixture.Score{
			Goals:     m.GoalsAway,
			Halftime:  m.ScoreHalftimeAway,
			Fulltime:  m.ScoreFulltimeAway,
			Extratime: m.ScoreExtratimeAway,
			Penalty:   m.ScorePenaltyAway,
		},
		LastUpdated: m.LastUpdated,
	}
}
