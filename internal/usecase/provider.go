package usecase

import (
	"context"
	"time"
)

// SyncProvider is the outbound surface of the football data API the
// sync engine consumes. Implementations own caching, retries and call
// accounting; every method reports raw provider records.
type SyncProvider interface {
	FetchCountries(ctx context.Context) ([]ExternalCountry, error)
	FetchLeagues(ctx context.Context) ([]ExternalLeague, error)
	FetchTeam(ctx context.Context, teamID int64) (ExternalTeamDetail, bool, error)
	FetchTeamsByLeagueSeason(ctx context.Context, leagueID int64, year int) ([]ExternalTeamDetail, error)
	FetchPlayers(ctx context.Context, teamID int64, year int, page int) ([]ExternalPlayer, error)
	FetchFixturesByDate(ctx context.Context, date time.Time) ([]ExternalFixture, error)
}

type ExternalCountry struct {
	Name string
	Code *string
	Flag *string
}

type ExternalLeague struct {
	ID          int64
	Name        string
	Type        string
	Logo        *string
	CountryName string
	Seasons     []ExternalSeason
}

type ExternalSeason struct {
	Year    int
	Start   time.Time
	End     time.Time
	Current bool
}

type ExternalTeam struct {
	ID          int64
	Name        string
	Code        *string
	CountryName string
	Founded     *int
	National    bool
	Logo        *string
}

type ExternalVenue struct {
	ID       int64
	Name     string
	Address  *string
	City     *string
	Capacity *int
	Surface  *string
	Image    *string
}

// ExternalTeamDetail pairs a team with its home ground; the venue is
// absent when the provider does not know it.
type ExternalTeamDetail struct {
	Team  ExternalTeam
	Venue *ExternalVenue
}

type ExternalPlayer struct {
	ID           int64
	Name         string
	FirstName    *string
	LastName     *string
	Age          *int
	BirthDate    *time.Time
	BirthPlace   *string
	BirthCountry *string
	Nationality  *string
	Height       *string
	Weight       *string
	Injured      bool
	Photo        *string
}

// ExternalFixture is the reduced record the fixtures-list endpoint
// returns; only the regular goal totals are present, never the full
// score breakdown. It carries no venue reference; venue rows exist
// only after the venues phase has run.
type ExternalFixture struct {
	ID              int64
	Referee         *string
	Timezone        string
	KickoffAt       time.Time
	StatusShort     string
	StatusLong      *string
	Elapsed         *int
	LeagueID        int64
	LeagueName      string
	LeagueCountry   string
	SeasonYear      int
	Round           *string
	HomeTeamID      int64
	HomeTeamName    string
	HomeTeamCountry string
	AwayTeamID      int64
	AwayTeamName    string
	AwayTeamCountry string
	GoalsHome       *int
	GoalsAway       *int
}
