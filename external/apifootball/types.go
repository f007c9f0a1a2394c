package apifootball

import (
	"strings"
	"time"

	"github.com/riskibarqy/football-data/internal/usecase"
)

// Every endpoint wraps its records in a "response" array; errors and
// paging metadata ride alongside but are not needed here.

type countriesEnvelope struct {
	Response []countryItem `json:"response"`
}

type countryItem struct {
	Name string  `json:"name"`
	Code *string `json:"code"`
	Flag *string `json:"flag"`
}

type leaguesEnvelope struct {
	Response []leagueItem `json:"response"`
}

type leagueItem struct {
	League struct {
		ID   int64   `json:"id"`
		Name string  `json:"name"`
		Type string  `json:"type"`
		Logo *string `json:"logo"`
	} `json:"league"`
	Country struct {
		Name string `json:"name"`
	} `json:"country"`
	Seasons []seasonItem `json:"seasons"`
}

type seasonItem struct {
	Year    int    `json:"year"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Current bool   `json:"current"`
}

type teamsEnvelope struct {
	Response []teamItem `json:"response"`
}

type teamItem struct {
	Team struct {
		ID       int64   `json:"id"`
		Name     string  `json:"name"`
		Code     *string `json:"code"`
		Country  string  `json:"country"`
		Founded  *int    `json:"founded"`
		National bool    `json:"national"`
		Logo     *string `json:"logo"`
	} `json:"team"`
	Venue struct {
		ID       int64   `json:"id"`
		Name     string  `json:"name"`
		Address  *string `json:"address"`
		City     *string `json:"city"`
		Capacity *int    `json:"capacity"`
		Surface  *string `json:"surface"`
		Image    *string `json:"image"`
	} `json:"venue"`
}

type playersEnvelope struct {
	Response []playerItem `json:"response"`
}

type playerItem struct {
	Player struct {
		ID        int64   `json:"id"`
		Name      string  `json:"name"`
		FirstName *string `json:"firstname"`
		LastName  *string `json:"lastname"`
		Age       *int    `json:"age"`
		Birth     struct {
			Date    *string `json:"date"`
			Place   *string `json:"place"`
			Country *string `json:"country"`
		} `json:"birth"`
		Nationality *string `json:"nationality"`
		Height      *string `json:"height"`
		Weight      *string `json:"weight"`
		Injured     bool    `json:"injured"`
		Photo       *string `json:"photo"`
	} `json:"player"`
}

type fixturesEnvelope struct {
	Response []fixtureItem `json:"response"`
}

type fixtureItem struct {
	Fixture struct {
		ID       int64   `json:"id"`
		Referee  *string `json:"referee"`
		Timezone string  `json:"timezone"`
		Date     string  `json:"date"`
		Status struct {
			Long    *string `json:"long"`
			Short   string  `json:"short"`
			Elapsed *int    `json:"elapsed"`
		} `json:"status"`
	} `json:"fixture"`
	League struct {
		ID      int64   `json:"id"`
		Name    string  `json:"name"`
		Country string  `json:"country"`
		Season  int     `json:"season"`
		Round   *string `json:"round"`
	} `json:"league"`
	Teams struct {
		Home fixtureTeamItem `json:"home"`
		Away fixtureTeamItem `json:"away"`
	} `json:"teams"`
	Goals struct {
		Home *int `json:"home"`
		Away *int `json:"away"`
	} `json:"goals"`
}

type fixtureTeamItem struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

func mapCountry(item countryItem) usecase.ExternalCountry {
	return usecase.ExternalCountry{
		Name: strings.TrimSpace(item.Name),
		Code: item.Code,
		Flag: item.Flag,
	}
}

func mapLeague(item leagueItem) usecase.ExternalLeague {
	seasons := make([]usecase.ExternalSeason, 0, len(item.Seasons))
	for _, s := range item.Seasons {
		seasons = append(seasons, usecase.ExternalSeason{
			Year:    s.Year,
			Start:   parseProviderDate(s.Start),
			End:     parseProviderDate(s.End),
			Current: s.Current,
		})
	}

	return usecase.ExternalLeague{
		ID:          item.League.ID,
		Name:        strings.TrimSpace(item.League.Name),
		Type:        strings.TrimSpace(item.League.Type),
		Logo:        item.League.Logo,
		CountryName: strings.TrimSpace(item.Country.Name),
		Seasons:     seasons,
	}
}

func mapTeamDetail(item teamItem) usecase.ExternalTeamDetail {
	detail := usecase.ExternalTeamDetail{
		Team: usecase.ExternalTeam{
			ID:          item.Team.ID,
			Name:        strings.TrimSpace(item.Team.Name),
			Code:        item.Team.Code,
			CountryName: strings.TrimSpace(item.Team.Country),
			Founded:     item.Team.Founded,
			National:    item.Team.National,
			Logo:        item.Team.Logo,
		},
	}

	if item.Venue.ID > 0 {
		detail.Venue = &usecase.ExternalVenue{
			ID:       item.Venue.ID,
			Name:     strings.TrimSpace(item.Venue.Name),
			Address:  item.Venue.Address,
			City:     item.Venue.City,
			Capacity: item.Venue.Capacity,
			Surface:  item.Venue.Surface,
			Image:    item.Venue.Image,
		}
	}

	return detail
}

func mapPlayer(item playerItem) usecase.ExternalPlayer {
	out := usecase.ExternalPlayer{
		ID:           item.Player.ID,
		Name:         strings.TrimSpace(item.Player.Name),
		FirstName:    item.Player.FirstName,
		LastName:     item.Player.LastName,
		Age:          item.Player.Age,
		BirthPlace:   item.Player.Birth.Place,
		BirthCountry: item.Player.Birth.Country,
		Nationality:  item.Player.Nationality,
		Height:       item.Player.Height,
		Weight:       item.Player.Weight,
		Injured:      item.Player.Injured,
		Photo:        item.Player.Photo,
	}

	if item.Player.Birth.Date != nil {
		if parsed := parseProviderDate(*item.Player.Birth.Date); !parsed.IsZero() {
			out.BirthDate = &parsed
		}
	}

	return out
}

func mapFixture(item fixtureItem) usecase.ExternalFixture {
	return usecase.ExternalFixture{
		ID:              item.Fixture.ID,
		Referee:         item.Fixture.Referee,
		Timezone:        strings.TrimSpace(item.Fixture.Timezone),
		KickoffAt:       parseProviderDateTime(item.Fixture.Date),
		StatusShort:     strings.TrimSpace(item.Fixture.Status.Short),
		StatusLong:      item.Fixture.Status.Long,
		Elapsed:         item.Fixture.Status.Elapsed,
		LeagueID:        item.League.ID,
		LeagueName:      strings.TrimSpace(item.League.Name),
		LeagueCountry:   strings.TrimSpace(item.League.Country),
		SeasonYear:      item.League.Season,
		Round:           item.League.Round,
		HomeTeamID:      item.Teams.Home.ID,
		HomeTeamName:    strings.TrimSpace(item.Teams.Home.Name),
		HomeTeamCountry: strings.TrimSpace(item.Teams.Home.Country),
		AwayTeamID:      item.Teams.Away.ID,
		AwayTeamName:    strings.TrimSpace(item.Teams.Away.Name),
		AwayTeamCountry: strings.TrimSpace(item.Teams.Away.Country),
		GoalsHome:       item.Goals.Home,
		GoalsAway:       item.Goals.Away,
	}
}

func parseProviderDate(value string) time.Time {
	parsed, err := time.Parse("2006-01-02", strings.TrimSpace(value))
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func parseProviderDateTime(value string) time.Time {
	parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}
	}
	return parsed
}
