package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/football-data/internal/domain/fixture"
	"github.com/riskibarqy/football-data/internal/domain/league"
	"github.com/riskibarqy/football-data/internal/domain/player"
	"github.com/riskibarqy/football-data/internal/domain/season"
	"github.com/riskibarqy/football-data/internal/domain/team"
	"github.com/riskibarqy/football-data/internal/domain/venue"
	"github.com/riskibarqy/football-data/internal/usecase"
)

type leagueDTO struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Logo        *string   `json:"logo,omitempty"`
	Country     string    `json:"country"`
	LastUpdated time.Time `json:"lastUpdated"`
}

type seasonDTO struct {
	ID      int64  `json:"id"`
	Year    int    `json:"year"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Current bool   `json:"current"`
}

type teamDTO struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Code        *string   `json:"code,omitempty"`
	Country     string    `json:"country"`
	Founded     *int      `json:"founded,omitempty"`
	National    bool      `json:"national"`
	Logo        *string   `json:"logo,omitempty"`
	LastUpdated time.Time `json:"lastUpdated"`
}

type venueDTO struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Address  *string `json:"address,omitempty"`
	City     *string `json:"city,omitempty"`
	Capacity *int    `json:"capacity,omitempty"`
	Surface  *string `json:"surface,omitempty"`
	Image    *string `json:"image,omitempty"`
}

type playerDTO struct {
	ID          int64   `json:"id"`
	TeamID      int64   `json:"teamId"`
	Name        string  `json:"name"`
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	Age         *int    `json:"age,omitempty"`
	BirthDate   *string `json:"birthDate,omitempty"`
	Nationality *string `json:"nationality,omitempty"`
	Height      *string `json:"height,omitempty"`
	Weight      *string `json:"weight,omitempty"`
	Injured     bool    `json:"injured"`
	Photo       *string `json:"photo,omitempty"`
}

type scoreDTO struct {
	Goals     *int `json:"goals,omitempty"`
	Halftime  *int `json:"halftime,omitempty"`
	Fulltime  *int `json:"fulltime,omitempty"`
	Extratime *int `json:"extratime,omitempty"`
	Penalty   *int `json:"penalty,omitempty"`
}

type fixtureDTO struct {
	ID          int64     `json:"id"`
	LeagueID    int64     `json:"leagueId"`
	SeasonID    int64     `json:"seasonId"`
	KickoffAt   time.Time `json:"kickoffAt"`
	Timezone    string    `json:"timezone"`
	Round       *string   `json:"round,omitempty"`
	Referee     *string   `json:"referee,omitempty"`
	HomeTeamID  int64     `json:"homeTeamId"`
	AwayTeamID  int64     `json:"awayTeamId"`
	VenueID     *int64    `json:"venueId,omitempty"`
	StatusShort string    `json:"statusShort"`
	StatusLong  *string   `json:"statusLong,omitempty"`
	Elapsed     *int      `json:"elapsed,omitempty"`
	Home        scoreDTO  `json:"home"`
	Away        scoreDTO  `json:"away"`
}

type leagueDetailDTO struct {
	League         leagueDTO    `json:"league"`
	Seasons        []seasonDTO  `json:"seasons"`
	RecentFixtures []fixtureDTO `json:"recentFixtures"`
}

type teamDetailDTO struct {
	Team    teamDTO     `json:"team"`
	Venue   *venueDTO   `json:"venue,omitempty"`
	Players []playerDTO `json:"players"`
}

type searchResultDTO struct {
	Leagues []leagueDTO `json:"leagues"`
	Teams   []teamDTO   `json:"teams"`
	Players []playerDTO `json:"players"`
}

func leagueToDTO(l league.League) leagueDTO {
	return leagueDTO{
		ID:          l.ID,
		Name:        l.Name,
		Type:        l.Type,
		Logo:        l.Logo,
		Country:     l.CountryName,
		LastUpdated: l.LastUpdated,
	}
}

func seasonToDTO(s season.Season) seasonDTO {
	return seasonDTO{
		ID:      s.ID,
		Year:    s.Year,
		Start:   s.StartDate.Format("2006-01-02"),
		End:     s.EndDate.Format("2006-01-02"),
		Current: s.Current,
	}
}

func teamToDTO(t team.Team) teamDTO {
	return teamDTO{
		ID:          t.ID,
		Name:        t.Name,
		Code:        t.Code,
		Country:     t.CountryName,
		Founded:     t.Founded,
		National:    t.National,
		Logo:        t.Logo,
		LastUpdated: t.LastUpdated,
	}
}

func venueToDTO(v venue.Venue) venueDTO {
	return venueDTO{
		ID:       v.ID,
		Name:     v.Name,
		Address:  v.Address,
		City:     v.City,
		Capacity: v.Capacity,
		Surface:  v.Surface,
		Image:    v.Image,
	}
}

func playerToDTO(p player.Player) playerDTO {
	dto := playerDTO{
		ID:          p.ID,
		TeamID:      p.TeamID,
		Name:        p.Name,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Age:         p.Age,
		Nationality: p.Nationality,
		Height:      p.Height,
		Weight:      p.Weight,
		Injured:     p.Injured,
		Photo:       p.Photo,
	}
	if p.BirthDate != nil {
		formatted := p.BirthDate.Format("2006-01-02")
		dto.BirthDate = &formatted
	}
	return dto
}

func fixtureToDTO(f fixture.Fixture) fixtureDTO {
	return fixtureDTO{
		ID:          f.ID,
		LeagueID:    f.LeagueID,
		SeasonID:    f.SeasonID,
		KickoffAt:   f.KickoffAt,
		Timezone:    f.Timezone,
		Round:       f.Round,
		Referee:     f.Referee,
		HomeTeamID:  f.HomeTeamID,
		AwayTeamID:  f.AwayTeamID,
		VenueID:     f.VenueID,
		StatusShort: f.StatusShort,
		StatusLong:  f.StatusLong,
		Elapsed:     f.Elapsed,
		Home:        scoreDTO(f.Home),
		Away:        scoreDTO(f.Away),
	}
}

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	page, err := h.pageFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagues, err := h.browser.Leagues(ctx, usecase.LeagueQuery{
		Search: r.URL.Query().Get("q"),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "list leagues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leagueDTO, 0, len(leagues))
	for _, l := range leagues {
		items = append(items, leagueToDTO(l))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeague")
	defer span.End()

	id, err := pathID(r, "leagueID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	detail, err := h.browser.LeagueDetail(ctx, id)
	if err != nil {
		h.logger.WarnContext(ctx, "get league failed", "league_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	dto := leagueDetailDTO{
		League:         leagueToDTO(detail.League),
		Seasons:        make([]seasonDTO, 0, len(detail.Seasons)),
		RecentFixtures: make([]fixtureDTO, 0, len(detail.RecentFixtures)),
	}
	for _, s := range detail.Seasons {
		dto.Seasons = append(dto.Seasons, seasonToDTO(s))
	}
	for _, f := range detail.RecentFixtures {
		dto.RecentFixtures = append(dto.RecentFixtures, fixtureToDTO(f))
	}
	writeSuccess(ctx, w, http.StatusOK, dto)
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	page, err := h.pageFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teams, err := h.browser.Teams(ctx, usecase.TeamQuery{
		Search:  r.URL.Query().Get("q"),
		Country: r.URL.Query().Get("country"),
		Limit:   page.Limit,
		Offset:  page.Offset,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	id, err := pathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	detail, err := h.browser.TeamDetail(ctx, id)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	dto := teamDetailDTO{
		Team:    teamToDTO(detail.Team),
		Players: make([]playerDTO, 0, len(detail.Players)),
	}
	if detail.Venue != nil {
		v := venueToDTO(*detail.Venue)
		dto.Venue = &v
	}
	for _, p := range detail.Players {
		dto.Players = append(dto.Players, playerToDTO(p))
	}
	writeSuccess(ctx, w, http.StatusOK, dto)
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	page, err := h.pageFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	teamID, err := queryInt64(r, "team_id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	players, err := h.browser.Players(ctx, usecase.PlayerQuery{
		Search: r.URL.Query().Get("q"),
		TeamID: teamID,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFixtures")
	defer span.End()

	page, err := h.pageFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID, err := queryInt64(r, "league_id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	from, err := queryDate(r, "from")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	to, err := queryDate(r, "to")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if !to.IsZero() {
		// Make the "to" date inclusive of its whole day.
		to = to.Add(24*time.Hour - time.Nanosecond)
	}

	fixtures, err := h.browser.Fixtures(ctx, usecase.FixtureQuery{
		LeagueID: leagueID,
		From:     from,
		To:       to,
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "list fixtures failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]fixtureDTO, 0, len(fixtures))
	for _, f := range fixtures {
		items = append(items, fixtureToDTO(f))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetFixture(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFixture")
	defer span.End()

	id, err := pathID(r, "fixtureID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	f, err := h.browser.FixtureDetail(ctx, id)
	if err != nil {
		h.logger.WarnContext(ctx, "get fixture failed", "fixture_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, fixtureToDTO(f))
}

func (h *Handler) SearchAll(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchAll")
	defer span.End()

	result, err := h.browser.Search(ctx, strings.TrimSpace(r.URL.Query().Get("q")))
	if err != nil {
		h.logger.WarnContext(ctx, "search failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	dto := searchResultDTO{
		Leagues: make([]leagueDTO, 0, len(result.Leagues)),
		Teams:   make([]teamDTO, 0, len(result.Teams)),
		Players: make([]playerDTO, 0, len(result.Players)),
	}
	for _, l := range result.Leagues {
		dto.Leagues = append(dto.Leagues, leagueToDTO(l))
	}
	for _, t := range result.Teams {
		dto.Teams = append(dto.Teams, teamToDTO(t))
	}
	for _, p := range result.Players {
		dto.Players = append(dto.Players, playerToDTO(p))
	}
	writeSuccess(ctx, w, http.StatusOK, dto)
}
