package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/football-data/internal/domain/country"
	"github.com/riskibarqy/football-data/internal/domain/fixture"
	"github.com/riskibarqy/football-data/internal/domain/league"
	"github.com/riskibarqy/football-data/internal/domain/player"
	"github.com/riskibarqy/football-data/internal/domain/season"
	"github.com/riskibarqy/football-data/internal/domain/team"
	"github.com/riskibarqy/football-data/internal/domain/venue"
)

// memDB is an in-memory stand-in for the relational store. upsertErrs
// forces a failure for a specific "kind/key" to exercise error paths.
type memDB struct {
	countries map[string]country.Country
	leagues   map[int64]league.League
	seasons   map[int64]season.Season
	seasonSeq int64
	teams     map[int64]team.Team
	venues    map[int64]venue.Venue
	players   map[int64]player.Player
	fixtures  map[int64]fixture.Fixture

	upsertErrs map[string]error
	listErrs   map[string]error
}

func newMemDB() *memDB {
	return &memDB{
		countries:  map[string]country.Country{},
		leagues:    map[int64]league.League{},
		seasons:    map[int64]season.Season{},
		teams:      map[int64]team.Team{},
		venues:     map[int64]venue.Venue{},
		players:    map[int64]player.Player{},
		fixtures:   map[int64]fixture.Fixture{},
		upsertErrs: map[string]error{},
		listErrs:   map[string]error{},
	}
}

func (db *memDB) failUpsert(kind string, key any, err error) {
	db.upsertErrs[kind+"/"+fmt.Sprint(key)] = err
}

func (db *memDB) forcedErr(kind string, key any) error {
	return db.upsertErrs[kind+"/"+fmt.Sprint(key)]
}

func (db *memDB) repositories() Repositories {
	return Repositories{
		Countries: memCountryRepo{db},
		Leagues:   memLeagueRepo{db},
		Seasons:   memSeasonRepo{db},
		Teams:     memTeamRepo{db},
		Venues:    memVenueRepo{db},
		Players:   memPlayerRepo{db},
		Fixtures:  memFixtureRepo{db},
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func window[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return nil
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

type memCountryRepo struct{ db *memDB }

func (r memCountryRepo) Upsert(_ context.Context, c country.Country) error {
	if err := r.db.forcedErr("country", c.Name); err != nil {
		return err
	}
	r.db.countries[c.Name] = c
	return nil
}

func (r memCountryRepo) GetByName(_ context.Context, name string) (country.Country, bool, error) {
	c, ok := r.db.countries[name]
	return c, ok, nil
}

func (r memCountryRepo) DeleteUpdatedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for name, c := range r.db.countries {
		if c.LastUpdated.Before(cutoff) {
			delete(r.db.countries, name)
			n++
		}
	}
	return n, nil
}

type memLeagueRepo struct{ db *memDB }

func (r memLeagueRepo) Upsert(_ context.Context, l league.League) error {
	if err := r.db.forcedErr("league", l.ID); err != nil {
		return err
	}
	r.db.leagues[l.ID] = l
	return nil
}

func (r memLeagueRepo) GetByID(_ context.Context, id int64) (league.League, bool, error) {
	l, ok := r.db.leagues[id]
	return l, ok, nil
}

func (r memLeagueRepo) List(_ context.Context, filter league.Filter) ([]league.League, error) {
	if err := r.db.listErrs["league"]; err != nil {
		return nil, err
	}
	var out []league.League
	for _, l := range r.db.leagues {
		if filter.Name != "" && !containsFold(l.Name, filter.Name) {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return window(out, filter.Limit, filter.Offset), nil
}

func (r memLeagueRepo) DeleteUpdatedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for id, l := range r.db.leagues {
		if l.LastUpdated.Before(cutoff) {
			delete(r.db.leagues, id)
			n++
		}
	}
	return n, nil
}

type memSeasonRepo struct{ db *memDB }

func (r memSeasonRepo) Upsert(_ context.Context, s season.Season) (int64, error) {
	key := fmt.Sprintf("%d/%d", s.LeagueID, s.Year)
	if err := r.db.forcedErr("season", key); err != nil {
		return 0, err
	}
	for id, existing := range r.db.seasons {
		if existing.LeagueID == s.LeagueID && existing.Year == s.Year {
			s.ID = id
			r.db.seasons[id] = s
			return id, nil
		}
	}
	r.db.seasonSeq++
	s.ID = r.db.seasonSeq
	r.db.seasons[s.ID] = s
	return s.ID, nil
}

func (r memSeasonRepo) GetByLeagueYear(_ context.Context, leagueID int64, year int) (season.Season, bool, error) {
	for _, s := range r.db.seasons {
		if s.LeagueID == leagueID && s.Year == year {
			return s, true, nil
		}
	}
	return season.Season{}, false, nil
}

func (r memSeasonRepo) ListByLeague(_ context.Context, leagueID int64) ([]season.Season, error) {
	var out []season.Season
	for _, s := range r.db.seasons {
		if s.LeagueID == leagueID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out, nil
}

func (r memSeasonRepo) DeleteUpdatedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for id, s := range r.db.seasons {
		if s.LastUpdated.Before(cutoff) {
			delete(r.db.seasons, id)
			n++
		}
	}
	return n, nil
}

type memTeamRepo struct{ db *memDB }

func (r memTeamRepo) Upsert(_ context.Context, t team.Team) error {
	if err := r.db.forcedErr("team", t.ID); err != nil {
		return err
	}
	r.db.teams[t.ID] = t
	return nil
}

func (r memTeamRepo) GetByID(_ context.Context, id int64) (team.Team, bool, error) {
	t, ok := r.db.teams[id]
	return t, ok, nil
}

func (r memTeamRepo) List(_ context.Context, filter team.Filter) ([]team.Team, error) {
	if err := r.db.listErrs["team"]; err != nil {
		return nil, err
	}
	var out []team.Team
	for _, t := range r.db.teams {
		if filter.Name != "" && !containsFold(t.Name, filter.Name) {
			continue
		}
		if filter.Country != "" && t.CountryName != filter.Country {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return window(out, filter.Limit, filter.Offset), nil
}

func (r memTeamRepo) DeleteUpdatedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for id, t := range r.db.teams {
		if t.LastUpdated.Before(cutoff) {
			delete(r.db.teams, id)
			n++
		}
	}
	return n, nil
}

type memVenueRepo struct{ db *memDB }

func (r memVenueRepo) Upsert(_ context.Context, v venue.Venue) error {
	if err := r.db.forcedErr("venue", v.ID); err != nil {
		return err
	}
	r.db.venues[v.TeamID] = v
	return nil
}

func (r memVenueRepo) GetByTeam(_ context.Context, teamID int64) (venue.Venue, bool, error) {
	v, ok := r.db.venues[teamID]
	return v, ok, nil
}

func (r memVenueRepo) DeleteUpdatedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for teamID, v := range r.db.venues {
		if v.LastUpdated.Before(cutoff) {
			delete(r.db.venues, teamID)
			n++
		}
	}
	return n, nil
}

type memPlayerRepo struct{ db *memDB }

func (r memPlayerRepo) Upsert(_ context.Context, p player.Player) error {
	if err := r.db.forcedErr("player", p.ID); err != nil {
		return err
	}
	r.db.players[p.ID] = p
	return nil
}

func (r memPlayerRepo) GetByID(_ context.Context, id int64) (player.Player, bool, error) {
	p, ok := r.db.players[id]
	return p, ok, nil
}

func (r memPlayerRepo) List(_ context.Context, filter player.Filter) ([]player.Player, error) {
	if err := r.db.listErrs["player"]; err != nil {
		return nil, err
	}
	var out []player.Player
	for _, p := range r.db.players {
		if filter.Name != "" && !containsFold(p.Name, filter.Name) {
			continue
		}
		if filter.TeamID > 0 && p.TeamID != filter.TeamID {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return window(out, filter.Limit, filter.Offset), nil
}

func (r memPlayerRepo) DeleteUpdatedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for id, p := range r.db.players {
		if p.LastUpdated.Before(cutoff) {
			delete(r.db.players, id)
			n++
		}
	}
	return n, nil
}

type memFixtureRepo struct{ db *memDB }

func (r memFixtureRepo) Upsert(_ context.Context, f fixture.Fixture) error {
	if err := r.db.forcedErr("fixture", f.ID); err != nil {
		return err
	}
	r.db.fixtures[f.ID] = f
	return nil
}

func (r memFixtureRepo) GetByID(_ context.Context, id int64) (fixture.Fixture, bool, error) {
	f, ok := r.db.fixtures[id]
	return f, ok, nil
}

func (r memFixtureRepo) List(_ context.Context, filter fixture.Filter) ([]fixture.Fixture, error) {
	var out []fixture.Fixture
	for _, f := range r.db.fixtures {
		if filter.LeagueID > 0 && f.LeagueID != filter.LeagueID {
			continue
		}
		if !filter.From.IsZero() && f.KickoffAt.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && f.KickoffAt.After(filter.To) {
			continue
		}
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].KickoffAt.Before(out[j].KickoffAt) })
	return window(out, filter.Limit, filter.Offset), nil
}

// memTxRunner hands every unit of work the same repositories and
// tracks commit and rollback decisions.
type memTxRunner struct {
	db        *memDB
	commits   int
	rollbacks int
}

func (tx *memTxRunner) WithinTx(_ context.Context, fn func(Repositories) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			tx.rollbacks++
			err = fmt.Errorf("panic in transaction: %v", r)
		}
	}()
	if err := fn(tx.db.repositories()); err != nil {
		tx.rollbacks++
		return err
	}
	tx.commits++
	return nil
}
