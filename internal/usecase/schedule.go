package usecase

import (
	"fmt"
	"time"
)

// Phase tags one kind of refresh work inside a sync run.
type Phase string

const (
	// PhaseFixtures refreshes the prior calendar day's fixtures. It
	// runs on every day of the week.
	PhaseFixtures Phase = "fixtures"
	// PhaseReference refreshes countries and tracked leagues (Monday).
	PhaseReference Phase = "reference"
	// PhaseSquads refreshes teams and players for the day's roster
	// slice (Monday through Friday).
	PhaseSquads Phase = "squads"
	// PhaseVenues refreshes venues for every tracked team (Saturday).
	PhaseVenues Phase = "venues"
)

// Plan is the work a single run performs, derived purely from the day
// of week (0=Monday .. 6=Sunday).
type Plan struct {
	Day        int
	Phases     []Phase
	SliceStart int
	SliceEnd   int
}

func (p Plan) Contains(phase Phase) bool {
	for _, candidate := range p.Phases {
		if candidate == phase {
			return true
		}
	}
	return false
}

// TeamSlice returns the range of roster positions the squads phase
// covers on this plan's day. The [2d, 2d+2) windows partition a
// ten-team roster exactly across the five weekdays.
func (p Plan) TeamSlice(teams []int64) []int64 {
	if !p.Contains(PhaseSquads) {
		return nil
	}

	start, end := p.SliceStart, p.SliceEnd
	if start >= len(teams) {
		return nil
	}
	if end > len(teams) {
		end = len(teams)
	}
	return teams[start:end]
}

// PhasesFor maps a day of week to the refresh plan for that day.
func PhasesFor(day int) (Plan, error) {
	if day < 0 || day > 6 {
		return Plan{}, fmt.Errorf("%w: day must be within 0..6, got %d", ErrInvalidInput, day)
	}

	plan := Plan{Day: day, Phases: []Phase{PhaseFixtures}}
	if day == 0 {
		plan.Phases = append(plan.Phases, PhaseReference)
	}
	if day <= 4 {
		plan.Phases = append(plan.Phases, PhaseSquads)
		plan.SliceStart = 2 * day
		plan.SliceEnd = 2*day + 2
	}
	if day == 5 {
		plan.Phases = append(plan.Phases, PhaseVenues)
	}

	return plan, nil
}

// DayOfWeek converts a time to the 0=Monday .. 6=Sunday convention.
func DayOfWeek(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
