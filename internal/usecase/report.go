package usecase

import "fmt"

// Action classifies what reconciling one record did.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionSkipped Action = "skipped"
)

// Outcome is the result of reconciling a single raw record. Skips
// carry the reason so callers can inspect data-quality issues instead
// of digging through logs.
type Outcome struct {
	Kind   string
	Key    string
	Action Action
	Reason string
}

// Report accumulates outcomes across a batch or a whole run.
type Report struct {
	Outcomes []Outcome
	Created  int
	Updated  int
	Skipped  int
}

func NewReport() *Report {
	return &Report{}
}

func (r *Report) recordCreated(kind string, key any) {
	r.add(Outcome{Kind: kind, Key: fmt.Sprint(key), Action: ActionCreated})
}

func (r *Report) recordUpdated(kind string, key any) {
	r.add(Outcome{Kind: kind, Key: fmt.Sprint(key), Action: ActionUpdated})
}

func (r *Report) recordSkipped(kind string, key any, reason string) {
	r.add(Outcome{Kind: kind, Key: fmt.Sprint(key), Action: ActionSkipped, Reason: reason})
}

func (r *Report) add(outcome Outcome) {
	r.Outcomes = append(r.Outcomes, outcome)
	switch outcome.Action {
	case ActionCreated:
		r.Created++
	case ActionUpdated:
		r.Updated++
	case ActionSkipped:
		r.Skipped++
	}
}

func (r *Report) Processed() int {
	return len(r.Outcomes)
}

// SkippedFor lists the skip outcomes of one record kind.
func (r *Report) SkippedFor(kind string) []Outcome {
	var out []Outcome
	for _, outcome := range r.Outcomes {
		if outcome.Kind == kind && outcome.Action == ActionSkipped {
			out = append(out, outcome)
		}
	}
	return out
}
