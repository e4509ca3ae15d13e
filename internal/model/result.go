package model

import (
	"time"

	"go.uber.org/multierr"
)

// Result is everything one pass did to the replica, in the order it was done.
type Result struct {
	PassID     uint64    `json:"passId"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Actions    []Action  `json:"actions"`
}

func NewResult(passID uint64) *Result {
	return &Result{PassID: passID, StartedAt: time.Now()}
}

func (r *Result) Add(a Action) {
	r.Actions = append(r.Actions, a)
}

func (r *Result) Finish() {
	r.FinishedAt = time.Now()
}

func (r *Result) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

//Changes returns the successful mutations only.
func (r *Result) Changes() []Action {
	return r.filter(func(a Action) bool { return !a.Kind.IsFailure() })
}

func (r *Result) Failures() []Action {
	return r.filter(func(a Action) bool { return a.Kind.IsFailure() })
}

func (r *Result) Count(kind ActionKind) int {
	return len(r.filter(func(a Action) bool { return a.Kind == kind }))
}

func (r *Result) BytesCopied() int64 {
	var total int64
	for _, a := range r.Actions {
		if a.Kind == FileCopied || a.Kind == FileUpdated {
			total += a.Size
		}
	}
	return total
}

//Err combines all per-entry failures of the pass, nil if there were none.
func (r *Result) Err() error {
	var err error
	for _, a := range r.Failures() {
		if a.Err != nil {
			err = multierr.Append(err, a.Err)
		}
	}
	return err
}

func (r *Result) filter(keep func(Action) bool) []Action {
	var out []Action
	for _, a := range r.Actions {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}
