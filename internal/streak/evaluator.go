// Package streak implements the check-in state machine for a single habit.
//
// A check-in is evaluated against calendar days in one reference location:
// a second check-in on the same day changes nothing, a check-in on the day
// after the previous one extends the streak, and anything later starts a new
// streak at 1. The longest streak is a running maximum and never decreases.
package streak

import (
	"time"

	"github.com/dmitrijs2005/streakkeeper/internal/timex"
)

// Outcome says how a check-in changed the streak.
type Outcome int

const (
	// AlreadyDone means the habit was already checked in today; nothing changed.
	AlreadyDone Outcome = iota + 1
	// Continued means the streak grew by one (this includes the first check-in).
	Continued
	// Reset means at least one day was missed and the streak restarted at 1.
	Reset
)

func (o Outcome) String() string {
	switch o {
	case AlreadyDone:
		return "already_done"
	case Continued:
		return "continued"
	case Reset:
		return "reset"
	default:
		return "unknown"
	}
}

// State is the persisted streak data of one habit.
type State struct {
	Current     int
	Longest     int
	LastCheckIn *time.Time
}

// Result is the state after a check-in plus how it was reached.
type Result struct {
	State
	Outcome Outcome
}

// Changed reports whether the result must be written back.
func (r Result) Changed() bool {
	return r.Outcome != AlreadyDone
}

// Evaluate applies a check-in at now to st. Days are compared in loc
// (UTC when nil). Evaluate has no side effects.
func Evaluate(st State, now time.Time, loc *time.Location) Result {
	today := timex.DateOf(now, loc)

	current := st.Current
	outcome := Continued

	if st.LastCheckIn != nil {
		last := timex.DateOf(*st.LastCheckIn, loc)
		switch {
		case last == today:
			return Result{State: st, Outcome: AlreadyDone}
		case last.After(today):
			// Recorded on a later day than now (clock skew). Counted as a
			// gap so the streak cannot grow from a misdated row.
			current = 1
			outcome = Reset
		case last == today.AddDays(-1):
			current++
		default:
			current = 1
			outcome = Reset
		}
	} else {
		current++
	}

	checkedAt := now
	return Result{
		State: State{
			Current:     current,
			Longest:     max(st.Longest, current),
			LastCheckIn: &checkedAt,
		},
		Outcome: outcome,
	}
}

// CheckedInOn reports whether st records a check-in on day in loc.
func (st State) CheckedInOn(day timex.Date, loc *time.Location) bool {
	return st.LastCheckIn != nil && timex.DateOf(*st.LastCheckIn, loc) == day
}

// Alive reports whether the streak can still be extended: the last check-in
// was today or yesterday relative to now.
func (st State) Alive(now time.Time, loc *time.Location) bool {
	if st.LastCheckIn == nil || st.Current == 0 {
		return false
	}
	today := timex.DateOf(now, loc)
	return st.CheckedInOn(today, loc) || st.CheckedInOn(today.AddDays(-1), loc)
}
