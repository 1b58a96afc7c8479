// Package models defines server-side data models persisted in the database.
package models

import (
	"time"

	"github.com/dmitrijs2005/streakkeeper/internal/streak"
)

// Habit is one user-declared habit and its streak counters.
type Habit struct {
	ID            string
	UserID        string
	Name          string
	CurrentStreak int
	LongestStreak int
	// LastCheckIn is nil until the first check-in.
	LastCheckIn *time.Time
	// Version increases on every counter update and guards concurrent check-ins.
	Version   int64
	CreatedAt time.Time
}

// StreakState returns the counters in the form the streak evaluator uses.
func (h *Habit) StreakState() streak.State {
	return streak.State{
		Current:     h.CurrentStreak,
		Longest:     h.LongestStreak,
		LastCheckIn: h.LastCheckIn,
	}
}

// StreakRow is the slice of a habit read for the leaderboard.
type StreakRow struct {
	UserID        string
	CurrentStreak int
	LastCheckIn   *time.Time
}
