// Package leaderboard reduces per-habit streak rows to one ranked standing
// per user and attaches display names to the top of that ranking.
package leaderboard

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/dmitrijs2005/streakkeeper/internal/common"
	"github.com/dmitrijs2005/streakkeeper/internal/timex"
)

// DefaultLimit is the number of entries returned when no limit is given.
const DefaultLimit = 20

// Row is the part of a habit the reducer looks at.
type Row struct {
	UserID        string
	CurrentStreak int
	LastCheckIn   *time.Time
}

// Standing is a user's best current streak across all their habits.
type Standing struct {
	UserID string
	Best   int
}

// Entry is a ranked, display-ready standing.
type Entry struct {
	Rank              int
	UserID            string
	DisplayName       string
	BestCurrentStreak int
}

// Stats summarises the whole habit set, not just the ranked users.
type Stats struct {
	TotalHabits  int
	TrackedUsers int
	ActiveToday  int
	TopStreak    int
}

// NameLookup resolves display names for a set of users. Users without a
// profile are simply absent from the returned map.
type NameLookup func(ctx context.Context, userIDs []string) (map[string]string, error)

// Rank groups rows by user, keeps each user's highest current streak and
// returns the best limit standings, highest first. Users with equal streaks
// keep the order in which they first appear in rows. A limit <= 0 means
// DefaultLimit.
func Rank(rows []Row, limit int) []Standing {
	if limit <= 0 {
		limit = DefaultLimit
	}

	index := make(map[string]int, len(rows))
	standings := make([]Standing, 0)

	for _, r := range rows {
		best := max(r.CurrentStreak, 0)
		i, seen := index[r.UserID]
		if !seen {
			index[r.UserID] = len(standings)
			standings = append(standings, Standing{UserID: r.UserID, Best: best})
			continue
		}
		if best > standings[i].Best {
			standings[i].Best = best
		}
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Best > standings[j].Best
	})

	if len(standings) > limit {
		standings = standings[:limit]
	}
	return standings
}

// Enrich turns standings into entries with display names. A failed lookup
// does not fail enrichment: every name falls back to common.UnknownUserName
// and the lookup error is returned alongside the complete entry list.
func Enrich(ctx context.Context, standings []Standing, lookup NameLookup) ([]Entry, error) {
	entries := make([]Entry, len(standings))
	if len(standings) == 0 {
		return entries, nil
	}

	ids := make([]string, len(standings))
	for i, s := range standings {
		ids[i] = s.UserID
	}

	var names map[string]string
	var lookupErr error
	if lookup != nil {
		names, lookupErr = lookup(ctx, ids)
		if lookupErr != nil {
			names = nil
		}
	}

	for i, s := range standings {
		name := strings.TrimSpace(names[s.UserID])
		if name == "" {
			name = common.UnknownUserName
		}
		entries[i] = Entry{
			Rank:              i + 1,
			UserID:            s.UserID,
			DisplayName:       name,
			BestCurrentStreak: s.Best,
		}
	}

	return entries, lookupErr
}

// ComputeStats counts over the ungrouped rows. ActiveToday counts habits whose
// last check-in falls on today in loc.
func ComputeStats(rows []Row, today timex.Date, loc *time.Location) Stats {
	var stats Stats
	users := make(map[string]struct{})

	for _, r := range rows {
		stats.TotalHabits++
		users[r.UserID] = struct{}{}
		if r.LastCheckIn != nil && timex.DateOf(*r.LastCheckIn, loc) == today {
			stats.ActiveToday++
		}
		if r.CurrentStreak > stats.TopStreak {
			stats.TopStreak = r.CurrentStreak
		}
	}

	stats.TrackedUsers = len(users)
	return stats
}
