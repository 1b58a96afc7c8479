package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/streakkeeper/internal/leaderboard"
	"github.com/dmitrijs2005/streakkeeper/internal/logging"
	"github.com/dmitrijs2005/streakkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/streakkeeper/internal/timex"
)

// MaxLeaderboardLimit caps the number of entries a caller can ask for.
const MaxLeaderboardLimit = 100

// Leaderboard is the ranked view over every user's habits.
type Leaderboard struct {
	Entries     []leaderboard.Entry
	Stats       leaderboard.Stats
	GeneratedAt time.Time
}

// LeaderboardService computes the leaderboard on demand. It never writes.
type LeaderboardService struct {
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	log          logging.Logger
	loc          *time.Location
	now          func() time.Time
	defaultLimit int
}

func NewLeaderboardService(db *sql.DB, m repomanager.RepositoryManager, loc *time.Location, defaultLimit int, log logging.Logger) *LeaderboardService {
	if loc == nil {
		loc = time.UTC
	}
	if defaultLimit <= 0 {
		defaultLimit = leaderboard.DefaultLimit
	}
	return &LeaderboardService{
		db:           db,
		repomanager:  m,
		log:          log.With("module", "leaderboard"),
		loc:          loc,
		now:          time.Now,
		defaultLimit: min(defaultLimit, MaxLeaderboardLimit),
	}
}

// GetLeaderboard ranks users by their best current streak. A limit of zero
// or less selects the configured default. Failure to resolve display names
// is logged and the affected entries carry the placeholder name.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, limit int) (*Leaderboard, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}
	limit = min(limit, MaxLeaderboardLimit)

	streakRows, err := s.repomanager.Habits(s.db).ListStreakRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("error reading habits: %w", err)
	}

	rows := make([]leaderboard.Row, len(streakRows))
	for i, r := range streakRows {
		rows[i] = leaderboard.Row{UserID: r.UserID, CurrentStreak: r.CurrentStreak, LastCheckIn: r.LastCheckIn}
	}

	standings := leaderboard.Rank(rows, limit)

	profiles := s.repomanager.Profiles(s.db)
	entries, err := leaderboard.Enrich(ctx, standings, profiles.GetDisplayNames)
	if err != nil {
		s.log.Warn(ctx, "display name lookup failed", "users", len(standings), "error", err)
	}

	now := s.now()
	return &Leaderboard{
		Entries:     entries,
		Stats:       leaderboard.ComputeStats(rows, timex.DateOf(now, s.loc), s.loc),
		GeneratedAt: now,
	}, nil
}
