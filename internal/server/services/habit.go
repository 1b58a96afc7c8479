package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/streakkeeper/internal/common"
	"github.com/dmitrijs2005/streakkeeper/internal/logging"
	"github.com/dmitrijs2005/streakkeeper/internal/server/models"
	"github.com/dmitrijs2005/streakkeeper/internal/server/repositories/habits"
	"github.com/dmitrijs2005/streakkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/streakkeeper/internal/streak"
	"github.com/dmitrijs2005/streakkeeper/internal/timex"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
)

const maxHabitNameLen = 100

// HabitView is a stored habit plus flags derived from the current day.
// The counters are exactly what is stored; a lapsed streak is only reset by
// the next check-in.
type HabitView struct {
	models.Habit
	CheckedInToday bool
	Alive          bool
}

// CheckInResult is the habit after a check-in and how its streak moved.
type CheckInResult struct {
	Outcome streak.Outcome
	Habit   *models.Habit
}

// HabitService owns habit CRUD and the check-in read-evaluate-write cycle.
type HabitService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
	loc         *time.Location
	now         func() time.Time
	// conflictBackoff is the pause before the single re-read after a lost
	// update.
	conflictBackoff time.Duration
}

func NewHabitService(db *sql.DB, m repomanager.RepositoryManager, loc *time.Location, log logging.Logger) *HabitService {
	if loc == nil {
		loc = time.UTC
	}
	return &HabitService{
		db:              db,
		repomanager:     m,
		log:             log.With("module", "habits"),
		loc:             loc,
		now:             time.Now,
		conflictBackoff: 20 * time.Millisecond,
	}
}

// CheckIn records today's check-in for the caller's habit.
//
// The write only lands if nobody else updated the habit since it was read.
// A lost race is retried once from a fresh read; losing twice returns
// common.ErrConflict and leaves the habit as the winner wrote it.
func (s *HabitService) CheckIn(ctx context.Context, userID, habitID string) (*CheckInResult, error) {
	if err := validateHabitID(habitID); err != nil {
		return nil, err
	}

	repo := s.repomanager.Habits(s.db)

	var result *CheckInResult
	backoff := retry.WithMaxRetries(1, retry.NewConstant(s.conflictBackoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		r, err := s.checkInOnce(ctx, repo, userID, habitID)
		if errors.Is(err, common.ErrVersionConflict) {
			s.log.Debug(ctx, "check-in lost a concurrent update", "habit_id", habitID)
			return retry.RetryableError(err)
		}
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if errors.Is(err, common.ErrVersionConflict) {
		s.log.Warn(ctx, "check-in conflict persisted after retry", "habit_id", habitID)
		return nil, fmt.Errorf("%w: habit %s", common.ErrConflict, habitID)
	}
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "check-in",
		"habit_id", habitID,
		"outcome", result.Outcome.String(),
		"current_streak", result.Habit.CurrentStreak,
	)
	return result, nil
}

func (s *HabitService) checkInOnce(ctx context.Context, repo habits.Repository, userID, habitID string) (*CheckInResult, error) {
	h, err := s.ownedHabit(ctx, repo, userID, habitID)
	if err != nil {
		return nil, err
	}

	res := streak.Evaluate(h.StreakState(), s.now(), s.loc)
	if !res.Changed() {
		return &CheckInResult{Outcome: res.Outcome, Habit: h}, nil
	}

	readVersion := h.Version
	h.CurrentStreak = res.Current
	h.LongestStreak = res.Longest
	h.LastCheckIn = res.LastCheckIn

	if err := repo.UpdateStreak(ctx, h, readVersion); err != nil {
		if errors.Is(err, common.ErrVersionConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating streak: %w", err)
	}
	return &CheckInResult{Outcome: res.Outcome, Habit: h}, nil
}

// Create adds a habit with zeroed counters.
func (s *HabitService) Create(ctx context.Context, userID, name string) (*HabitView, error) {
	name, err := normalizeHabitName(name)
	if err != nil {
		return nil, err
	}

	h := &models.Habit{ID: uuid.NewString(), UserID: userID, Name: name}
	if err := s.repomanager.Habits(s.db).Create(ctx, h); err != nil {
		return nil, fmt.Errorf("error creating habit: %w", err)
	}
	v := s.view(*h, s.now())
	return &v, nil
}

// List returns the caller's habits in creation order.
func (s *HabitService) List(ctx context.Context, userID string) ([]HabitView, error) {
	items, err := s.repomanager.Habits(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing habits: %w", err)
	}

	now := s.now()
	views := make([]HabitView, len(items))
	for i, h := range items {
		views[i] = s.view(h, now)
	}
	return views, nil
}

func (s *HabitService) view(h models.Habit, now time.Time) HabitView {
	st := h.StreakState()
	return HabitView{
		Habit:          h,
		CheckedInToday: st.CheckedInOn(timex.DateOf(now, s.loc), s.loc),
		Alive:          st.Alive(now, s.loc),
	}
}

func (s *HabitService) Rename(ctx context.Context, userID, habitID, name string) (*HabitView, error) {
	if err := validateHabitID(habitID); err != nil {
		return nil, err
	}
	name, err := normalizeHabitName(name)
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.Habits(s.db)
	h, err := s.ownedHabit(ctx, repo, userID, habitID)
	if err != nil {
		return nil, err
	}
	if err := repo.Rename(ctx, userID, habitID, name); err != nil {
		return nil, fmt.Errorf("error renaming habit: %w", err)
	}
	h.Name = name
	v := s.view(*h, s.now())
	return &v, nil
}

func (s *HabitService) Delete(ctx context.Context, userID, habitID string) error {
	if err := validateHabitID(habitID); err != nil {
		return err
	}

	repo := s.repomanager.Habits(s.db)
	if _, err := s.ownedHabit(ctx, repo, userID, habitID); err != nil {
		return err
	}
	if err := repo.Delete(ctx, userID, habitID); err != nil {
		return fmt.Errorf("error deleting habit: %w", err)
	}
	s.log.Info(ctx, "habit deleted", "habit_id", habitID)
	return nil
}

// ownedHabit reads a habit and checks that userID owns it.
func (s *HabitService) ownedHabit(ctx context.Context, repo habits.Repository, userID, habitID string) (*models.Habit, error) {
	h, err := repo.Get(ctx, habitID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("habit %s: %w", habitID, common.ErrorNotFound)
		}
		return nil, fmt.Errorf("error reading habit: %w", err)
	}
	if h.UserID != userID {
		return nil, fmt.Errorf("habit %s: %w", habitID, common.ErrorUnauthorized)
	}
	return h, nil
}

func validateHabitID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: habit id is required", common.ErrValidation)
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: habit id %q is not a uuid", common.ErrValidation, id)
	}
	return nil
}

func normalizeHabitName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: habit name is required", common.ErrValidation)
	}
	if utf8.RuneCountInString(name) > maxHabitNameLen {
		return "", fmt.Errorf("%w: habit name is longer than %d characters", common.ErrValidation, maxHabitNameLen)
	}
	return name, nil
}
