// Package habits persists habits and their streak counters.
//
// Counter writes are conditioned on the version read by the caller, so two
// concurrent check-ins of the same habit can never both apply.
package habits

import (
	"context"

	"github.com/dmitrijs2005/streakkeeper/internal/server/models"
)

type Repository interface {
	// Create inserts h and fills in its server-assigned fields.
	Create(ctx context.Context, h *models.Habit) error

	// Get returns common.ErrorNotFound when no habit has the id.
	Get(ctx context.Context, id string) (*models.Habit, error)

	// ListByUser returns the user's habits in creation order.
	ListByUser(ctx context.Context, userID string) ([]models.Habit, error)

	// ListStreakRows returns owner and counters of every habit.
	ListStreakRows(ctx context.Context) ([]models.StreakRow, error)

	// UpdateStreak stores the counters of h if the row still carries
	// expectedVersion. It returns common.ErrVersionConflict otherwise and
	// bumps h.Version on success.
	UpdateStreak(ctx context.Context, h *models.Habit, expectedVersion int64) error

	// Rename and Delete act only on habits owned by userID and return
	// common.ErrorNotFound when nothing matched.
	Rename(ctx context.Context, userID, id, name string) error
	Delete(ctx context.Context, userID, id string) error
}
