// Package profiles stores the public display names shown on the leaderboard.
package profiles

import (
	"context"

	"github.com/dmitrijs2005/streakkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.Profile) error
	// EnsureExists creates the profile when it is missing and leaves an
	// existing one untouched.
	EnsureExists(ctx context.Context, p *models.Profile) error
	// GetDisplayNames resolves a set of user ids in one round trip. Ids
	// without a profile are absent from the result.
	GetDisplayNames(ctx context.Context, userIDs []string) (map[string]string, error)
}
