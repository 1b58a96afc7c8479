// Package refreshtokens stores the opaque refresh tokens issued at login.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/streakkeeper/internal/server/models"
)

// Repository defines operations for issuing, retrieving, and revoking refresh tokens.
type Repository interface {
	// Create stores token for userID, valid until expires.
	Create(ctx context.Context, userID string, token string, expires time.Time) error

	// Find returns common.ErrorNotFound when the token is unknown.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete revokes token. It returns common.ErrorNotFound when nothing was
	// deleted, so a token can be consumed only once.
	Delete(ctx context.Context, token string) error
}
