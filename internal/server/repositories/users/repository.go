// Package users declares and implements storage of user accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/streakkeeper/internal/server/models"
)

type Repository interface {
	// Create inserts user. A taken username yields common.ErrAlreadyExists.
	Create(ctx context.Context, user *models.User) error
	// GetByUserName returns common.ErrorNotFound when no such user exists.
	GetByUserName(ctx context.Context, userName string) (*models.User, error)
}
