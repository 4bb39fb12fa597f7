// Package users declares and implements the account repository.
package users

import (
	"context"

	"github.com/dmitrijs2005/fitcal/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	// LockCurrentVersion reads the user's backup version and holds a row
	// lock until the surrounding transaction ends.
	LockCurrentVersion(ctx context.Context, userID string) (int64, error)
	IncrementCurrentVersion(ctx context.Context, userID string) (int64, error)
}
