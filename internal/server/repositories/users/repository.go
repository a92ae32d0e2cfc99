// Package users declares and implements persistence for user accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/ragvault/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
