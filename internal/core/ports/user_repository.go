package ports

import (
	"context"

	"github.com/trainmetrics/coaching-api/internal/core/domain"
)

// UserRepository defines persistence operations for user principals.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
