package ports

import (
	"context"

	"github.com/trainmetrics/coaching-api/internal/core/domain"
)

// TokenPair carries the access/refresh pair returned on login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService implements account registration and credential lifecycle.
type AuthService interface {
	Register(ctx context.Context, email, password, name string, role domain.Role) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*TokenPair, *domain.User, error)
	// Refresh exchanges a valid refresh token for a new access token. A
	// refresh token is never accepted where an access token is expected and
	// vice versa.
	Refresh(ctx context.Context, refreshToken string) (string, error)
	// ForgotPassword issues a short-lived reset token for the account, if it
	// exists. The caller decides how the token is delivered.
	ForgotPassword(ctx context.Context, email string) (string, error)
	// ResetPassword consumes a reset token exactly once and replaces the
	// account password.
	ResetPassword(ctx context.Context, resetToken, newPassword string) error
}
