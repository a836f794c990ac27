package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/trainmetrics/coaching-api/internal/core/domain"
	"github.com/trainmetrics/coaching-api/internal/core/ports"
)

const minPasswordLength = 8

// AuthService implements registration, login and the token lifecycle.
type AuthService struct {
	users      ports.UserRepository
	tokens     ports.TokenService
	resetGuard ports.ResetTokenGuard
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenService, resetGuard ports.ResetTokenGuard) *AuthService {
	return &AuthService{users: users, tokens: tokens, resetGuard: resetGuard}
}

func (s *AuthService) Register(ctx context.Context, email, password, name string, role domain.Role) (*domain.User, error) {
	if email == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(password) < minPasswordLength {
		return nil, domain.ErrInvalidInput
	}
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() || role == domain.RoleAdmin {
		// Admin accounts are provisioned out of band, never self-registered.
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return s.users.Create(ctx, user)
}

// Login verifies the password and returns an access/refresh pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.TokenPair, *domain.User, error) {
	if email == "" || password == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if !user.Active {
		return nil, nil, domain.ErrInvalidCredentials
	}
	if user.PasswordHash == "" {
		// The credential lives with an external identity provider.
		return nil, nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	access, err := s.tokens.IssueAccess(user)
	if err != nil {
		return nil, nil, err
	}
	refresh, err := s.tokens.IssueRefresh(user)
	if err != nil {
		return nil, nil, err
	}

	return &ports.TokenPair{AccessToken: access, RefreshToken: refresh}, user, nil
}

// Refresh exchanges a refresh token for a new access token. The token must
// carry token_type=refresh; any other kind is rejected, never downgraded.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.Validate(refreshToken, ports.TokenTypeRefresh)
	if err != nil {
		return "", err
	}

	user, err := s.users.FindByID(ctx, claims.Subject)
	if err != nil {
		return "", domain.ErrTokenInvalid
	}
	if !user.Active {
		return "", domain.ErrTokenInvalid
	}
	return s.tokens.IssueAccess(user)
}

// ForgotPassword issues a reset token for the account. The token is returned
// to the caller of this service; delivery (mail) is outside this layer.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return s.tokens.IssuePasswordReset(user.ID)
}

// ResetPassword consumes a reset token exactly once and stores the new
// password hash. Replayed tokens are rejected even inside their validity
// window.
func (s *AuthService) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return domain.ErrInvalidInput
	}

	claims, err := s.tokens.Validate(resetToken, ports.TokenTypeReset)
	if err != nil {
		return err
	}

	used, err := s.resetGuard.IsUsed(ctx, resetToken)
	if err != nil {
		return err
	}
	if used {
		return domain.ErrTokenInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, claims.Subject, string(hash)); err != nil {
		return err
	}
	return s.resetGuard.MarkUsed(ctx, resetToken)
}
