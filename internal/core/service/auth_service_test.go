package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/trainmetrics/coaching-api/internal/core/domain"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		r.nextID++
		copy.ID = "user_" + strconv.Itoa(r.nextID)
	}
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

type memoryResetGuard struct {
	used map[string]bool
}

func newMemoryResetGuard() *memoryResetGuard {
	return &memoryResetGuard{used: make(map[string]bool)}
}

func (g *memoryResetGuard) IsUsed(_ context.Context, token string) (bool, error) {
	return g.used[token], nil
}

func (g *memoryResetGuard) MarkUsed(_ context.Context, token string) error {
	g.used[token] = true
	return nil
}

func newTestAuthService() (*AuthService, *stubUserRepo) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newTestTokenService(), newMemoryResetGuard())
	return svc, repo
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, _ := newTestAuthService()

	user, err := svc.Register(context.Background(), "alice@example.com", "s3cret-pass", "Alice", domain.RoleTrainer)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.PasswordHash == "s3cret-pass" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-pass")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleTrainer {
		t.Fatalf("unexpected role: %s", user.Role)
	}
	if !user.Active {
		t.Fatalf("expected new user to be active")
	}
}

func TestAuthService_Register_DefaultsToUserRole(t *testing.T) {
	svc, _ := newTestAuthService()

	user, err := svc.Register(context.Background(), "bob@example.com", "s3cret-pass", "Bob", "")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected default role user, got %s", user.Role)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "", "s3cret-pass", "Nameless", domain.RoleUser); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing email, got %v", err)
	}
	if _, err := svc.Register(ctx, "short@example.com", "short", "Short", domain.RoleUser); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for short password, got %v", err)
	}
	// Admin accounts cannot be self-registered.
	if _, err := svc.Register(ctx, "eve@example.com", "s3cret-pass", "Eve", domain.RoleAdmin); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for admin role, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "carol@example.com", "s3cret-pass", "Carol", domain.RoleUser); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(ctx, "carol@example.com", "other-pass1", "Carol Again", domain.RoleUser); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "carol@example.com", "s3cret-pass", "Carol", domain.RoleTrainer); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	pair, user, err := svc.Login(ctx, "carol@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", pair)
	}
	if user.Email != "carol@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, _ = svc.Register(ctx, "dave@example.com", "s3cret-pass", "Dave", domain.RoleUser)

	if _, _, err := svc.Login(ctx, "dave@example.com", "wrong-pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	svc, repo := newTestAuthService()
	ctx := context.Background()

	created, _ := svc.Register(ctx, "dora@example.com", "s3cret-pass", "Dora", domain.RoleUser)
	repo.users[created.ID].Active = false

	if _, _, err := svc.Login(ctx, "dora@example.com", "s3cret-pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_ExternalOnlyAccount(t *testing.T) {
	svc, repo := newTestAuthService()
	ctx := context.Background()

	// An account provisioned by the external identity provider has no local
	// password hash and can never log in locally.
	repo.users["user_ext"] = &domain.User{ID: "user_ext", Email: "ext@example.com", Role: domain.RoleUser, Active: true}

	if _, _, err := svc.Login(ctx, "ext@example.com", "anything-goes"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Refresh(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, _ = svc.Register(ctx, "erin@example.com", "s3cret-pass", "Erin", domain.RoleUser)
	pair, _, err := svc.Login(ctx, "erin@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	access, err := svc.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if access == "" {
		t.Fatalf("expected new access token")
	}

	// An access token is never accepted in place of a refresh token.
	if _, err := svc.Refresh(ctx, pair.AccessToken); !errors.Is(err, domain.ErrTokenTypeMismatch) {
		t.Fatalf("expected ErrTokenTypeMismatch, got %v", err)
	}
}

func TestAuthService_Refresh_DeactivatedUser(t *testing.T) {
	svc, repo := newTestAuthService()
	ctx := context.Background()

	created, _ := svc.Register(ctx, "frank@example.com", "s3cret-pass", "Frank", domain.RoleUser)
	pair, _, err := svc.Login(ctx, "frank@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	repo.users[created.ID].Active = false

	if _, err := svc.Refresh(ctx, pair.RefreshToken); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestAuthService_PasswordResetFlow(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, _ = svc.Register(ctx, "gail@example.com", "old-password", "Gail", domain.RoleUser)

	token, err := svc.ForgotPassword(ctx, "gail@example.com")
	if err != nil {
		t.Fatalf("ForgotPassword returned error: %v", err)
	}

	if err := svc.ResetPassword(ctx, token, "new-password1"); err != nil {
		t.Fatalf("ResetPassword returned error: %v", err)
	}

	if _, _, err := svc.Login(ctx, "gail@example.com", "old-password"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password should no longer work, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "gail@example.com", "new-password1"); err != nil {
		t.Fatalf("new password should work: %v", err)
	}
}

func TestAuthService_ResetTokenSingleUse(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, _ = svc.Register(ctx, "hank@example.com", "old-password", "Hank", domain.RoleUser)
	token, _ := svc.ForgotPassword(ctx, "hank@example.com")

	if err := svc.ResetPassword(ctx, token, "new-password1"); err != nil {
		t.Fatalf("first reset failed: %v", err)
	}
	if err := svc.ResetPassword(ctx, token, "new-password2"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected replay to fail with ErrTokenInvalid, got %v", err)
	}
}

func TestAuthService_ResetRejectsOtherTokenKinds(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, _ = svc.Register(ctx, "iris@example.com", "s3cret-pass", "Iris", domain.RoleUser)
	pair, _, err := svc.Login(ctx, "iris@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.ResetPassword(ctx, pair.AccessToken, "new-password1"); !errors.Is(err, domain.ErrTokenTypeMismatch) {
		t.Fatalf("expected ErrTokenTypeMismatch for access token, got %v", err)
	}
}

func TestAuthService_ForgotPassword_UnknownEmail(t *testing.T) {
	svc, _ := newTestAuthService()

	if _, err := svc.ForgotPassword(context.Background(), "ghost@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
