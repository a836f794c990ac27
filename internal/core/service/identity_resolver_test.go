package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/trainmetrics/coaching-api/internal/core/domain"
	"github.com/trainmetrics/coaching-api/internal/core/ports"
)

type resolverFixture struct {
	resolver *IdentityResolver
	tokens   *TokenService
	keys     *APIKeyService
	keyRepo  *stubKeyRepo
	userRepo *stubUserRepo
}

func newResolverFixture(devKey string) *resolverFixture {
	tokens := newTestTokenService()
	keyRepo := newStubKeyRepo()
	keys := NewAPIKeyService(keyRepo, nil, zerolog.Nop())
	userRepo := newStubUserRepo()
	return &resolverFixture{
		resolver: NewIdentityResolver(tokens, keys, userRepo, devKey, zerolog.Nop()),
		tokens:   tokens,
		keys:     keys,
		keyRepo:  keyRepo,
		userRepo: userRepo,
	}
}

func TestIdentityResolver_BearerToken(t *testing.T) {
	f := newResolverFixture("")
	token, err := f.tokens.IssueAccess(&domain.User{ID: "user_1", Email: "alice@example.com", Name: "Alice", Role: domain.RoleTrainer})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	identity, err := f.resolver.Resolve(context.Background(), token, "")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if identity.UserID != "user_1" {
		t.Fatalf("unexpected user: %s", identity.UserID)
	}
	if identity.Method != domain.AuthMethodBearer {
		t.Fatalf("unexpected method: %s", identity.Method)
	}
	if identity.Role != domain.RoleTrainer {
		t.Fatalf("unexpected role: %s", identity.Role)
	}
	if identity.TenantFilter() != "user_1" {
		t.Fatalf("unexpected tenant filter: %q", identity.TenantFilter())
	}
}

func TestIdentityResolver_AdminTenantBypass(t *testing.T) {
	f := newResolverFixture("")
	token, _ := f.tokens.IssueAccess(&domain.User{ID: "admin_1", Role: domain.RoleAdmin})

	identity, err := f.resolver.Resolve(context.Background(), token, "")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if !identity.IsAdmin {
		t.Fatalf("expected admin identity")
	}
	if identity.TenantFilter() != "" {
		t.Fatalf("admin tenant filter must be empty, got %q", identity.TenantFilter())
	}
}

func TestIdentityResolver_APIKey(t *testing.T) {
	f := newResolverFixture("")
	owner, _ := f.userRepo.Create(context.Background(), &domain.User{Email: "bob@example.com", Name: "Bob", Role: domain.RoleTrainer, Active: true})
	key, err := f.keys.Create(context.Background(), ports.CreateAPIKeyInput{OwnerID: owner.ID, Name: "ci"})
	if err != nil {
		t.Fatalf("create key: %v", err)
	}

	identity, err := f.resolver.Resolve(context.Background(), "", key.Value)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if identity.Method != domain.AuthMethodAPIKey {
		t.Fatalf("unexpected method: %s", identity.Method)
	}
	if identity.UserID != owner.ID {
		t.Fatalf("unexpected user: %s", identity.UserID)
	}
	if identity.Role != domain.RoleTrainer {
		t.Fatalf("expected role from user record, got %s", identity.Role)
	}
}

func TestIdentityResolver_APIKeyUnknownOwnerDefaultsToUserRole(t *testing.T) {
	f := newResolverFixture("")
	key, _ := f.keys.Create(context.Background(), ports.CreateAPIKeyInput{OwnerID: "orphan_user", Name: "orphan"})

	identity, err := f.resolver.Resolve(context.Background(), "", key.Value)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if identity.Role != domain.RoleUser {
		t.Fatalf("expected least-privileged role, got %s", identity.Role)
	}
}

func TestIdentityResolver_StaleBearerFallsBackToAPIKey(t *testing.T) {
	f := newResolverFixture("")
	owner, _ := f.userRepo.Create(context.Background(), &domain.User{Email: "carol@example.com", Role: domain.RoleUser, Active: true})
	key, _ := f.keys.Create(context.Background(), ports.CreateAPIKeyInput{OwnerID: owner.ID, Name: "fallback"})

	expired := signTestToken(t, "internal-secret", jwt.MapClaims{
		"sub":  "user_1",
		"role": "user",
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})

	identity, err := f.resolver.Resolve(context.Background(), expired, key.Value)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if identity.Method != domain.AuthMethodAPIKey {
		t.Fatalf("expected api key to rescue the request, got method %s", identity.Method)
	}
	if identity.UserID != owner.ID {
		t.Fatalf("unexpected user: %s", identity.UserID)
	}
}

func TestIdentityResolver_StaleBearerAloneFails(t *testing.T) {
	f := newResolverFixture("")
	expired := signTestToken(t, "internal-secret", jwt.MapClaims{
		"sub": "user_1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	if _, err := f.resolver.Resolve(context.Background(), expired, ""); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestIdentityResolver_NoRoleDoesNotFallThrough(t *testing.T) {
	f := newResolverFixture("")
	owner, _ := f.userRepo.Create(context.Background(), &domain.User{Email: "dave@example.com", Role: domain.RoleUser, Active: true})
	key, _ := f.keys.Create(context.Background(), ports.CreateAPIKeyInput{OwnerID: owner.ID, Name: "unused"})

	// A verified session that has not been provisioned must not be rescued
	// by a key belonging to someone else.
	noRole := signTestToken(t, "internal-secret", jwt.MapClaims{
		"sub":  "fresh_user",
		"role": "authenticated",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	if _, err := f.resolver.Resolve(context.Background(), noRole, key.Value); !errors.Is(err, domain.ErrNoRoleAssigned) {
		t.Fatalf("expected ErrNoRoleAssigned, got %v", err)
	}
}

func TestIdentityResolver_ExternalBearer(t *testing.T) {
	f := newResolverFixture("")
	external := signTestToken(t, "external-secret", jwt.MapClaims{
		"sub": "ext_1",
		"custom_claims": map[string]interface{}{
			"role": "user",
		},
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	identity, err := f.resolver.Resolve(context.Background(), external, "")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if identity.UserID != "ext_1" {
		t.Fatalf("unexpected user: %s", identity.UserID)
	}
	if identity.Method != domain.AuthMethodBearer {
		t.Fatalf("unexpected method: %s", identity.Method)
	}
}

func TestIdentityResolver_NoCredentials(t *testing.T) {
	f := newResolverFixture("")

	if _, err := f.resolver.Resolve(context.Background(), "", ""); !errors.Is(err, domain.ErrNoCredentials) {
		t.Fatalf("expected ErrNoCredentials, got %v", err)
	}
}

func TestIdentityResolver_DevKey(t *testing.T) {
	f := newResolverFixture("local-dev-key")

	identity, err := f.resolver.Resolve(context.Background(), "", "local-dev-key")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if identity.UserID != devAdminID {
		t.Fatalf("unexpected user: %s", identity.UserID)
	}
	if !identity.IsAdmin {
		t.Fatalf("dev key must map to an admin identity")
	}
}

func TestIdentityResolver_DevKeyDisabledByDefault(t *testing.T) {
	f := newResolverFixture("")

	if _, err := f.resolver.Resolve(context.Background(), "", "local-dev-key"); !errors.Is(err, domain.ErrAPIKeyInvalid) {
		t.Fatalf("expected ErrAPIKeyInvalid, got %v", err)
	}
}
