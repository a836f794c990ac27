package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/trainmetrics/coaching-api/internal/core/domain"
	"github.com/trainmetrics/coaching-api/internal/core/ports"
)

// devAdminID is the synthetic principal mapped to the development API key.
const devAdminID = "dev-admin"

// IdentityResolver picks exactly one authentication strategy per request and
// produces a normalized CallerIdentity.
type IdentityResolver struct {
	tokens ports.TokenService
	keys   ports.APIKeyService
	users  ports.UserRepository
	// devKey, when non-empty, is accepted unconditionally and mapped to a
	// fixed admin identity. Local development only; the empty default keeps
	// it disabled.
	devKey string
	logger zerolog.Logger
}

func NewIdentityResolver(tokens ports.TokenService, keys ports.APIKeyService, users ports.UserRepository, devKey string, logger zerolog.Logger) *IdentityResolver {
	return &IdentityResolver{
		tokens: tokens,
		keys:   keys,
		users:  users,
		devKey: devKey,
		logger: logger,
	}
}

// Resolve applies the ordered strategy: bearer token first, API key second.
// A stale bearer token does not reject the request outright when a valid API
// key is also present.
func (r *IdentityResolver) Resolve(ctx context.Context, bearerToken, apiKey string) (*domain.CallerIdentity, error) {
	var bearerErr error

	if bearerToken != "" {
		identity, err := r.resolveBearer(bearerToken)
		if err == nil {
			return identity, nil
		}
		// The token verified but carries no usable role; an API key cannot
		// rescue a session that must be provisioned first.
		if errors.Is(err, domain.ErrNoRoleAssigned) {
			return nil, err
		}
		bearerErr = err
	}

	if apiKey != "" {
		return r.resolveAPIKey(ctx, apiKey)
	}

	if bearerErr != nil {
		return nil, bearerErr
	}
	return nil, domain.ErrNoCredentials
}

func (r *IdentityResolver) resolveBearer(token string) (*domain.CallerIdentity, error) {
	claims, err := r.tokens.Validate(token, ports.TokenTypeAccess)
	if errors.Is(err, domain.ErrTokenInvalid) {
		// The internal secret failed to verify; the token may come from the
		// external identity provider.
		claims, err = r.tokens.ValidateExternal(token)
	}
	if err != nil {
		return nil, err
	}

	if !claims.Role.Valid() {
		return nil, domain.ErrNoRoleAssigned
	}

	identity := domain.NewCallerIdentity(claims.Subject, claims.Email, claims.Name, claims.Role, domain.AuthMethodBearer)
	return &identity, nil
}

func (r *IdentityResolver) resolveAPIKey(ctx context.Context, value string) (*domain.CallerIdentity, error) {
	if r.devKey != "" && value == r.devKey {
		r.logger.Warn().Msg("development api key used")
		identity := domain.NewCallerIdentity(devAdminID, "", "Development Admin", domain.RoleAdmin, domain.AuthMethodAPIKey)
		return &identity, nil
	}

	keyIdentity, err := r.keys.Validate(ctx, value)
	if err != nil {
		return nil, err
	}

	// The role comes from the owning user record; a key whose user record is
	// unreadable still authenticates with the least-privileged role.
	role := domain.RoleUser
	email, name := "", keyIdentity.Name
	if user, err := r.users.FindByID(ctx, keyIdentity.UserID); err == nil {
		if user.Role.Valid() {
			role = user.Role
		}
		email, name = user.Email, user.Name
	}

	identity := domain.NewCallerIdentity(keyIdentity.UserID, email, name, role, domain.AuthMethodAPIKey)
	return &identity, nil
}
