package ports

import (
	"context"

	"github.com/trainmetrics/coaching-api/internal/core/domain"
)

// IdentityResolver turns raw request credentials into one CallerIdentity.
// bearerToken and apiKey are the raw header values, either may be empty.
type IdentityResolver interface {
	Resolve(ctx context.Context, bearerToken, apiKey string) (*domain.CallerIdentity, error)
}

// ResetTokenGuard tracks consumed password-reset tokens so that a token can
// be redeemed exactly once within its validity window.
type ResetTokenGuard interface {
	IsUsed(ctx context.Context, token string) (bool, error)
	MarkUsed(ctx context.Context, token string) error
}
