package ports

import (
	"context"
	"time"

	"github.com/trainmetrics/coaching-api/internal/core/domain"
)

// APIKeyRepository defines persistence operations for API keys.
type APIKeyRepository interface {
	Insert(ctx context.Context, key *domain.APIKey) (*domain.APIKey, error)
	// FindByValue looks a key up by its exact opaque value.
	FindByValue(ctx context.Context, value string) (*domain.APIKey, error)
	// ListByOwner returns only keys owned by ownerID.
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.APIKey, error)
	// Delete removes the key only when it belongs to ownerID; a zero-row
	// match reports domain.ErrAPIKeyNotFound.
	Delete(ctx context.Context, id, ownerID string) error
	// UpdateLastUsed stamps the key's last successful validation. Callers
	// treat failures as non-fatal.
	UpdateLastUsed(ctx context.Context, id string, usedAt time.Time) error
}
