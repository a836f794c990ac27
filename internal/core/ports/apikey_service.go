package ports

import (
	"context"

	"github.com/trainmetrics/coaching-api/internal/core/domain"
)

// CreateAPIKeyInput carries the parameters for minting a new key. OwnerID is
// always taken from the resolved caller identity, never from the payload.
type CreateAPIKeyInput struct {
	OwnerID     string
	ClientID    string
	Name        string
	Description string
	// TTLDays of zero means the key never expires.
	TTLDays int
}

// APIKeyIdentity is the owning-identity answer of a successful validation.
type APIKeyIdentity struct {
	UserID   string
	ClientID string
	APIKeyID string
	Name     string
}

// APIKeyService manages the lifecycle of opaque long-lived keys.
type APIKeyService interface {
	// Validate checks the key by exact value, enforcing active and expiry
	// state. The last_used_at stamp is updated best-effort.
	Validate(ctx context.Context, value string) (*APIKeyIdentity, error)
	Create(ctx context.Context, input CreateAPIKeyInput) (*domain.APIKey, error)
	// List returns the caller's keys with masked values.
	List(ctx context.Context, ownerID string) ([]*domain.APIKey, error)
	// Revoke deletes the caller's key, reporting NotFound for keys that do
	// not exist or belong to another tenant.
	Revoke(ctx context.Context, ownerID, keyID string) error
}

// KeyUsageRecorder accepts fire-and-forget last-used stamps for validated
// keys. Implementations must never block the validating request.
type KeyUsageRecorder interface {
	Record(keyID string)
}
