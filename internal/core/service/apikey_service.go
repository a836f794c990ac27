package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/trainmetrics/coaching-api/internal/api/metrics"
	"github.com/trainmetrics/coaching-api/internal/core/domain"
	"github.com/trainmetrics/coaching-api/internal/core/ports"
)

const apiKeyRandomBytes = 24 // tmk_ + 48 hex chars

// APIKeyService validates and manages opaque long-lived keys.
type APIKeyService struct {
	repo     ports.APIKeyRepository
	recorder ports.KeyUsageRecorder
	logger   zerolog.Logger
}

// NewAPIKeyService builds the service. recorder may be nil, in which case
// last_used_at is simply not tracked.
func NewAPIKeyService(repo ports.APIKeyRepository, recorder ports.KeyUsageRecorder, logger zerolog.Logger) *APIKeyService {
	return &APIKeyService{repo: repo, recorder: recorder, logger: logger}
}

// Validate looks the key up by exact value and enforces active/expiry state.
// The last-used stamp is recorded fire-and-forget: its failure never fails
// the surrounding request.
func (s *APIKeyService) Validate(ctx context.Context, value string) (*ports.APIKeyIdentity, error) {
	key, err := s.repo.FindByValue(ctx, value)
	if err != nil {
		if err == domain.ErrAPIKeyNotFound {
			metrics.APIKeyValidationsTotal.WithLabelValues("invalid").Inc()
			return nil, domain.ErrAPIKeyInvalid
		}
		return nil, err
	}
	if !key.Usable(time.Now().UTC()) {
		s.logger.Debug().Str("api_key", key.MaskedValue()).Msg("rejected inactive or expired api key")
		metrics.APIKeyValidationsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrAPIKeyInvalid
	}

	metrics.APIKeyValidationsTotal.WithLabelValues("success").Inc()
	if s.recorder != nil {
		s.recorder.Record(key.ID)
	}

	return &ports.APIKeyIdentity{
		UserID:   key.UserID,
		ClientID: key.ClientID,
		APIKeyID: key.ID,
		Name:     key.Name,
	}, nil
}

// Create mints a new key with a cryptographically random value. The full
// value appears in the returned record only; listings mask it.
func (s *APIKeyService) Create(ctx context.Context, input ports.CreateAPIKeyInput) (*domain.APIKey, error) {
	if input.OwnerID == "" || input.Name == "" {
		return nil, domain.ErrInvalidInput
	}

	value, err := generateKeyValue()
	if err != nil {
		return nil, fmt.Errorf("generate api key: %w", err)
	}

	now := time.Now().UTC()
	key := &domain.APIKey{
		Value:       value,
		UserID:      input.OwnerID,
		ClientID:    input.ClientID,
		Name:        input.Name,
		Description: input.Description,
		Active:      true,
		CreatedAt:   now,
	}
	if input.TTLDays > 0 {
		expires := now.AddDate(0, 0, input.TTLDays)
		key.ExpiresAt = &expires
	}

	created, err := s.repo.Insert(ctx, key)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("api_key", created.MaskedValue()).
		Str("user_id", created.UserID).
		Msg("api key created")
	return created, nil
}

// List returns the caller's keys with their values masked.
func (s *APIKeyService) List(ctx context.Context, ownerID string) ([]*domain.APIKey, error) {
	keys, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for _, key := range keys {
		key.Value = key.MaskedValue()
	}
	return keys, nil
}

// Revoke deletes the key only when it belongs to ownerID. A key owned by
// another tenant reports NotFound, indistinguishable from an absent key.
func (s *APIKeyService) Revoke(ctx context.Context, ownerID, keyID string) error {
	return s.repo.Delete(ctx, keyID, ownerID)
}

func generateKeyValue() (string, error) {
	buf := make([]byte, apiKeyRandomBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return domain.APIKeyPrefix + hex.EncodeToString(buf), nil
}
