package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/trainmetrics/coaching-api/internal/core/domain"
	"github.com/trainmetrics/coaching-api/internal/core/ports"
)

// ClientService implements tenant-scoped use-cases for coached clients.
type ClientService struct {
	repo   ports.ClientRepository
	logger zerolog.Logger
}

func NewClientService(repo ports.ClientRepository, logger zerolog.Logger) *ClientService {
	return &ClientService{repo: repo, logger: logger}
}

// Create stores a new client owned by the caller. The owner comes from the
// resolved identity only; any owner field a payload might carry is ignored
// upstream by never being part of ClientInput.
func (s *ClientService) Create(ctx context.Context, identity domain.CallerIdentity, input ports.ClientInput) (*domain.Client, error) {
	if input.Name == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	client := &domain.Client{
		UserID:    identity.UserID,
		Name:      input.Name,
		Email:     input.Email,
		Goals:     input.Goals,
		Notes:     input.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, client)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("client_id", created.ID).Str("user_id", identity.UserID).Msg("client created")
	return created, nil
}

func (s *ClientService) Get(ctx context.Context, identity domain.CallerIdentity, id string) (*domain.Client, error) {
	return s.repo.FindByID(ctx, id, identity.TenantFilter())
}

func (s *ClientService) List(ctx context.Context, identity domain.CallerIdentity) ([]*domain.Client, error) {
	return s.repo.List(ctx, identity.TenantFilter())
}

// Update re-resolves the client under the tenant filter before writing; a
// client outside the caller's tenant is indistinguishable from a missing one.
func (s *ClientService) Update(ctx context.Context, identity domain.CallerIdentity, id string, input ports.ClientInput) (*domain.Client, error) {
	existing, err := s.repo.FindByID(ctx, id, identity.TenantFilter())
	if err != nil {
		return nil, err
	}

	existing.Name = input.Name
	existing.Email = input.Email
	existing.Goals = input.Goals
	existing.Notes = input.Notes
	existing.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, existing, identity.TenantFilter())
}

func (s *ClientService) Delete(ctx context.Context, identity domain.CallerIdentity, id string) error {
	return s.repo.Delete(ctx, id, identity.TenantFilter())
}
