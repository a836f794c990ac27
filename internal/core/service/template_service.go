package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/trainmetrics/coaching-api/internal/core/domain"
	"github.com/trainmetrics/coaching-api/internal/core/ports"
)

// TemplateService implements use-cases for workout templates, including the
// shared read-only visibility of system templates.
type TemplateService struct {
	repo   ports.TemplateRepository
	logger zerolog.Logger
}

func NewTemplateService(repo ports.TemplateRepository, logger zerolog.Logger) *TemplateService {
	return &TemplateService{repo: repo, logger: logger}
}

// Create stores a template owned by the caller. Only admins may publish
// system templates.
func (s *TemplateService) Create(ctx context.Context, identity domain.CallerIdentity, input ports.TemplateInput) (*domain.WorkoutTemplate, error) {
	if input.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.IsSystem && !identity.IsAdmin {
		return nil, domain.ErrForbidden
	}

	now := time.Now().UTC()
	tpl := &domain.WorkoutTemplate{
		UserID:      identity.UserID,
		Name:        input.Name,
		Description: input.Description,
		IsSystem:    input.IsSystem,
		Exercises:   toTemplateExercises(input.Exercises),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if tpl.IsSystem {
		tpl.UserID = ""
	}

	created, err := s.repo.Create(ctx, tpl)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("template_id", created.ID).Bool("is_system", created.IsSystem).Msg("template created")
	return created, nil
}

// Get returns a template visible to the caller: their own or any system one.
func (s *TemplateService) Get(ctx context.Context, identity domain.CallerIdentity, id string) (*domain.WorkoutTemplate, error) {
	return s.repo.FindByID(ctx, id, identity.TenantFilter())
}

func (s *TemplateService) List(ctx context.Context, identity domain.CallerIdentity) ([]*domain.WorkoutTemplate, error) {
	return s.repo.List(ctx, identity.TenantFilter())
}

// Update rejects edits to system templates for non-admin callers with
// NotFound-style semantics handled by Editable: the row is visible but
// read-only, so the caller gets Forbidden here, not a scoping miss.
func (s *TemplateService) Update(ctx context.Context, identity domain.CallerIdentity, id string, input ports.TemplateInput) (*domain.WorkoutTemplate, error) {
	existing, err := s.repo.FindByID(ctx, id, identity.TenantFilter())
	if err != nil {
		return nil, err
	}
	if !existing.Editable(identity.UserID, identity.IsAdmin) {
		return nil, domain.ErrForbidden
	}

	existing.Name = input.Name
	existing.Description = input.Description
	existing.Exercises = toTemplateExercises(input.Exercises)
	existing.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, existing, identity.TenantFilter())
}

func (s *TemplateService) Delete(ctx context.Context, identity domain.CallerIdentity, id string) error {
	existing, err := s.repo.FindByID(ctx, id, identity.TenantFilter())
	if err != nil {
		return err
	}
	if !existing.Editable(identity.UserID, identity.IsAdmin) {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, id, identity.TenantFilter())
}

func toTemplateExercises(inputs []ports.TemplateExerciseInput) []domain.TemplateExercise {
	exercises := make([]domain.TemplateExercise, 0, len(inputs))
	for _, in := range inputs {
		exercises = append(exercises, domain.TemplateExercise{
			Name:    in.Name,
			Sets:    in.Sets,
			Reps:    in.Reps,
			RestSec: in.RestSec,
			Notes:   in.Notes,
		})
	}
	return exercises
}
