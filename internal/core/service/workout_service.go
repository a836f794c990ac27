package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/trainmetrics/coaching-api/internal/core/domain"
	"github.com/trainmetrics/coaching-api/internal/core/ports"
)

// WorkoutService implements tenant-scoped use-cases for workouts. Ownership
// runs through the client: every operation resolves or joins through the
// clients collection under the caller's tenant filter.
type WorkoutService struct {
	repo    ports.WorkoutRepository
	clients ports.ClientRepository
	logger  zerolog.Logger
}

func NewWorkoutService(repo ports.WorkoutRepository, clients ports.ClientRepository, logger zerolog.Logger) *WorkoutService {
	return &WorkoutService{repo: repo, clients: clients, logger: logger}
}

// Create verifies the target client under the caller's tenant filter first,
// so a workout cannot be attached to another tenant's client. The workout
// and its exercises are written as one document, atomically.
func (s *WorkoutService) Create(ctx context.Context, identity domain.CallerIdentity, input ports.WorkoutInput) (*domain.Workout, error) {
	if input.ClientID == "" || input.Title == "" {
		return nil, domain.ErrInvalidInput
	}

	client, err := s.clients.FindByID(ctx, input.ClientID, identity.TenantFilter())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	workout := &domain.Workout{
		ClientID:  client.ID,
		Title:     input.Title,
		Date:      input.Date,
		Notes:     input.Notes,
		Exercises: toExercises(input.Exercises),
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, workout)
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("workout_id", created.ID).
		Str("client_id", client.ID).
		Int("exercises", len(created.Exercises)).
		Msg("workout created")
	return created, nil
}

func (s *WorkoutService) Get(ctx context.Context, identity domain.CallerIdentity, id string) (*domain.Workout, error) {
	return s.repo.FindByID(ctx, id, identity.TenantFilter())
}

// ListByClient scopes both the client and its workouts to the caller.
func (s *WorkoutService) ListByClient(ctx context.Context, identity domain.CallerIdentity, clientID string) ([]*domain.Workout, error) {
	if _, err := s.clients.FindByID(ctx, clientID, identity.TenantFilter()); err != nil {
		return nil, err
	}
	return s.repo.ListByClient(ctx, clientID, identity.TenantFilter())
}

func (s *WorkoutService) Update(ctx context.Context, identity domain.CallerIdentity, id string, input ports.WorkoutInput) (*domain.Workout, error) {
	existing, err := s.repo.FindByID(ctx, id, identity.TenantFilter())
	if err != nil {
		return nil, err
	}
	// Reparenting to another client re-checks that client's ownership.
	if input.ClientID != "" && input.ClientID != existing.ClientID {
		if _, err := s.clients.FindByID(ctx, input.ClientID, identity.TenantFilter()); err != nil {
			return nil, err
		}
		existing.ClientID = input.ClientID
	}

	existing.Title = input.Title
	existing.Date = input.Date
	existing.Notes = input.Notes
	existing.Exercises = toExercises(input.Exercises)
	existing.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, existing, identity.TenantFilter())
}

func (s *WorkoutService) Delete(ctx context.Context, identity domain.CallerIdentity, id string) error {
	return s.repo.Delete(ctx, id, identity.TenantFilter())
}

func toExercises(inputs []ports.ExerciseInput) []domain.Exercise {
	exercises := make([]domain.Exercise, 0, len(inputs))
	for _, in := range inputs {
		exercises = append(exercises, domain.Exercise{
			Name:     in.Name,
			Sets:     in.Sets,
			Reps:     in.Reps,
			WeightKg: in.WeightKg,
			RestSec:  in.RestSec,
			Notes:    in.Notes,
		})
	}
	return exercises
}
