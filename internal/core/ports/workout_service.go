package ports

import (
	"context"
	"time"

	"github.com/trainmetrics/coaching-api/internal/core/domain"
)

// ExerciseInput is one prescribed movement in a workout payload.
type ExerciseInput struct {
	Name     string
	Sets     int
	Reps     int
	WeightKg float64
	RestSec  int
	Notes    string
}

// WorkoutInput carries the workout attributes a caller may set.
type WorkoutInput struct {
	ClientID  string
	Title     string
	Date      time.Time
	Notes     string
	Exercises []ExerciseInput
}

// WorkoutService defines tenant-scoped use-cases for workouts. Creation
// verifies the target client under the caller's tenant filter before any
// write, so a workout can never be attached to another tenant's client.
type WorkoutService interface {
	Create(ctx context.Context, identity domain.CallerIdentity, input WorkoutInput) (*domain.Workout, error)
	Get(ctx context.Context, identity domain.CallerIdentity, id string) (*domain.Workout, error)
	ListByClient(ctx context.Context, identity domain.CallerIdentity, clientID string) ([]*domain.Workout, error)
	Update(ctx context.Context, identity domain.CallerIdentity, id string, input WorkoutInput) (*domain.Workout, error)
	Delete(ctx context.Context, identity domain.CallerIdentity, id string) error
}
