package ports

import (
	"context"

	"github.com/trainmetrics/coaching-api/internal/core/domain"
)

// WorkoutRepository defines persistence operations for workouts. Workouts
// reach their owner transitively (Workout → Client → User), so the ownerID
// filter is applied as a join through the clients collection inside the same
// query, never as a post-fetch check. Empty ownerID is the admin bypass.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (*domain.Workout, error)
	FindByID(ctx context.Context, id, ownerID string) (*domain.Workout, error)
	// ListByClient returns workouts for one client, scoped by ownerID.
	ListByClient(ctx context.Context, clientID, ownerID string) ([]*domain.Workout, error)
	Update(ctx context.Context, workout *domain.Workout, ownerID string) (*domain.Workout, error)
	Delete(ctx context.Context, id, ownerID string) error
}
