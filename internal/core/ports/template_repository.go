package ports

import (
	"context"

	"github.com/trainmetrics/coaching-api/internal/core/domain"
)

// TemplateRepository defines persistence operations for workout templates.
// Visibility is a disjunction: a template is in scope when is_system is set
// or its owner matches the tenant filter. Mutations never touch system
// templates unless the bypass (empty ownerID) is in effect.
type TemplateRepository interface {
	Create(ctx context.Context, tpl *domain.WorkoutTemplate) (*domain.WorkoutTemplate, error)
	FindByID(ctx context.Context, id, ownerID string) (*domain.WorkoutTemplate, error)
	List(ctx context.Context, ownerID string) ([]*domain.WorkoutTemplate, error)
	Update(ctx context.Context, tpl *domain.WorkoutTemplate, ownerID string) (*domain.WorkoutTemplate, error)
	Delete(ctx context.Context, id, ownerID string) error
}
