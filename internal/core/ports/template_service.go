package ports

import (
	"context"

	"github.com/trainmetrics/coaching-api/internal/core/domain"
)

// TemplateExerciseInput is one movement slot in a template payload.
type TemplateExerciseInput struct {
	Name    string
	Sets    int
	Reps    int
	RestSec int
	Notes   string
}

// TemplateInput carries the template attributes a caller may set. IsSystem
// is honoured only for admin callers; everyone else creates tenant-owned
// templates.
type TemplateInput struct {
	Name        string
	Description string
	IsSystem    bool
	Exercises   []TemplateExerciseInput
}

// TemplateService defines use-cases for workout templates, including the
// shared read-only visibility of system templates.
type TemplateService interface {
	Create(ctx context.Context, identity domain.CallerIdentity, input TemplateInput) (*domain.WorkoutTemplate, error)
	Get(ctx context.Context, identity domain.CallerIdentity, id string) (*domain.WorkoutTemplate, error)
	List(ctx context.Context, identity domain.CallerIdentity) ([]*domain.WorkoutTemplate, error)
	Update(ctx context.Context, identity domain.CallerIdentity, id string, input TemplateInput) (*domain.WorkoutTemplate, error)
	Delete(ctx context.Context, identity domain.CallerIdentity, id string) error
}
