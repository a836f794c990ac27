package ports

import (
	"context"

	"github.com/trainmetrics/coaching-api/internal/core/domain"
)

// ClientInput carries the client attributes a caller may set. The owner is
// never part of the input: it comes from the resolved identity.
type ClientInput struct {
	Name  string
	Email string
	Goals string
	Notes string
}

// ClientService defines tenant-scoped use-cases for coached clients. Every
// method receives the resolved caller identity and derives the tenant filter
// from it.
type ClientService interface {
	Create(ctx context.Context, identity domain.CallerIdentity, input ClientInput) (*domain.Client, error)
	Get(ctx context.Context, identity domain.CallerIdentity, id string) (*domain.Client, error)
	List(ctx context.Context, identity domain.CallerIdentity) ([]*domain.Client, error)
	Update(ctx context.Context, identity domain.CallerIdentity, id string, input ClientInput) (*domain.Client, error)
	Delete(ctx context.Context, identity domain.CallerIdentity, id string) error
}
