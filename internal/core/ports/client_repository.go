package ports

import (
	"context"

	"github.com/trainmetrics/coaching-api/internal/core/domain"
)

// ClientRepository defines persistence operations for coached clients.
// Every read and mutation accepts an ownerID tenant filter: non-empty scopes
// the query to that owner, empty is the explicit admin bypass decided at the
// route layer. A row outside the filter behaves exactly like an absent row.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	FindByID(ctx context.Context, id, ownerID string) (*domain.Client, error)
	List(ctx context.Context, ownerID string) ([]*domain.Client, error)
	Update(ctx context.Context, client *domain.Client, ownerID string) (*domain.Client, error)
	Delete(ctx context.Context, id, ownerID string) error
}
