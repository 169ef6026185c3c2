package customer

import (
	"context"

	"applestore-clone/internal/domain"
)

// Repository persists federated customers.
type Repository interface {
	// Upsert creates the customer for (provider, subject) or refreshes its profile and sign-in time.
	Upsert(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
}
