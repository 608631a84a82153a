package repository

import (
	"context"

	"github.com/phan14/du-an-ss2/internal/domain/model"
)

// CustomerRepository describes persistence operations with customers.
type CustomerRepository interface {
	List(ctx context.Context) ([]model.Customer, error)
	Get(ctx context.Context, id string) (*model.Customer, error)
	Upsert(ctx context.Context, customer model.Customer) error
	UpsertMany(ctx context.Context, customers []model.Customer) error
	// Delete removes the customer together with all of its orders.
	Delete(ctx context.Context, id string) error
}
