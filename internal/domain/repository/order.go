package repository

import (
	"context"

	"github.com/phan14/du-an-ss2/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// List returns orders newest-created first.
	List(ctx context.Context) ([]model.Order, error)
	Get(ctx context.Context, id string) (*model.Order, error)
	Upsert(ctx context.Context, order model.Order) error
	UpsertMany(ctx context.Context, orders []model.Order) error
	Delete(ctx context.Context, id string) error
}
