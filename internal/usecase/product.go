package usecase

import (
	"context"

	"github.com/phan14/du-an-ss2/internal/domain/catalog"
	"github.com/phan14/du-an-ss2/internal/domain/model"
	"github.com/phan14/du-an-ss2/internal/domain/repository"
)

// ProductUseCase serves the price list derived from order items.
type ProductUseCase struct {
	orders  repository.OrderRepository
	catalog *catalog.Catalog
}

// NewProductUseCase constructs ProductUseCase.
func NewProductUseCase(orders repository.OrderRepository, c *catalog.Catalog) *ProductUseCase {
	return &ProductUseCase{orders: orders, catalog: c}
}

func (u *ProductUseCase) Products(ctx context.Context, q catalog.Query) ([]model.Product, error) {
	orders, err := u.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Apply(u.catalog.Products(orders), q), nil
}
