package usecase

import (
	"strings"

	"github.com/phan14/du-an-ss2/internal/domain/model"
)

// OrderFilter narrows an order listing. Zero fields match everything.
type OrderFilter struct {
	// Search matches the order id or the customer name, case-insensitively.
	Search     string
	Status     model.OrderStatus
	CustomerID string
}

func (f OrderFilter) empty() bool {
	return strings.TrimSpace(f.Search) == "" && f.Status == "" && f.CustomerID == ""
}

// Apply keeps orders matching f, preserving their order.
func (f OrderFilter) Apply(orders []model.Order, customers []model.Customer) []model.Order {
	if f.empty() {
		return orders
	}
	names := customerNames(customers)
	term := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if f.CustomerID != "" && o.CustomerID != f.CustomerID {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(o.ID), term) &&
			!strings.Contains(strings.ToLower(names[o.CustomerID]), term) {
			continue
		}
		out = append(out, o)
	}
	return out
}
