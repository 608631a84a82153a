package usecase

import (
	"context"

	"github.com/phan14/du-an-ss2/internal/domain/repository"
	"github.com/phan14/du-an-ss2/internal/domain/stats"
)

// DashboardUseCase computes the overview figures.
type DashboardUseCase struct {
	orders   repository.OrderRepository
	calendar Calendar
}

// NewDashboardUseCase constructs DashboardUseCase.
func NewDashboardUseCase(orders repository.OrderRepository, calendar Calendar) *DashboardUseCase {
	return &DashboardUseCase{orders: orders, calendar: calendar}
}

func (u *DashboardUseCase) Summary(ctx context.Context) (stats.Summary, error) {
	orders, err := u.orders.List(ctx)
	if err != nil {
		return stats.Summary{}, err
	}
	return stats.Summarize(orders, u.calendar.Today()), nil
}
