package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/phan14/du-an-ss2/internal/domain/errors"
	"github.com/phan14/du-an-ss2/internal/domain/model"
	"github.com/phan14/du-an-ss2/internal/domain/repository"
	"github.com/phan14/du-an-ss2/internal/domain/stats"
	"github.com/phan14/du-an-ss2/internal/spreadsheet"
)

// CustomerUseCase manages customer records and their purchase statistics.
type CustomerUseCase struct {
	customers repository.CustomerRepository
	orders    repository.OrderRepository
	calendar  Calendar
}

// NewCustomerUseCase constructs CustomerUseCase.
func NewCustomerUseCase(customers repository.CustomerRepository, orders repository.OrderRepository, calendar Calendar) *CustomerUseCase {
	return &CustomerUseCase{customers: customers, orders: orders, calendar: calendar}
}

func (u *CustomerUseCase) List(ctx context.Context) ([]model.Customer, error) {
	return u.customers.List(ctx)
}

func (u *CustomerUseCase) Get(ctx context.Context, id string) (*model.Customer, error) {
	return u.customers.Get(ctx, id)
}

// Save creates a customer when c.ID is empty and updates it otherwise.
func (u *CustomerUseCase) Save(ctx context.Context, c model.Customer) (*model.Customer, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Email = strings.TrimSpace(c.Email)
	c.Address = strings.TrimSpace(c.Address)
	if c.Name == "" {
		return nil, domainErrors.Invalid("name", domainErrors.ErrRequired)
	}
	if c.Phone == "" {
		return nil, domainErrors.Invalid("phone", domainErrors.ErrRequired)
	}

	if c.ID == "" {
		c.ID = newCustomerID()
		c.CreatedAt = u.calendar.Now()
	} else {
		current, err := u.customers.Get(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		c.CreatedAt = current.CreatedAt
	}

	if err := u.customers.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete removes a customer and all of their orders. Only admins may delete.
func (u *CustomerUseCase) Delete(ctx context.Context, actor model.User, id string) error {
	if !actor.IsAdmin() {
		return domainErrors.ErrForbidden
	}
	return u.customers.Delete(ctx, id)
}

// CustomerStats is the monthly product rollup of one customer.
type CustomerStats struct {
	Customer model.Customer
	Timeline []stats.Period
}

// Stats aggregates non-cancelled orders of a customer by month, newest first.
func (u *CustomerUseCase) Stats(ctx context.Context, id string) (*CustomerStats, error) {
	customer, err := u.customers.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	orders, err := u.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	agg := stats.Aggregate(stats.ForCustomer(orders, id), stats.MonthKey(u.calendar.Location()))
	return &CustomerStats{Customer: *customer, Timeline: stats.Timeline(agg)}, nil
}

// ExportStats renders Stats as a workbook and names the file.
func (u *CustomerUseCase) ExportStats(ctx context.Context, id string) (string, []byte, error) {
	st, err := u.Stats(ctx, id)
	if err != nil {
		return "", nil, err
	}
	content, err := spreadsheet.ExportCustomerStats(st.Customer.Name, st.Timeline)
	if err != nil {
		return "", nil, err
	}
	return spreadsheet.CustomerStatsFileName(st.Customer.Name), content, nil
}
