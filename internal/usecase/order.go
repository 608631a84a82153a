package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/phan14/du-an-ss2/internal/config"
	"github.com/phan14/du-an-ss2/internal/domain/deadline"
	domainErrors "github.com/phan14/du-an-ss2/internal/domain/errors"
	"github.com/phan14/du-an-ss2/internal/domain/ledger"
	"github.com/phan14/du-an-ss2/internal/domain/model"
	"github.com/phan14/du-an-ss2/internal/domain/repository"
	"github.com/phan14/du-an-ss2/internal/domain/urgency"
)

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders         repository.OrderRepository
	customers      repository.CustomerRepository
	alerts         *AlertUseCase
	calendar       Calendar
	productionDays int
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, customers repository.CustomerRepository, alerts *AlertUseCase, calendar Calendar, cfg *config.Config) *OrderUseCase {
	return &OrderUseCase{
		orders:         orders,
		customers:      customers,
		alerts:         alerts,
		calendar:       calendar,
		productionDays: cfg.DefaultProductionDays,
	}
}

// NewOrder is the input of Create.
type NewOrder struct {
	CustomerID    string
	Items         []model.OrderItem
	DepositAmount int64
	// OrderDate defaults to now. ProductionDays defaults to the configured value.
	OrderDate      time.Time
	ProductionDays int
	Notes          string
	Analysis       string
}

// Create validates in and stores a new pending order. The total is frozen from the items.
func (u *OrderUseCase) Create(ctx context.Context, in NewOrder) (*model.Order, error) {
	if err := validateNewOrder(&in); err != nil {
		return nil, err
	}
	if _, err := u.customers.Get(ctx, in.CustomerID); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.Invalid("customerId", domainErrors.ErrNotFound)
		}
		return nil, err
	}

	now := u.calendar.Now()
	created := now
	if !in.OrderDate.IsZero() {
		created = in.OrderDate.In(u.calendar.Location())
	}
	days := in.ProductionDays
	if days <= 0 {
		days = u.productionDays
	}

	id, err := u.freeOrderID(ctx, now)
	if err != nil {
		return nil, err
	}

	order := model.Order{
		ID:            id,
		CustomerID:    in.CustomerID,
		Items:         in.Items,
		TotalAmount:   model.ItemsTotal(in.Items),
		DepositAmount: in.DepositAmount,
		Status:        model.OrderStatusPending,
		Deadline:      deadline.ForWorkshop(created, days),
		CreatedAt:     created,
		Notes:         strings.TrimSpace(in.Notes),
		AIAnalysis:    strings.TrimSpace(in.Analysis),
	}
	if err := u.orders.Upsert(ctx, order); err != nil {
		return nil, err
	}
	return &order, nil
}

func validateNewOrder(in *NewOrder) error {
	in.CustomerID = strings.TrimSpace(in.CustomerID)
	if in.CustomerID == "" {
		return domainErrors.Invalid("customerId", domainErrors.ErrRequired)
	}
	if len(in.Items) == 0 {
		return domainErrors.Invalid("items", domainErrors.ErrRequired)
	}
	for i := range in.Items {
		it := &in.Items[i]
		it.ProductName = strings.TrimSpace(it.ProductName)
		if it.ProductName == "" {
			return domainErrors.Invalid("productName", domainErrors.ErrRequired)
		}
		if it.Quantity < 1 {
			return domainErrors.Invalid("quantity", domainErrors.ErrInvalidQuantity)
		}
		if it.UnitPrice < 0 {
			return domainErrors.Invalid("unitPrice", domainErrors.ErrInvalidAmount)
		}
	}
	if in.DepositAmount < 0 {
		return domainErrors.Invalid("depositAmount", domainErrors.ErrInvalidAmount)
	}
	return nil
}

// freeOrderID derives the id from the creation instant and steps forward past taken codes.
func (u *OrderUseCase) freeOrderID(ctx context.Context, now time.Time) (string, error) {
	for t := now; ; t = t.Add(time.Millisecond) {
		id := orderCode(t)
		_, err := u.orders.Get(ctx, id)
		if errors.Is(err, domainErrors.ErrNotFound) {
			return id, nil
		}
		if err != nil {
			return "", err
		}
	}
}

func (u *OrderUseCase) Get(ctx context.Context, id string) (*model.Order, error) {
	return u.orders.Get(ctx, id)
}

// List returns orders matching filter newest first. Deadline alerts are raised for the
// whole loaded collection, not only the matching part.
func (u *OrderUseCase) List(ctx context.Context, filter OrderFilter) ([]model.Order, error) {
	orders, customers, err := loadOrderBook(ctx, u.orders, u.customers)
	if err != nil {
		return nil, err
	}
	u.alerts.Observe(orders, customers)
	return filter.Apply(orders, customers), nil
}

// loadOrderBook loads orders and customers concurrently.
func loadOrderBook(ctx context.Context, orders repository.OrderRepository, customers repository.CustomerRepository) ([]model.Order, []model.Customer, error) {
	var (
		loaded []model.Order
		cs     []model.Customer
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		loaded, err = orders.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		cs, err = customers.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return loaded, cs, nil
}

// Reload forgets notified orders and lists the collection again, re-evaluating alerts from empty.
func (u *OrderUseCase) Reload(ctx context.Context) ([]model.Order, error) {
	u.alerts.Reset()
	return u.List(ctx, OrderFilter{})
}

// Delete removes an order. Only admins may delete.
func (u *OrderUseCase) Delete(ctx context.Context, actor model.User, id string) error {
	if !actor.IsAdmin() {
		return domainErrors.ErrForbidden
	}
	return u.orders.Delete(ctx, id)
}

// UpdateStatus sets the production status and the reason shown in alerts.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, id string, status model.OrderStatus, reason string) (*model.Order, error) {
	if !status.Valid() {
		return nil, domainErrors.Invalid("status", domainErrors.ErrInvalidStatus)
	}
	order, err := u.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Status = status
	order.StatusReason = strings.TrimSpace(reason)
	if err := u.orders.Upsert(ctx, *order); err != nil {
		return nil, err
	}
	return order, nil
}

// AddDelivery records a partial delivery or payment. Over-delivery is refused with
// ErrOverDelivery unless confirmed.
func (u *OrderUseCase) AddDelivery(ctx context.Context, id string, ev model.DeliveryRecord, confirmed bool) (*model.Order, error) {
	order, err := u.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	ev.Note = strings.TrimSpace(ev.Note)
	updated, err := ledger.Add(*order, ev, confirmed)
	if err != nil {
		return nil, err
	}
	if err := u.orders.Upsert(ctx, updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// RemoveDelivery drops one ledger event.
func (u *OrderUseCase) RemoveDelivery(ctx context.Context, id, eventID string) (*model.Order, error) {
	order, err := u.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := ledger.Remove(*order, eventID)
	if err != nil {
		return nil, err
	}
	if err := u.orders.Upsert(ctx, updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Reconcile derives paid and outstanding amounts of an order.
func (u *OrderUseCase) Reconcile(ctx context.Context, id string) (ledger.Balance, error) {
	order, err := u.orders.Get(ctx, id)
	if err != nil {
		return ledger.Balance{}, err
	}
	return ledger.Reconcile(*order), nil
}

// Urgent lists open orders due within the dashboard window, earliest deadline first.
func (u *OrderUseCase) Urgent(ctx context.Context) ([]urgency.Entry, error) {
	orders, err := u.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	return urgency.DashboardList(orders, u.calendar.Today()), nil
}

// Report sends an urgent notice for one order through the alert channel right away.
func (u *OrderUseCase) Report(ctx context.Context, id string) error {
	return u.alerts.Report(ctx, id)
}
