package usecase

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/phan14/du-an-ss2/internal/adapter/archive"
	"github.com/phan14/du-an-ss2/internal/config"
	"github.com/phan14/du-an-ss2/internal/domain/model"
	"github.com/phan14/du-an-ss2/internal/domain/urgency"
	"github.com/phan14/du-an-ss2/internal/test"
)

var (
	workshopTZ = time.FixedZone("ICT", 7*3600)
	// testNow is a Monday morning on the workshop clock.
	testNow = time.Date(2024, time.June, 10, 9, 30, 0, 0, workshopTZ)

	admin = model.User{Username: "admin", Name: "Chủ xưởng", Role: model.UserRoleAdmin}
	staff = model.User{Username: "lan", Name: "Lan", Role: model.UserRoleStaff}
)

type fixture struct {
	store    *test.MemoryStore
	queue    *test.QueueStub
	telegram *test.TelegramStub
	calendar Calendar
	cfg      *config.Config
	logger   *slog.Logger
	notifier *urgency.Notifier

	alerts    *AlertUseCase
	orders    *OrderUseCase
	customers *CustomerUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		store:    test.NewMemoryStore(),
		queue:    &test.QueueStub{},
		telegram: &test.TelegramStub{},
		calendar: FixedCalendar(testNow, workshopTZ),
		cfg:      &config.Config{DefaultProductionDays: 14, Location: workshopTZ},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		notifier: urgency.NewNotifier(),
	}
	f.alerts = NewAlertUseCase(AlertDeps{
		Orders:     f.store.Orders(),
		Customers:  f.store.Customers(),
		Settings:   f.store.Settings(),
		Notifier:   f.notifier,
		Queue:      f.queue,
		Dispatcher: NewDispatcher(f.store.Settings(), f.telegram),
		Calendar:   f.calendar,
		Logger:     f.logger,
	})
	f.orders = NewOrderUseCase(f.store.Orders(), f.store.Customers(), f.alerts, f.calendar, f.cfg)
	f.customers = NewCustomerUseCase(f.store.Customers(), f.store.Orders(), f.calendar)
	return f
}

func (f *fixture) workbooks(a archive.Archive) *WorkbookUseCase {
	return NewWorkbookUseCase(WorkbookDeps{
		Store:    f.store,
		Archive:  a,
		Calendar: f.calendar,
		Config:   f.cfg,
		Logger:   f.logger,
	})
}

func (f *fixture) seedCustomer(t *testing.T, id, name string) model.Customer {
	t.Helper()
	c := model.Customer{ID: id, Name: name, Phone: "0900000000", CreatedAt: testNow.Add(-time.Hour)}
	require.NoError(t, f.store.Customers().Upsert(context.Background(), c))
	return c
}

func (f *fixture) seedOrder(t *testing.T, o model.Order) model.Order {
	t.Helper()
	if o.Status == "" {
		o.Status = model.OrderStatusPending
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = testNow.AddDate(0, 0, -10)
	}
	if len(o.Items) == 0 {
		o.Items = []model.OrderItem{{ProductName: "Áo thun", Quantity: 10, Size: "M", UnitPrice: 100000}}
		o.TotalAmount = 1000000
	}
	require.NoError(t, f.store.Orders().Upsert(context.Background(), o))
	return o
}

// dueIn returns the workshop midnight days after today.
func dueIn(days int) time.Time {
	return time.Date(2024, time.June, 10+days, 0, 0, 0, 0, workshopTZ)
}

type archiveStub struct {
	enabled bool
	err     error
	names   []string
	sizes   []int
}

func (a *archiveStub) Enabled() bool { return a.enabled }

func (a *archiveStub) Store(_ context.Context, name string, content []byte) (string, error) {
	a.names = append(a.names, name)
	a.sizes = append(a.sizes, len(content))
	if a.err != nil {
		return "", a.err
	}
	return "backups/" + name, nil
}

func bytesReader(b []byte) *bytes.Reader { return bytes.NewReader(b) }
