package app

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phan14/du-an-ss2/internal/adapter/archive"
	"github.com/phan14/du-an-ss2/internal/config"
	"github.com/phan14/du-an-ss2/internal/domain/catalog"
	domainErrors "github.com/phan14/du-an-ss2/internal/domain/errors"
	"github.com/phan14/du-an-ss2/internal/domain/model"
	"github.com/phan14/du-an-ss2/internal/domain/urgency"
	testhelpers "github.com/phan14/du-an-ss2/internal/test"
	"github.com/phan14/du-an-ss2/internal/usecase"
)

var (
	facadeTZ  = time.FixedZone("ICT", 7*3600)
	facadeNow = time.Date(2024, time.June, 10, 9, 0, 0, 0, facadeTZ)
	facadeAdm = model.User{Username: "admin", Role: model.UserRoleAdmin}
)

type facadeEnv struct {
	facade   *WorkshopFacade
	store    *testhelpers.MemoryStore
	queue    *testhelpers.QueueStub
	telegram *testhelpers.TelegramStub
}

func newFacade(t *testing.T) facadeEnv {
	t.Helper()
	store := testhelpers.NewMemoryStore()
	queue := &testhelpers.QueueStub{}
	telegram := &testhelpers.TelegramStub{}
	calendar := usecase.FixedCalendar(facadeNow, facadeTZ)
	cfg := &config.Config{DefaultProductionDays: 14, Location: facadeTZ}
	logger := discardLogger()

	alerts := usecase.NewAlertUseCase(usecase.AlertDeps{
		Orders:     store.Orders(),
		Customers:  store.Customers(),
		Settings:   store.Settings(),
		Notifier:   urgency.NewNotifier(),
		Queue:      queue,
		Dispatcher: usecase.NewDispatcher(store.Settings(), telegram),
		Calendar:   calendar,
		Logger:     logger,
	})
	facade := NewWorkshopFacade(facadeParams{
		Auth:      usecase.NewAuthUseCase(store.Users(), testhelpers.HasherStub{}, testhelpers.StrategyStub{}),
		Customers: usecase.NewCustomerUseCase(store.Customers(), store.Orders(), calendar),
		Orders:    usecase.NewOrderUseCase(store.Orders(), store.Customers(), alerts, calendar, cfg),
		Alerts:    alerts,
		Gluing:    usecase.NewGluingUseCase(store.Gluing(), calendar),
		Products:  usecase.NewProductUseCase(store.Orders(), catalog.New()),
		Dashboard: usecase.NewDashboardUseCase(store.Orders(), calendar),
		Workbooks: usecase.NewWorkbookUseCase(usecase.WorkbookDeps{
			Store: store, Archive: archive.Disabled{}, Calendar: calendar, Config: cfg, Logger: logger,
		}),
	})
	return facadeEnv{facade: facade, store: store, queue: queue, telegram: telegram}
}

func TestWorkshopFacadeAuth(t *testing.T) {
	env := newFacade(t)
	ctx := context.Background()

	_, err := env.facade.SaveUser(ctx, facadeAdm, model.User{Username: "lan", Name: "Lan", Role: model.UserRoleStaff, Password: "123"})
	require.NoError(t, err)

	usr, token, err := env.facade.Login(ctx, "lan", "123")
	require.NoError(t, err)
	assert.Equal(t, "token:lan", token)

	resolved, err := env.facade.UserFromToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, usr.Username, resolved.Username)

	users, err := env.facade.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	require.NoError(t, env.facade.DeleteUser(ctx, facadeAdm, "lan"))
}

func TestWorkshopFacadeOrderFlow(t *testing.T) {
	env := newFacade(t)
	ctx := context.Background()

	customer, err := env.facade.SaveCustomer(ctx, model.Customer{Name: "Lan", Phone: "0900"})
	require.NoError(t, err)

	order, err := env.facade.CreateOrder(ctx, usecase.NewOrder{
		CustomerID:     customer.ID,
		Items:          []model.OrderItem{{ProductName: "Áo", Quantity: 4, UnitPrice: 50000}},
		OrderDate:      facadeNow.AddDate(0, 0, -20),
		ProductionDays: 1,
	})
	require.NoError(t, err)

	orders, err := env.facade.Orders(ctx, usecase.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Len(t, env.queue.Items(), 1, "overdue order raises one alert")

	_, err = env.facade.AddDelivery(ctx, order.ID, model.DeliveryRecord{Date: facadeNow, Quantity: 4, Payment: 200000}, false)
	require.NoError(t, err)
	balance, err := env.facade.OrderBalance(ctx, order.ID)
	require.NoError(t, err)
	assert.Zero(t, balance.Remaining)

	_, err = env.facade.UpdateOrderStatus(ctx, order.ID, model.OrderStatusCompleted, "")
	require.NoError(t, err)
	urgent, err := env.facade.UrgentOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, urgent)

	_, err = env.facade.ReloadOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, env.queue.Items(), 1, "completed orders do not alert")

	summary, err := env.facade.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(200000), summary.Revenue)

	products, err := env.facade.Products(ctx, catalog.Query{})
	require.NoError(t, err)
	require.Len(t, products, 1)

	st, err := env.facade.CustomerStats(ctx, customer.ID)
	require.NoError(t, err)
	assert.Len(t, st.Timeline, 1)

	require.ErrorIs(t, env.facade.DeleteCustomer(ctx, model.User{Role: model.UserRoleStaff}, customer.ID), domainErrors.ErrForbidden)
	require.NoError(t, env.facade.DeleteOrder(ctx, facadeAdm, order.ID))
}

func TestWorkshopFacadeTelegram(t *testing.T) {
	env := newFacade(t)
	ctx := context.Background()

	require.NoError(t, env.facade.SaveTelegramConfig(ctx, model.TelegramConfig{BotToken: "t", ChatID: "c"}))
	cfg, err := env.facade.TelegramConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, "c", cfg.ChatID)

	env.telegram.Err = &domainErrors.DispatchError{Err: errors.New("telegram error: Unauthorized")}
	var derr *domainErrors.DispatchError
	require.ErrorAs(t, env.facade.TestTelegram(ctx), &derr)

	alerts, err := env.facade.ScanAlerts(ctx)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestWorkshopFacadeWorkbooks(t *testing.T) {
	env := newFacade(t)
	ctx := context.Background()

	_, err := env.facade.SaveGluing(ctx, model.GluingRecord{OrderID: "A1", ProductName: "Áo", Quantity: 3})
	require.NoError(t, err)
	records, err := env.facade.GluingRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	_, _, err = env.facade.ExportGluing(ctx)
	require.NoError(t, err)

	name, content, err := env.facade.Backup(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, name)
	status, err := env.facade.BackupStatus(ctx)
	require.NoError(t, err)
	assert.False(t, status.Due)

	require.NoError(t, env.facade.DeleteGluing(ctx, facadeAdm, records[0].ID))
	snap, err := env.facade.Restore(ctx, facadeAdm, bytesReader(content))
	require.NoError(t, err)
	assert.Len(t, snap.Gluing, 1)

	_, _, err = env.facade.ExportOrders(ctx, usecase.OrderFilter{})
	require.NoError(t, err)
	_, err = env.facade.ImportOrders(ctx, model.User{Role: model.UserRoleStaff}, nil)
	require.ErrorIs(t, err, domainErrors.ErrForbidden)
}

func bytesReader(b []byte) *bytes.Reader { return bytes.NewReader(b) }
