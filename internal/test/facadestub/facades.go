// Package facadestub provides controllable handler facades for HTTP tests.
package facadestub

import (
	"context"
	"io"
	"time"

	"github.com/phan14/du-an-ss2/internal/domain/catalog"
	domainErrors "github.com/phan14/du-an-ss2/internal/domain/errors"
	"github.com/phan14/du-an-ss2/internal/domain/ledger"
	"github.com/phan14/du-an-ss2/internal/domain/model"
	"github.com/phan14/du-an-ss2/internal/domain/repository"
	"github.com/phan14/du-an-ss2/internal/domain/stats"
	"github.com/phan14/du-an-ss2/internal/domain/urgency"
	pkgAuth "github.com/phan14/du-an-ss2/internal/pkg/auth"
	"github.com/phan14/du-an-ss2/internal/test"
	"github.com/phan14/du-an-ss2/internal/usecase"
)

// AuthStub signs in any account and resolves "token:<username>" sessions.
type AuthStub struct {
	LoginFn      func(context.Context, string, string) (*model.User, string, error)
	ResolveFn    func(context.Context, string) (*model.User, error)
	UsersFn      func(context.Context) ([]model.User, error)
	SaveUserFn   func(context.Context, model.User, model.User) (*model.User, error)
	DeleteUserFn func(context.Context, model.User, string) error
}

func (s AuthStub) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, username, password)
	}
	return &model.User{Username: username, Role: model.UserRoleStaff}, "token:" + username, nil
}

// UserFromToken treats "token:admin" as an admin and every other "token:<name>" as staff.
func (s AuthStub) UserFromToken(ctx context.Context, token string) (*model.User, error) {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, token)
	}
	username, err := test.StrategyStub{}.ParseToken(token)
	if err != nil {
		return nil, pkgAuth.ErrInvalidToken
	}
	role := model.UserRoleStaff
	if username == "admin" {
		role = model.UserRoleAdmin
	}
	return &model.User{Username: username, Name: username, Role: role}, nil
}

func (s AuthStub) Users(ctx context.Context) ([]model.User, error) {
	if s.UsersFn != nil {
		return s.UsersFn(ctx)
	}
	return []model.User{{Username: "admin", Role: model.UserRoleAdmin}}, nil
}

func (s AuthStub) SaveUser(ctx context.Context, actor, user model.User) (*model.User, error) {
	if s.SaveUserFn != nil {
		return s.SaveUserFn(ctx, actor, user)
	}
	return &user, nil
}

func (s AuthStub) DeleteUser(ctx context.Context, actor model.User, username string) error {
	if s.DeleteUserFn != nil {
		return s.DeleteUserFn(ctx, actor, username)
	}
	return nil
}

// CustomerStub simulates customer operations.
type CustomerStub struct {
	CustomersFn   func(context.Context) ([]model.Customer, error)
	SaveFn        func(context.Context, model.Customer) (*model.Customer, error)
	DeleteFn      func(context.Context, model.User, string) error
	StatsFn       func(context.Context, string) (*usecase.CustomerStats, error)
	ExportStatsFn func(context.Context, string) (string, []byte, error)
}

func (s CustomerStub) Customers(ctx context.Context) ([]model.Customer, error) {
	if s.CustomersFn != nil {
		return s.CustomersFn(ctx)
	}
	return []model.Customer{{ID: "cust-1", Name: "Chị Lan", Phone: "0900000000"}}, nil
}

func (s CustomerStub) SaveCustomer(ctx context.Context, c model.Customer) (*model.Customer, error) {
	if s.SaveFn != nil {
		return s.SaveFn(ctx, c)
	}
	if c.ID == "" {
		c.ID = "cust-new"
	}
	return &c, nil
}

func (s CustomerStub) DeleteCustomer(ctx context.Context, actor model.User, id string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, actor, id)
	}
	return nil
}

func (s CustomerStub) CustomerStats(ctx context.Context, id string) (*usecase.CustomerStats, error) {
	if s.StatsFn != nil {
		return s.StatsFn(ctx, id)
	}
	return &usecase.CustomerStats{Customer: model.Customer{ID: id}}, nil
}

func (s CustomerStub) ExportCustomerStats(ctx context.Context, id string) (string, []byte, error) {
	if s.ExportStatsFn != nil {
		return s.ExportStatsFn(ctx, id)
	}
	return "ThongKe_" + id + ".xlsx", []byte("xlsx"), nil
}

// OrderStub provides controllable behaviour for order endpoints.
type OrderStub struct {
	OrdersFn         func(context.Context, usecase.OrderFilter) ([]model.Order, error)
	ReloadFn         func(context.Context) ([]model.Order, error)
	OrderFn          func(context.Context, string) (*model.Order, error)
	CreateFn         func(context.Context, usecase.NewOrder) (*model.Order, error)
	DeleteFn         func(context.Context, model.User, string) error
	StatusFn         func(context.Context, string, model.OrderStatus, string) (*model.Order, error)
	AddDeliveryFn    func(context.Context, string, model.DeliveryRecord, bool) (*model.Order, error)
	RemoveDeliveryFn func(context.Context, string, string) (*model.Order, error)
	BalanceFn        func(context.Context, string) (ledger.Balance, error)
	UrgentFn         func(context.Context) ([]urgency.Entry, error)
	ReportFn         func(context.Context, string) error
}

// SampleOrder is the default order returned by OrderStub.
func SampleOrder(id string) model.Order {
	return model.Order{
		ID:            id,
		CustomerID:    "cust-1",
		Items:         []model.OrderItem{{ProductName: "Áo thun", Quantity: 10, Size: "M", UnitPrice: 100000}},
		TotalAmount:   1000000,
		DepositAmount: 300000,
		Status:        model.OrderStatusPending,
		Deadline:      time.Date(2024, time.June, 20, 0, 0, 0, 0, time.UTC),
		CreatedAt:     time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s OrderStub) Orders(ctx context.Context, filter usecase.OrderFilter) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, filter)
	}
	return []model.Order{SampleOrder("LX8KUBY8")}, nil
}

func (s OrderStub) ReloadOrders(ctx context.Context) ([]model.Order, error) {
	if s.ReloadFn != nil {
		return s.ReloadFn(ctx)
	}
	return []model.Order{SampleOrder("LX8KUBY8")}, nil
}

func (s OrderStub) Order(ctx context.Context, id string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, id)
	}
	o := SampleOrder(id)
	return &o, nil
}

func (s OrderStub) CreateOrder(ctx context.Context, in usecase.NewOrder) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, in)
	}
	o := SampleOrder("LX8KUBY8")
	o.CustomerID = in.CustomerID
	o.Items = in.Items
	o.TotalAmount = model.ItemsTotal(in.Items)
	o.DepositAmount = in.DepositAmount
	return &o, nil
}

func (s OrderStub) DeleteOrder(ctx context.Context, actor model.User, id string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, actor, id)
	}
	return nil
}

func (s OrderStub) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus, reason string) (*model.Order, error) {
	if s.StatusFn != nil {
		return s.StatusFn(ctx, id, status, reason)
	}
	if !status.Valid() {
		return nil, domainErrors.Invalid("status", domainErrors.ErrInvalidStatus)
	}
	o := SampleOrder(id)
	o.Status = status
	o.StatusReason = reason
	return &o, nil
}

func (s OrderStub) AddDelivery(ctx context.Context, id string, ev model.DeliveryRecord, confirmed bool) (*model.Order, error) {
	if s.AddDeliveryFn != nil {
		return s.AddDeliveryFn(ctx, id, ev, confirmed)
	}
	return ledgerAdd(SampleOrder(id), ev, confirmed)
}

func ledgerAdd(o model.Order, ev model.DeliveryRecord, confirmed bool) (*model.Order, error) {
	ev.ID = "ev-1"
	updated, err := ledger.Add(o, ev, confirmed)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s OrderStub) RemoveDelivery(ctx context.Context, id, eventID string) (*model.Order, error) {
	if s.RemoveDeliveryFn != nil {
		return s.RemoveDeliveryFn(ctx, id, eventID)
	}
	return nil, domainErrors.ErrNotFound
}

func (s OrderStub) OrderBalance(ctx context.Context, id string) (ledger.Balance, error) {
	if s.BalanceFn != nil {
		return s.BalanceFn(ctx, id)
	}
	return ledger.Reconcile(SampleOrder(id)), nil
}

func (s OrderStub) UrgentOrders(ctx context.Context) ([]urgency.Entry, error) {
	if s.UrgentFn != nil {
		return s.UrgentFn(ctx)
	}
	return nil, nil
}

func (s OrderStub) ReportOrder(ctx context.Context, id string) error {
	if s.ReportFn != nil {
		return s.ReportFn(ctx, id)
	}
	return nil
}

// AlertStub simulates the alert channel.
type AlertStub struct {
	ScanFn   func(context.Context) ([]urgency.Alert, error)
	ConfigFn func(context.Context) (model.TelegramConfig, error)
	SaveFn   func(context.Context, model.TelegramConfig) error
	TestFn   func(context.Context) error
}

func (s AlertStub) ScanAlerts(ctx context.Context) ([]urgency.Alert, error) {
	if s.ScanFn != nil {
		return s.ScanFn(ctx)
	}
	return nil, nil
}

func (s AlertStub) TelegramConfig(ctx context.Context) (model.TelegramConfig, error) {
	if s.ConfigFn != nil {
		return s.ConfigFn(ctx)
	}
	return model.TelegramConfig{BotToken: "bot", ChatID: "chat"}, nil
}

func (s AlertStub) SaveTelegramConfig(ctx context.Context, cfg model.TelegramConfig) error {
	if s.SaveFn != nil {
		return s.SaveFn(ctx, cfg)
	}
	return nil
}

func (s AlertStub) TestTelegram(ctx context.Context) error {
	if s.TestFn != nil {
		return s.TestFn(ctx)
	}
	return nil
}

// GluingStub simulates lamination records.
type GluingStub struct {
	ListFn   func(context.Context) ([]model.GluingRecord, error)
	SaveFn   func(context.Context, model.GluingRecord) (*model.GluingRecord, error)
	DeleteFn func(context.Context, model.User, string) error
	ExportFn func(context.Context) (string, []byte, error)
}

func (s GluingStub) GluingRecords(ctx context.Context) ([]model.GluingRecord, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return []model.GluingRecord{{ID: "g-1", OrderID: "LX8KUBY8", ProductName: "Áo thun", Quantity: 10, FailQuantity: 1}}, nil
}

func (s GluingStub) SaveGluing(ctx context.Context, g model.GluingRecord) (*model.GluingRecord, error) {
	if s.SaveFn != nil {
		return s.SaveFn(ctx, g)
	}
	return &g, nil
}

func (s GluingStub) DeleteGluing(ctx context.Context, actor model.User, id string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, actor, id)
	}
	return nil
}

func (s GluingStub) ExportGluing(ctx context.Context) (string, []byte, error) {
	if s.ExportFn != nil {
		return s.ExportFn(ctx)
	}
	return "ui_keo_ep_keo_2024-06-10.xlsx", []byte("xlsx"), nil
}

// CatalogStub serves fixed products and dashboard figures.
type CatalogStub struct {
	ProductsFn  func(context.Context, catalog.Query) ([]model.Product, error)
	DashboardFn func(context.Context) (stats.Summary, error)
}

func (s CatalogStub) Products(ctx context.Context, q catalog.Query) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx, q)
	}
	return []model.Product{{Name: "Áo thun", UnitPrice: 100000}}, nil
}

func (s CatalogStub) Dashboard(ctx context.Context) (stats.Summary, error) {
	if s.DashboardFn != nil {
		return s.DashboardFn(ctx)
	}
	day := time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)
	return stats.Summary{
		TotalOrders:   1,
		Revenue:       1000000,
		StatusCounts:  []stats.StatusCount{{Status: model.OrderStatusPending, Count: 1}},
		RevenueSeries: []stats.RevenuePoint{{Day: day, Amount: 1000000}},
		Recent:        []model.Order{SampleOrder("ORD1")},
	}, nil
}

// SystemStub simulates spreadsheet import, export and backups.
type SystemStub struct {
	ImportFn  func(context.Context, model.User, io.Reader) (usecase.ImportSummary, error)
	ExportFn  func(context.Context, usecase.OrderFilter) (string, []byte, error)
	BackupFn  func(context.Context) (string, []byte, error)
	StatusFn  func(context.Context) (usecase.BackupStatus, error)
	RestoreFn func(context.Context, model.User, io.Reader) (repository.Snapshot, error)
}

func (s SystemStub) ImportOrders(ctx context.Context, actor model.User, r io.Reader) (usecase.ImportSummary, error) {
	if s.ImportFn != nil {
		return s.ImportFn(ctx, actor, r)
	}
	return usecase.ImportSummary{Customers: 1, Orders: 2}, nil
}

func (s SystemStub) ExportOrders(ctx context.Context, filter usecase.OrderFilter) (string, []byte, error) {
	if s.ExportFn != nil {
		return s.ExportFn(ctx, filter)
	}
	return "danh_sach_don_hang_2024.xlsx", []byte("xlsx"), nil
}

func (s SystemStub) Backup(ctx context.Context) (string, []byte, error) {
	if s.BackupFn != nil {
		return s.BackupFn(ctx)
	}
	return "backup.xlsx", []byte("xlsx"), nil
}

func (s SystemStub) BackupStatus(ctx context.Context) (usecase.BackupStatus, error) {
	if s.StatusFn != nil {
		return s.StatusFn(ctx)
	}
	return usecase.BackupStatus{Due: true}, nil
}

func (s SystemStub) Restore(ctx context.Context, actor model.User, r io.Reader) (repository.Snapshot, error) {
	if s.RestoreFn != nil {
		return s.RestoreFn(ctx, actor, r)
	}
	return repository.Snapshot{}, nil
}

// WorkshopStub combines every facade stub.
type WorkshopStub struct {
	AuthStub
	CustomerStub
	OrderStub
	AlertStub
	GluingStub
	CatalogStub
	SystemStub
}
