package app

import (
	"context"
	"io"

	"go.uber.org/fx"

	"github.com/phan14/du-an-ss2/internal/domain/catalog"
	"github.com/phan14/du-an-ss2/internal/domain/ledger"
	"github.com/phan14/du-an-ss2/internal/domain/model"
	"github.com/phan14/du-an-ss2/internal/domain/repository"
	"github.com/phan14/du-an-ss2/internal/domain/stats"
	"github.com/phan14/du-an-ss2/internal/domain/urgency"
	"github.com/phan14/du-an-ss2/internal/usecase"
)

// WorkshopFacade is the single entry point the HTTP layer talks to.
type WorkshopFacade struct {
	auth      *usecase.AuthUseCase
	customers *usecase.CustomerUseCase
	orders    *usecase.OrderUseCase
	alerts    *usecase.AlertUseCase
	gluing    *usecase.GluingUseCase
	products  *usecase.ProductUseCase
	dashboard *usecase.DashboardUseCase
	workbooks *usecase.WorkbookUseCase
}

type facadeParams struct {
	fx.In

	Auth      *usecase.AuthUseCase
	Customers *usecase.CustomerUseCase
	Orders    *usecase.OrderUseCase
	Alerts    *usecase.AlertUseCase
	Gluing    *usecase.GluingUseCase
	Products  *usecase.ProductUseCase
	Dashboard *usecase.DashboardUseCase
	Workbooks *usecase.WorkbookUseCase
}

func NewWorkshopFacade(p facadeParams) *WorkshopFacade {
	return &WorkshopFacade{
		auth:      p.Auth,
		customers: p.Customers,
		orders:    p.Orders,
		alerts:    p.Alerts,
		gluing:    p.Gluing,
		products:  p.Products,
		dashboard: p.Dashboard,
		workbooks: p.Workbooks,
	}
}

func (f *WorkshopFacade) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	return f.auth.Login(ctx, username, password)
}

func (f *WorkshopFacade) UserFromToken(ctx context.Context, token string) (*model.User, error) {
	return f.auth.UserFromToken(ctx, token)
}

func (f *WorkshopFacade) Users(ctx context.Context) ([]model.User, error) {
	return f.auth.Users(ctx)
}

func (f *WorkshopFacade) SaveUser(ctx context.Context, actor model.User, user model.User) (*model.User, error) {
	return f.auth.SaveUser(ctx, actor, user)
}

func (f *WorkshopFacade) DeleteUser(ctx context.Context, actor model.User, username string) error {
	return f.auth.DeleteUser(ctx, actor, username)
}

func (f *WorkshopFacade) Customers(ctx context.Context) ([]model.Customer, error) {
	return f.customers.List(ctx)
}

func (f *WorkshopFacade) SaveCustomer(ctx context.Context, customer model.Customer) (*model.Customer, error) {
	return f.customers.Save(ctx, customer)
}

func (f *WorkshopFacade) DeleteCustomer(ctx context.Context, actor model.User, id string) error {
	return f.customers.Delete(ctx, actor, id)
}

func (f *WorkshopFacade) CustomerStats(ctx context.Context, id string) (*usecase.CustomerStats, error) {
	return f.customers.Stats(ctx, id)
}

func (f *WorkshopFacade) ExportCustomerStats(ctx context.Context, id string) (string, []byte, error) {
	return f.customers.ExportStats(ctx, id)
}

func (f *WorkshopFacade) Orders(ctx context.Context, filter usecase.OrderFilter) ([]model.Order, error) {
	return f.orders.List(ctx, filter)
}

func (f *WorkshopFacade) ReloadOrders(ctx context.Context) ([]model.Order, error) {
	return f.orders.Reload(ctx)
}

func (f *WorkshopFacade) Order(ctx context.Context, id string) (*model.Order, error) {
	return f.orders.Get(ctx, id)
}

func (f *WorkshopFacade) CreateOrder(ctx context.Context, in usecase.NewOrder) (*model.Order, error) {
	return f.orders.Create(ctx, in)
}

func (f *WorkshopFacade) DeleteOrder(ctx context.Context, actor model.User, id string) error {
	return f.orders.Delete(ctx, actor, id)
}

func (f *WorkshopFacade) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus, reason string) (*model.Order, error) {
	return f.orders.UpdateStatus(ctx, id, status, reason)
}

func (f *WorkshopFacade) AddDelivery(ctx context.Context, id string, ev model.DeliveryRecord, confirmed bool) (*model.Order, error) {
	return f.orders.AddDelivery(ctx, id, ev, confirmed)
}

func (f *WorkshopFacade) RemoveDelivery(ctx context.Context, id, eventID string) (*model.Order, error) {
	return f.orders.RemoveDelivery(ctx, id, eventID)
}

func (f *WorkshopFacade) OrderBalance(ctx context.Context, id string) (ledger.Balance, error) {
	return f.orders.Reconcile(ctx, id)
}

func (f *WorkshopFacade) UrgentOrders(ctx context.Context) ([]urgency.Entry, error) {
	return f.orders.Urgent(ctx)
}

func (f *WorkshopFacade) ReportOrder(ctx context.Context, id string) error {
	return f.orders.Report(ctx, id)
}

func (f *WorkshopFacade) ScanAlerts(ctx context.Context) ([]urgency.Alert, error) {
	return f.alerts.Scan(ctx)
}

func (f *WorkshopFacade) TelegramConfig(ctx context.Context) (model.TelegramConfig, error) {
	return f.alerts.TelegramConfig(ctx)
}

func (f *WorkshopFacade) SaveTelegramConfig(ctx context.Context, cfg model.TelegramConfig) error {
	return f.alerts.SaveTelegramConfig(ctx, cfg)
}

func (f *WorkshopFacade) TestTelegram(ctx context.Context) error {
	return f.alerts.Test(ctx)
}

func (f *WorkshopFacade) GluingRecords(ctx context.Context) ([]model.GluingRecord, error) {
	return f.gluing.List(ctx)
}

func (f *WorkshopFacade) SaveGluing(ctx context.Context, record model.GluingRecord) (*model.GluingRecord, error) {
	return f.gluing.Save(ctx, record)
}

func (f *WorkshopFacade) DeleteGluing(ctx context.Context, actor model.User, id string) error {
	return f.gluing.Delete(ctx, actor, id)
}

func (f *WorkshopFacade) ExportGluing(ctx context.Context) (string, []byte, error) {
	return f.gluing.Export(ctx)
}

func (f *WorkshopFacade) Products(ctx context.Context, q catalog.Query) ([]model.Product, error) {
	return f.products.Products(ctx, q)
}

func (f *WorkshopFacade) Dashboard(ctx context.Context) (stats.Summary, error) {
	return f.dashboard.Summary(ctx)
}

func (f *WorkshopFacade) ImportOrders(ctx context.Context, actor model.User, r io.Reader) (usecase.ImportSummary, error) {
	return f.workbooks.Import(ctx, actor, r)
}

func (f *WorkshopFacade) ExportOrders(ctx context.Context, filter usecase.OrderFilter) (string, []byte, error) {
	return f.workbooks.ExportOrders(ctx, filter)
}

func (f *WorkshopFacade) Backup(ctx context.Context) (string, []byte, error) {
	return f.workbooks.Backup(ctx)
}

func (f *WorkshopFacade) BackupStatus(ctx context.Context) (usecase.BackupStatus, error) {
	return f.workbooks.BackupStatus(ctx)
}

func (f *WorkshopFacade) Restore(ctx context.Context, actor model.User, r io.Reader) (repository.Snapshot, error) {
	return f.workbooks.Restore(ctx, actor, r)
}
