package handlers

import (
	"context"
	"io"

	"github.com/phan14/du-an-ss2/internal/domain/catalog"
	"github.com/phan14/du-an-ss2/internal/domain/ledger"
	"github.com/phan14/du-an-ss2/internal/domain/model"
	"github.com/phan14/du-an-ss2/internal/domain/repository"
	"github.com/phan14/du-an-ss2/internal/domain/stats"
	"github.com/phan14/du-an-ss2/internal/domain/urgency"
	"github.com/phan14/du-an-ss2/internal/usecase"
)

// AuthFacade describes sign-in and account management used by handlers.
type AuthFacade interface {
	Login(ctx context.Context, username, password string) (*model.User, string, error)
	UserFromToken(ctx context.Context, token string) (*model.User, error)
	Users(ctx context.Context) ([]model.User, error)
	SaveUser(ctx context.Context, actor model.User, user model.User) (*model.User, error)
	DeleteUser(ctx context.Context, actor model.User, username string) error
}

// CustomerFacade encapsulates customer operations exposed via HTTP.
type CustomerFacade interface {
	Customers(ctx context.Context) ([]model.Customer, error)
	SaveCustomer(ctx context.Context, customer model.Customer) (*model.Customer, error)
	DeleteCustomer(ctx context.Context, actor model.User, id string) error
	CustomerStats(ctx context.Context, id string) (*usecase.CustomerStats, error)
	ExportCustomerStats(ctx context.Context, id string) (string, []byte, error)
}

// OrderFacade encapsulates order and delivery ledger operations.
type OrderFacade interface {
	Orders(ctx context.Context, filter usecase.OrderFilter) ([]model.Order, error)
	ReloadOrders(ctx context.Context) ([]model.Order, error)
	Order(ctx context.Context, id string) (*model.Order, error)
	CreateOrder(ctx context.Context, in usecase.NewOrder) (*model.Order, error)
	DeleteOrder(ctx context.Context, actor model.User, id string) error
	UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus, reason string) (*model.Order, error)
	AddDelivery(ctx context.Context, id string, ev model.DeliveryRecord, confirmed bool) (*model.Order, error)
	RemoveDelivery(ctx context.Context, id, eventID string) (*model.Order, error)
	OrderBalance(ctx context.Context, id string) (ledger.Balance, error)
	UrgentOrders(ctx context.Context) ([]urgency.Entry, error)
	ReportOrder(ctx context.Context, id string) error
}

// AlertFacade manages the alert channel.
type AlertFacade interface {
	ScanAlerts(ctx context.Context) ([]urgency.Alert, error)
	TelegramConfig(ctx context.Context) (model.TelegramConfig, error)
	SaveTelegramConfig(ctx context.Context, cfg model.TelegramConfig) error
	TestTelegram(ctx context.Context) error
}

// GluingFacade manages lamination records.
type GluingFacade interface {
	GluingRecords(ctx context.Context) ([]model.GluingRecord, error)
	SaveGluing(ctx context.Context, record model.GluingRecord) (*model.GluingRecord, error)
	DeleteGluing(ctx context.Context, actor model.User, id string) error
	ExportGluing(ctx context.Context) (string, []byte, error)
}

// CatalogFacade serves read models derived from the order book.
type CatalogFacade interface {
	Products(ctx context.Context, q catalog.Query) ([]model.Product, error)
	Dashboard(ctx context.Context) (stats.Summary, error)
}

// SystemFacade covers spreadsheet import, export, backup and restore.
type SystemFacade interface {
	ImportOrders(ctx context.Context, actor model.User, r io.Reader) (usecase.ImportSummary, error)
	ExportOrders(ctx context.Context, filter usecase.OrderFilter) (string, []byte, error)
	Backup(ctx context.Context) (string, []byte, error)
	BackupStatus(ctx context.Context) (usecase.BackupStatus, error)
	Restore(ctx context.Context, actor model.User, r io.Reader) (repository.Snapshot, error)
}

// WorkshopFacade aggregates the full set of operations used across handlers.
type WorkshopFacade interface {
	AuthFacade
	CustomerFacade
	OrderFacade
	AlertFacade
	GluingFacade
	CatalogFacade
	SystemFacade
}
