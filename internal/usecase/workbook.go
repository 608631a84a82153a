package usecase

import (
	"context"
	"io"
	"log/slog"
	"time"

	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"

	"github.com/phan14/du-an-ss2/internal/adapter/archive"
	"github.com/phan14/du-an-ss2/internal/config"
	domainErrors "github.com/phan14/du-an-ss2/internal/domain/errors"
	"github.com/phan14/du-an-ss2/internal/domain/model"
	"github.com/phan14/du-an-ss2/internal/domain/repository"
	"github.com/phan14/du-an-ss2/internal/spreadsheet"
)

// backupInterval is how old the last backup may get before a new one is due.
const backupInterval = 7 * 24 * time.Hour

// WorkbookUseCase moves workshop data in and out of xlsx workbooks.
type WorkbookUseCase struct {
	store          repository.Factory
	archive        archive.Archive
	calendar       Calendar
	productionDays int
	logger         *slog.Logger
}

type WorkbookDeps struct {
	fx.In

	Store    repository.Factory
	Archive  archive.Archive
	Calendar Calendar
	Config   *config.Config
	Logger   *slog.Logger
}

// NewWorkbookUseCase constructs WorkbookUseCase.
func NewWorkbookUseCase(d WorkbookDeps) *WorkbookUseCase {
	return &WorkbookUseCase{
		store:          d.Store,
		archive:        d.Archive,
		calendar:       d.Calendar,
		productionDays: d.Config.DefaultProductionDays,
		logger:         d.Logger,
	}
}

// ImportSummary reports what an import stored.
type ImportSummary struct {
	Customers int
	Orders    int
	Skipped   int
}

// Import reads an order workbook and upserts its customers, then its orders.
// Nothing is written when the workbook cannot be read.
func (u *WorkbookUseCase) Import(ctx context.Context, actor model.User, r io.Reader) (ImportSummary, error) {
	if !actor.IsAdmin() {
		return ImportSummary{}, domainErrors.ErrForbidden
	}
	existing, err := u.store.Customers().List(ctx)
	if err != nil {
		return ImportSummary{}, err
	}

	now := u.calendar.Now()
	next := now
	res, err := spreadsheet.ImportOrders(r, existing, spreadsheet.ImportOptions{
		Now:           now,
		Location:      u.calendar.Location(),
		DeadlineDays:  u.productionDays,
		NewCustomerID: newCustomerID,
		NewOrderID: func() string {
			id := orderCode(next)
			next = next.Add(time.Millisecond)
			return id
		},
		NewEventID: newRecordID,
	})
	if err != nil {
		return ImportSummary{}, err
	}

	if err := u.store.Customers().UpsertMany(ctx, res.Customers); err != nil {
		return ImportSummary{}, err
	}
	if err := u.store.Orders().UpsertMany(ctx, res.Orders); err != nil {
		return ImportSummary{}, err
	}
	if res.Skipped > 0 {
		u.logger.Warn("import skipped rows without order id or customer name", slog.Int("skipped", res.Skipped))
	}
	u.logger.Info("orders imported",
		slog.Int("customers", len(res.Customers)), slog.Int("orders", len(res.Orders)))
	return ImportSummary{Customers: len(res.Customers), Orders: len(res.Orders), Skipped: res.Skipped}, nil
}

// ExportOrders renders the orders matching filter as a workbook and names the file.
func (u *WorkbookUseCase) ExportOrders(ctx context.Context, filter OrderFilter) (string, []byte, error) {
	orders, customers, err := loadOrderBook(ctx, u.store.Orders(), u.store.Customers())
	if err != nil {
		return "", nil, err
	}
	var customerName string
	if filter.CustomerID != "" {
		for _, c := range customers {
			if c.ID == filter.CustomerID {
				customerName = c.Name
			}
		}
	}
	content, err := spreadsheet.ExportOrders(filter.Apply(orders, customers), customers, u.calendar.Location())
	if err != nil {
		return "", nil, err
	}
	return spreadsheet.OrdersFileName(filter.Search, customerName, u.calendar.Now()), content, nil
}

// Snapshot loads every table concurrently.
func (u *WorkbookUseCase) Snapshot(ctx context.Context) (repository.Snapshot, error) {
	var snap repository.Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.Customers, err = u.store.Customers().List(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Orders, err = u.store.Orders().List(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Gluing, err = u.store.Gluing().List(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Users, err = u.store.Users().List(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Telegram, err = u.store.Settings().TelegramConfig(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return repository.Snapshot{}, err
	}
	return snap, nil
}

// Backup renders a full backup workbook, archives it when an archive is configured
// and records the backup time. It returns the file name and content.
func (u *WorkbookUseCase) Backup(ctx context.Context) (string, []byte, error) {
	snap, err := u.Snapshot(ctx)
	if err != nil {
		return "", nil, err
	}
	now := u.calendar.Now()
	content, err := spreadsheet.Backup(snap, now)
	if err != nil {
		return "", nil, err
	}
	name := spreadsheet.BackupFileName(now)

	if u.archive.Enabled() {
		if key, err := u.archive.Store(ctx, name, content); err != nil {
			u.logger.Warn("backup archive upload failed", slog.String("file", name), slog.Any("error", err))
		} else {
			u.logger.Info("backup archived", slog.String("key", key))
		}
	}

	if err := u.store.Settings().RecordBackup(ctx, now); err != nil {
		return "", nil, err
	}
	return name, content, nil
}

// BackupStatus tells whether a backup is due.
type BackupStatus struct {
	LastBackup time.Time
	Due        bool
}

// BackupStatus reports the last backup time. A backup is due when none was ever taken
// or the last one is at least seven days old.
func (u *WorkbookUseCase) BackupStatus(ctx context.Context) (BackupStatus, error) {
	last, err := u.store.Settings().LastBackup(ctx)
	if err != nil {
		return BackupStatus{}, err
	}
	due := last.IsZero() || u.calendar.Now().Sub(last) >= backupInterval
	return BackupStatus{LastBackup: last, Due: due}, nil
}

// Restore replaces every table with the content of a backup workbook.
// Current accounts are kept when the workbook holds none.
func (u *WorkbookUseCase) Restore(ctx context.Context, actor model.User, r io.Reader) (repository.Snapshot, error) {
	if !actor.IsAdmin() {
		return repository.Snapshot{}, domainErrors.ErrForbidden
	}
	snap, err := spreadsheet.Restore(r, u.calendar.Location())
	if err != nil {
		return repository.Snapshot{}, err
	}
	if len(snap.Users) == 0 {
		if snap.Users, err = u.store.Users().List(ctx); err != nil {
			return repository.Snapshot{}, err
		}
	}
	if err := u.store.ReplaceAll(ctx, snap); err != nil {
		return repository.Snapshot{}, err
	}
	u.logger.Info("backup restored",
		slog.Int("customers", len(snap.Customers)),
		slog.Int("orders", len(snap.Orders)),
		slog.Int("gluing", len(snap.Gluing)),
		slog.Int("users", len(snap.Users)))
	return snap, nil
}
