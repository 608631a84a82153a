package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/phan14/du-an-ss2/internal/domain/errors"
	"github.com/phan14/du-an-ss2/internal/domain/repository"
)

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

var _ repository.Factory = (*Storage)(nil)

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Customers() repository.CustomerRepository {
	return &customerRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Gluing() repository.GluingRepository {
	return &gluingRepository{storage: s}
}

func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Settings() repository.SettingsRepository {
	return &settingsRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS customers (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            phone TEXT NOT NULL DEFAULT '',
            email TEXT NOT NULL DEFAULT '',
            address TEXT NOT NULL DEFAULT '',
            notes TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id TEXT PRIMARY KEY,
            customer_id TEXT NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
            items JSONB NOT NULL DEFAULT '[]',
            total_amount BIGINT NOT NULL DEFAULT 0,
            deposit_amount BIGINT NOT NULL DEFAULT 0,
            status TEXT NOT NULL,
            status_reason TEXT NOT NULL DEFAULT '',
            deadline TIMESTAMPTZ NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            notes TEXT NOT NULL DEFAULT '',
            ai_analysis TEXT NOT NULL DEFAULT '',
            actual_delivery_quantity INTEGER NOT NULL DEFAULT 0,
            delivery_history JSONB NOT NULL DEFAULT '[]'
        )`,
		`CREATE TABLE IF NOT EXISTS gluing_records (
            id TEXT PRIMARY KEY,
            order_id TEXT NOT NULL,
            product_name TEXT NOT NULL,
            gluing_type TEXT NOT NULL,
            quantity INTEGER NOT NULL DEFAULT 0,
            fail_quantity INTEGER NOT NULL DEFAULT 0,
            date TIMESTAMPTZ NOT NULL,
            worker_name TEXT NOT NULL DEFAULT '',
            notes TEXT NOT NULL DEFAULT '',
            temperature TEXT NOT NULL DEFAULT '',
            pressure TEXT NOT NULL DEFAULT '',
            duration TEXT NOT NULL DEFAULT ''
        )`,
		`CREATE TABLE IF NOT EXISTS users (
            username TEXT PRIMARY KEY,
            name TEXT NOT NULL DEFAULT '',
            role TEXT NOT NULL,
            password TEXT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS settings (
            key TEXT PRIMARY KEY,
            value JSONB NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_created ON orders(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id)`,
		`CREATE INDEX IF NOT EXISTS idx_gluing_date ON gluing_records(date DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// ReplaceAll wipes every table and stores snapshot inside a single transaction.
// The last backup marker survives a restore.
func (s *Storage) ReplaceAll(ctx context.Context, snapshot repository.Snapshot) error {
	err := s.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const wipe = `TRUNCATE orders, customers, gluing_records, users`
		if _, err := tx.Exec(ctx, wipe); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM settings WHERE key=$1`, telegramSettingKey); err != nil {
			return err
		}
		for _, c := range snapshot.Customers {
			if err := upsertCustomer(ctx, tx, c); err != nil {
				return err
			}
		}
		for _, o := range snapshot.Orders {
			if err := upsertOrder(ctx, tx, o); err != nil {
				return err
			}
		}
		for _, g := range snapshot.Gluing {
			if err := upsertGluing(ctx, tx, g); err != nil {
				return err
			}
		}
		for _, u := range snapshot.Users {
			if err := upsertUser(ctx, tx, u); err != nil {
				return err
			}
		}
		if snapshot.Telegram.Configured() {
			if err := saveTelegramConfig(ctx, tx, snapshot.Telegram); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return s.fail("replace all", err)
	}
	s.logger.Info("storage replaced",
		slog.Int("customers", len(snapshot.Customers)),
		slog.Int("orders", len(snapshot.Orders)),
		slog.Int("gluing", len(snapshot.Gluing)),
		slog.Int("users", len(snapshot.Users)),
	)
	return nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// fail maps driver errors onto domain errors, wrapping anything unexpected as PersistenceError.
func (s *Storage) fail(op string, err error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows), errors.Is(err, domainErrors.ErrNotFound):
		return domainErrors.ErrNotFound
	case isUniqueViolation(err):
		return domainErrors.ErrAlreadyExists
	}
	s.logger.Error("storage operation failed", slog.String("op", op), slog.Any("error", err))
	return &domainErrors.PersistenceError{Op: op, Err: err}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// execer is satisfied by both the pool and a transaction.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}
