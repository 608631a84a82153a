package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/fx"

	"github.com/phan14/du-an-ss2/internal/config"
	"github.com/phan14/du-an-ss2/internal/domain/repository"
)

// Module wires PostgreSQL storage and repository adapters.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(
		func(s *Storage) repository.Factory { return s },
		func(s *Storage) repository.CustomerRepository { return s.Customers() },
		func(s *Storage) repository.OrderRepository { return s.Orders() },
		func(s *Storage) repository.GluingRepository { return s.Gluing() },
		func(s *Storage) repository.UserRepository { return s.Users() },
		func(s *Storage) repository.SettingsRepository { return s.Settings() },
	),
	fx.Invoke(registerPoolHooks),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

// registerPoolHooks checks the pool once the graph starts and closes it on stop.
func registerPoolHooks(lc fx.Lifecycle, storage *Storage, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := storage.HealthCheck(ctx); err != nil {
				return fmt.Errorf("postgres unreachable: %w", err)
			}
			logger.Info("postgres ready")
			return nil
		},
		OnStop: func(context.Context) error {
			storage.Close()
			logger.Info("postgres pool closed")
			return nil
		},
	})
}
