package usecase

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/phan14/du-an-ss2/internal/config"
	"github.com/phan14/du-an-ss2/internal/domain/catalog"
	"github.com/phan14/du-an-ss2/internal/domain/urgency"
)

// Module provides core business use cases to the fx container.
var Module = fx.Options(
	fx.Provide(
		NewCalendar,
		urgency.NewNotifier,
		catalog.New,
		NewDispatcher,
		NewAlertUseCase,
		NewAuthUseCase,
		NewCustomerUseCase,
		NewOrderUseCase,
		NewGluingUseCase,
		NewProductUseCase,
		NewDashboardUseCase,
		NewWorkbookUseCase,
	),
	fx.Invoke(registerBootstrap),
)

func registerBootstrap(lc fx.Lifecycle, auth *AuthUseCase, cfg *config.Config, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return auth.Bootstrap(ctx, cfg, logger)
		},
	})
}
