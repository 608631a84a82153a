package logger

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/phan14/du-an-ss2/internal/config"
)

// Module provides the service logger and reports the effective level at startup.
var Module = fx.Module("logger",
	fx.Provide(New),
	fx.Invoke(announce),
)

func announce(log *slog.Logger, cfg *config.Config) {
	log.Info("logger ready", slog.String("level", parseLevel(cfg.LogLevel).String()))
}
