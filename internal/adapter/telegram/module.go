package telegram

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/phan14/du-an-ss2/internal/config"
)

// Module exposes the Telegram client to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.TelegramAPIURL, p.Logger)
}
