package auth

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/phan14/du-an-ss2/internal/config"
)

// Module provides authentication primitives via fx.
var Module = fx.Options(
	fx.Provide(newPasswordHasher),
	fx.Provide(newTokenStrategy),
)

type hasherParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newPasswordHasher(p hasherParams) PasswordHasher {
	if p.Config.HashedPasswords() {
		return NewBcryptHasher(0)
	}
	p.Logger.Warn("staff passwords are stored and compared as plain text", slog.String("scheme", p.Config.PasswordScheme))
	return PlainHasher{}
}

type strategyParams struct {
	fx.In

	Config *config.Config
}

func newTokenStrategy(p strategyParams) Strategy {
	return NewHMACStrategy(p.Config.TokenSecret, Options{TTL: p.Config.TokenTTL})
}
