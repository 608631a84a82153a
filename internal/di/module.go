package di

import (
	"go.uber.org/fx"

	"github.com/phan14/du-an-ss2/internal/adapter/archive"
	"github.com/phan14/du-an-ss2/internal/adapter/telegram"
	"github.com/phan14/du-an-ss2/internal/app"
	"github.com/phan14/du-an-ss2/internal/config"
	"github.com/phan14/du-an-ss2/internal/logger"
	"github.com/phan14/du-an-ss2/internal/pkg/auth"
	"github.com/phan14/du-an-ss2/internal/server/http/router"
	"github.com/phan14/du-an-ss2/internal/storage/postgres"
	"github.com/phan14/du-an-ss2/internal/usecase"
)

// Module composes the workshop service graph. opts are appended last, so fx.Replace overrides work.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		telegram.Module,
		archive.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
