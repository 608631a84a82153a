package router

import (
	"go.uber.org/fx"

	"github.com/phan14/du-an-ss2/internal/app"
	"github.com/phan14/du-an-ss2/internal/server/http/handlers"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Provide(
	Setup,
	func(f *app.WorkshopFacade) handlers.WorkshopFacade { return f },
)
