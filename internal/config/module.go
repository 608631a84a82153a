package config

import "go.uber.org/fx"

// Module loads the workshop configuration once per fx graph.
var Module = fx.Module("config", fx.Provide(Load))
