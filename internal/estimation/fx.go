package estimation

import (
	"github.com/shinglesoft/roofline/internal/estimation/service"
	"go.uber.org/fx"
)

var Module = fx.Module("estimation.service",
	fx.Provide(service.NewService),
)
