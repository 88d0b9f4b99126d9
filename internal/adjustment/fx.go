package adjustment

import (
	"github.com/shinglesoft/roofline/internal/adjustment/repository"
	"github.com/shinglesoft/roofline/internal/adjustment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("adjustment.service",
	fx.Provide(
		repository.Provide,
		service.NewService,
	),
)
