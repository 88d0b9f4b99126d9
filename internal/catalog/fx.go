package catalog

import (
	"github.com/shinglesoft/roofline/internal/catalog/repository"
	"github.com/shinglesoft/roofline/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(
		repository.Provide,
		service.NewService,
	),
)
