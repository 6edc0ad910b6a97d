package taxtier

import (
	"github.com/saralbooks/saral/internal/taxtier/repository"
	"github.com/saralbooks/saral/internal/taxtier/service"
	"go.uber.org/fx"
)

var Module = fx.Module("taxtier.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
