package invoice

import (
	"github.com/saralbooks/saral/internal/invoice/repository"
	"github.com/saralbooks/saral/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
