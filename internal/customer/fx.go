package customer

import (
	"github.com/saralbooks/saral/internal/customer/repository"
	"github.com/saralbooks/saral/internal/customer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("customer.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
