package payment

import (
	"github.com/saralbooks/saral/internal/payment/repository"
	"github.com/saralbooks/saral/internal/payment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
