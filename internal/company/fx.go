package company

import (
	"github.com/saralbooks/saral/internal/company/repository"
	"github.com/saralbooks/saral/internal/company/service"
	"go.uber.org/fx"
)

var Module = fx.Module("company.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
