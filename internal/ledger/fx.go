package ledger

import (
	"github.com/saralbooks/saral/internal/ledger/repository"
	"github.com/saralbooks/saral/internal/ledger/service"
	"go.uber.org/fx"
)

var Module = fx.Module("ledger.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
