package billing

import (
	"github.com/digimanager/digimanager/internal/billing/repository"
	"github.com/digimanager/digimanager/internal/billing/service"
	"go.uber.org/fx"
)

var Module = fx.Module("billing",
	fx.Provide(
		repository.Provide,
		service.NewNumberer,
		service.New,
	),
)
