package order

import (
	"github.com/digimanager/digimanager/internal/order/repository"
	"github.com/digimanager/digimanager/internal/order/service"
	"go.uber.org/fx"
)

var Module = fx.Module("order",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
