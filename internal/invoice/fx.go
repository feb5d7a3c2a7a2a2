package invoice

import (
	"github.com/digimanager/digimanager/internal/invoice/repository"
	"github.com/digimanager/digimanager/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
