package client

import (
	"github.com/digimanager/digimanager/internal/client/repository"
	"github.com/digimanager/digimanager/internal/client/service"
	"go.uber.org/fx"
)

var Module = fx.Module("client",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
