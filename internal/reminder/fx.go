package reminder

import (
	"github.com/digimanager/digimanager/internal/reminder/service"
	"go.uber.org/fx"
)

var Module = fx.Module("reminder",
	fx.Provide(
		service.New,
		service.AsService,
		service.AsRecomputer,
	),
)
