package settings

import (
	"github.com/digimanager/digimanager/internal/settings/service"
	"go.uber.org/fx"
)

var Module = fx.Module("settings",
	fx.Provide(service.New),
)
