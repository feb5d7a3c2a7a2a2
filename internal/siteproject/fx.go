package siteproject

import (
	"github.com/digimanager/digimanager/internal/siteproject/repository"
	"github.com/digimanager/digimanager/internal/siteproject/service"
	"go.uber.org/fx"
)

var Module = fx.Module("siteproject",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
