package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/digimanager/digimanager/internal/billing"
	"github.com/digimanager/digimanager/internal/client"
	"github.com/digimanager/digimanager/internal/clock"
	"github.com/digimanager/digimanager/internal/config"
	"github.com/digimanager/digimanager/internal/dashboard"
	"github.com/digimanager/digimanager/internal/invoice"
	"github.com/digimanager/digimanager/internal/migration"
	"github.com/digimanager/digimanager/internal/observability"
	"github.com/digimanager/digimanager/internal/order"
	"github.com/digimanager/digimanager/internal/ratelimit"
	"github.com/digimanager/digimanager/internal/reminder"
	"github.com/digimanager/digimanager/internal/scheduler"
	"github.com/digimanager/digimanager/internal/seed"
	"github.com/digimanager/digimanager/internal/server"
	"github.com/digimanager/digimanager/internal/settings"
	"github.com/digimanager/digimanager/internal/siteproject"
	"github.com/digimanager/digimanager/pkg/db"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		config.Module,
		observability.Module,
		clock.Module,
		db.Module,
		fx.Provide(newSnowflakeNode),

		migration.Module,

		client.Module,
		order.Module,
		invoice.Module,
		siteproject.Module,
		settings.Module,
		billing.Module,
		reminder.Module,
		dashboard.Module,

		ratelimit.Module,
		seed.Module,
		scheduler.Module,
		server.Module,
	).Run()
}

func newSnowflakeNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
