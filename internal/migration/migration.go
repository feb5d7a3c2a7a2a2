// Package migration brings the schema up to date at boot.
package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	billingdomain "github.com/digimanager/digimanager/internal/billing/domain"
	clientdomain "github.com/digimanager/digimanager/internal/client/domain"
	invoicedomain "github.com/digimanager/digimanager/internal/invoice/domain"
	orderdomain "github.com/digimanager/digimanager/internal/order/domain"
	settingsdomain "github.com/digimanager/digimanager/internal/settings/domain"
	sitedomain "github.com/digimanager/digimanager/internal/siteproject/domain"
	"github.com/digimanager/digimanager/pkg/db"
	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed sql/*.sql
var migrations embed.FS

var Module = fx.Module("migration",
	fx.Invoke(Run),
)

// Run applies versioned SQL migrations on postgres. Other dialects are
// for development and tests and use gorm's schema sync instead.
func Run(cfg db.Config, gdb *gorm.DB, log *zap.Logger) error {
	if cfg.Type == "postgres" {
		return runPostgres(cfg, log)
	}
	return autoMigrate(gdb)
}

func runPostgres(cfg db.Config, log *zap.Logger) error {
	source, err := iofs.New(migrations, "sql")
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}

	conn, err := sql.Open("postgres", db.PostgresDSN(cfg))
	if err != nil {
		return fmt.Errorf("migration connect: %w", err)
	}
	defer conn.Close()

	driver, err := migratepg.WithInstance(conn, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, cfg.Name, driver)
	if err != nil {
		return fmt.Errorf("migration init: %w", err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("schema already current")
			return nil
		}
		return fmt.Errorf("migration up: %w", err)
	}

	version, dirty, _ := m.Version()
	log.Info("schema migrated", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

func autoMigrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&clientdomain.Client{},
		&orderdomain.Order{},
		&invoicedomain.Invoice{},
		&sitedomain.SiteProject{},
		&billingdomain.MonthlyPayment{},
		&settingsdomain.Settings{},
	)
}
