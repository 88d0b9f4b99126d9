package migration

import (
	adjustmentdomain "github.com/shinglesoft/roofline/internal/adjustment/domain"
	catalogdomain "github.com/shinglesoft/roofline/internal/catalog/domain"
	"github.com/shinglesoft/roofline/internal/config"
	estimationdomain "github.com/shinglesoft/roofline/internal/estimation/domain"
	"github.com/shinglesoft/roofline/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// Non-postgres targets (local sqlite, mysql) derive the schema
			// from the models instead of the embedded SQL.
			if err := conn.AutoMigrate(
				&catalogdomain.PricingRule{},
				&estimationdomain.Estimate{},
				&adjustmentdomain.PriceAdjustment{},
			); err != nil {
				return err
			}
		}

		return seed.EnsureDefaultCatalog(conn)
	}),
)
