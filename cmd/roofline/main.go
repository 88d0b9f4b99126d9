package main

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shinglesoft/roofline/internal/adjustment"
	"github.com/shinglesoft/roofline/internal/catalog"
	catalogdomain "github.com/shinglesoft/roofline/internal/catalog/domain"
	"github.com/shinglesoft/roofline/internal/config"
	"github.com/shinglesoft/roofline/internal/estimation"
	"github.com/shinglesoft/roofline/internal/logger"
	"github.com/shinglesoft/roofline/internal/migration"
	"github.com/shinglesoft/roofline/internal/observability"
	"github.com/shinglesoft/roofline/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,

		// Functional domains
		catalog.Module,
		estimation.Module,
		adjustment.Module,

		fx.Invoke(reportCatalog),
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

func reportCatalog(log *zap.Logger, svc catalogdomain.Service) {
	// The serving surface (admin API, portal) mounts on top of these services;
	// the engine binary itself just verifies the catalog is loadable.
	snapshot, err := svc.Snapshot(context.Background())
	if err != nil {
		log.Warn("catalog snapshot failed", zap.Error(err))
		return
	}
	log.Info("catalog ready", zap.Int("active_rules", snapshot.Len()))
}
