package main

import (
	"fmt"
	"io"

	"github.com/amaumene/mediacatalog/internal/config"
	"github.com/amaumene/mediacatalog/internal/controllers"
	"github.com/amaumene/mediacatalog/internal/models"
	"github.com/amaumene/mediacatalog/internal/services/audiotag"
	"github.com/amaumene/mediacatalog/internal/utils"
	"github.com/sirupsen/logrus"
)

// App bundles the wired components used by the commands
type App struct {
	Config   *config.Config
	Logger   *logrus.Logger
	Catalog  *controllers.CatalogController
	Exporter *controllers.Exporter
	Audio    *audiotag.Reader
}

func provideLogger(cfg *config.Config, out io.Writer) *logrus.Logger {
	return utils.NewLogger(cfg.LogLevel, out)
}

func provideDatabase(cfg *config.Config, logger *logrus.Logger) (*models.Database, func(), error) {
	db, err := models.NewDatabase(cfg.DatabaseFile, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	logger.WithField("path", cfg.DatabaseFile).Debug("Database initialized")

	cleanup := func() {
		if err := db.Close(); err != nil {
			logger.WithError(err).Error("Failed to close database")
		}
	}
	return db, cleanup, nil
}

func provideCatalogController(db *models.Database, cfg *config.Config, logger *logrus.Logger) *controllers.CatalogController {
	return controllers.NewCatalogController(db, cfg.ListCacheTTL, logger)
}

func provideExporter(cfg *config.Config, logger *logrus.Logger) *controllers.Exporter {
	return controllers.NewExporter(cfg.ExportDir, logger)
}
