package cmd

import (
	"context"
	"fmt"
	"strings"

	"dummy-importer/core/config"
	"dummy-importer/core/database"
	"dummy-importer/core/dummyapi"
	"dummy-importer/core/logger"
	"dummy-importer/core/storage"
	"dummy-importer/feature/importer"
	"dummy-importer/feature/importer/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app bundles what every command needs.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *gorm.DB
	service *importer.Service
}

var connectDatabase = database.Connect

// bootstrap loads configuration, connects to the database, verifies the
// schema and wires the import service. The connection is closed when a later
// step fails.
func bootstrap(ctx context.Context) (a *app, err error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(l)

	db, err := connectDatabase(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	a = &app{cfg: cfg, logger: l, db: db}
	defer func() {
		if err != nil {
			a.close()
			a = nil
		}
	}()
	l.Info("Connected to database", zap.String("driver", cfg.Database.Driver))

	if cfg.Database.Driver == database.DriverSQLite {
		if err := database.Migrate(ctx, db, models.All()...); err != nil {
			return nil, err
		}
	} else if err := checkSchema(db); err != nil {
		return nil, err
	}

	var api dummyapi.Client = dummyapi.NewClient(cfg.API, l)
	if cfg.Storage.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to storage: %w", err)
		}
		if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			return nil, err
		}
		api = importer.NewArchivingClient(api, client, cfg.Storage.Bucket, cfg.Storage.Prefix, l)
		l.Info("Archiving raw payloads", zap.String("bucket", cfg.Storage.Bucket))
	}

	a.service = importer.NewService(api, importer.NewGormStore(db), l, cfg.Import)
	return a, nil
}

// checkSchema fails when a column the importer writes is missing.
func checkSchema(db *gorm.DB) error {
	missing, err := database.MissingColumns(db, models.RequiredColumns())
	if err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}
	if len(missing) > 0 {
		return fmt.Errorf("schema is missing columns %s (run migrate)", strings.Join(missing, ", "))
	}
	return nil
}

func (a *app) close() {
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = a.logger.Sync()
}
