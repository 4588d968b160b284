package circuits

import (
	"context"
	"fmt"

	"circuit-manager/core/database"
	"circuit-manager/core/provider"
	"circuit-manager/core/storage"
	"circuit-manager/feature/circuits/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	db      *gorm.DB
	objects storage.Client
	bucket  string
	service *Service
	handler *Handler
	logger  *zap.Logger
}

// NewFeature creates the circuits feature. The provider engine it builds
// resolves adapters from the default registry, so adapter packages must be
// imported (for their init registration) before the feature loads.
func NewFeature(db *gorm.DB, objects storage.Client, bucket string, logger *zap.Logger, settings provider.Config) *Feature {
	store := NewStore(db, objects, bucket, logger)
	engine := provider.NewEngine(store, logger, settings)
	svc := NewService(store, engine, logger)
	h := NewHandler(svc)
	return &Feature{db: db, objects: objects, bucket: bucket, service: svc, handler: h, logger: logger}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "circuits"
}

// IsEnabled checks if the feature is enabled. The feature cannot operate
// without a database.
func (f *Feature) IsEnabled() bool {
	return f.db != nil
}

// Load migrates the schema, bootstraps the object storage bucket and
// registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	if f.objects != nil {
		if err := storage.EnsureBucket(context.Background(), f.objects, f.bucket); err != nil {
			return fmt.Errorf("object storage bootstrap failed: %w", err)
		}
		f.logger.Info("Object storage bucket ready", zap.String("bucket", f.bucket))
	}

	err := f.db.AutoMigrate(
		&models.Provider{},
		&models.Circuit{},
		&models.CircuitCost{},
		&models.CircuitContract{},
		&models.CircuitTicket{},
		&models.CircuitPath{},
		&models.ProviderAPIConfig{},
	)
	if err != nil {
		return err
	}

	// Sanity-check the matching columns the engine depends on.
	missing, err := database.MissingColumns(f.db, models.Circuit{}.TableName(), []string{"provider_id", "cid"})
	if err != nil {
		f.logger.Warn("Schema verification skipped", zap.Error(err))
	} else if len(missing) > 0 {
		f.logger.Error("Circuit table is missing columns", zap.Strings("missing", missing))
	}

	f.handler.RegisterRoutes(app)
	return nil
}

// Service exposes the feature's service for CLI commands that bypass HTTP.
func (f *Feature) Service() *Service {
	return f.service
}
