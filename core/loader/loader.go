package loader

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature is the lifecycle contract every loadable module implements.
type Feature interface {
	// Name returns the feature's identifier, used in logs and route groups.
	Name() string
	// IsEnabled reports whether the feature should be loaded.
	IsEnabled() bool
	// Load registers the feature's routes and initializes its state.
	Load(app fiber.Router) error
}

// Manager holds the registry of available features.
type Manager struct {
	features []Feature
	logger   *zap.Logger
}

// NewManager creates an empty feature manager.
func NewManager() *Manager {
	return &Manager{logger: zap.L()}
}

// Register adds a feature to the manager. Order matters: features load in
// registration order.
func (m *Manager) Register(f Feature) {
	m.features = append(m.features, f)
}

// LoadAll loads every enabled feature. A single feature failing to load is
// fatal: a partially initialized application is worse than a crashed one.
func (m *Manager) LoadAll(app fiber.Router) error {
	for _, f := range m.features {
		if !f.IsEnabled() {
			m.logger.Info("Skipping disabled feature", zap.String("feature", f.Name()))
			continue
		}
		if err := f.Load(app); err != nil {
			return fmt.Errorf("failed to load feature %s: %w", f.Name(), err)
		}
		m.logger.Info("Loaded feature", zap.String("feature", f.Name()))
	}
	return nil
}
