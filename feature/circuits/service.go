package circuits

import (
	"context"
	"fmt"
	"io"

	"circuit-manager/core/provider"
	"circuit-manager/feature/circuits/models"

	"go.uber.org/zap"
)

// Service handles circuit feature operations: configuration management and
// triggering synchronization runs through the provider engine.
type Service struct {
	store  *Store
	engine *provider.Engine
	logger *zap.Logger
}

// NewService creates a new circuits service.
func NewService(store *Store, engine *provider.Engine, logger *zap.Logger) *Service {
	return &Service{store: store, engine: engine, logger: logger}
}

// ConfigRequest is the write shape for provider API configurations. Nil
// fields are left untouched on update. Key and secret are write-only: they
// can be set here but never appear in any response.
type ConfigRequest struct {
	ProviderID        *uint   `json:"provider_id"`
	ProviderType      *string `json:"provider_type"`
	APIEndpoint       *string `json:"api_endpoint"`
	APIKey            *string `json:"api_key"`
	APISecret         *string `json:"api_secret"`
	SyncEnabled       *bool   `json:"sync_enabled"`
	SyncIntervalHours *uint   `json:"sync_interval_hours"`
}

// ProviderTypes returns the registered adapter keys, sorted.
func (s *Service) ProviderTypes() []string {
	return provider.RegisteredKeys()
}

// Configs lists all provider API configurations.
func (s *Service) Configs(ctx context.Context) ([]models.ProviderAPIConfig, error) {
	return s.store.ListConfigRows(ctx)
}

// Config loads one configuration.
func (s *Service) Config(ctx context.Context, id uint) (*models.ProviderAPIConfig, error) {
	return s.store.GetConfigRow(ctx, id)
}

// CreateConfig validates and inserts a new configuration.
func (s *Service) CreateConfig(ctx context.Context, req ConfigRequest) (*models.ProviderAPIConfig, error) {
	if req.ProviderID == nil || req.ProviderType == nil || req.APIEndpoint == nil {
		return nil, fmt.Errorf("provider_id, provider_type and api_endpoint are required")
	}
	if _, ok := provider.Lookup(*req.ProviderType); !ok {
		return nil, fmt.Errorf("unknown provider type %q, registered types: %v", *req.ProviderType, provider.RegisteredKeys())
	}

	cfg := &models.ProviderAPIConfig{
		ProviderID:        *req.ProviderID,
		ProviderType:      *req.ProviderType,
		APIEndpoint:       *req.APIEndpoint,
		SyncIntervalHours: 24,
	}
	applyConfigRequest(cfg, req)

	if err := s.store.CreateConfig(ctx, cfg); err != nil {
		return nil, err
	}
	s.logger.Info("Created provider API config",
		zap.Uint("config_id", cfg.ID),
		zap.String("provider_type", cfg.ProviderType),
	)
	return cfg, nil
}

// UpdateConfig applies a partial update to an existing configuration.
func (s *Service) UpdateConfig(ctx context.Context, id uint, req ConfigRequest) (*models.ProviderAPIConfig, error) {
	cfg, err := s.store.GetConfigRow(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ProviderType != nil {
		if _, ok := provider.Lookup(*req.ProviderType); !ok {
			return nil, fmt.Errorf("unknown provider type %q, registered types: %v", *req.ProviderType, provider.RegisteredKeys())
		}
		cfg.ProviderType = *req.ProviderType
	}
	if req.ProviderID != nil {
		cfg.ProviderID = *req.ProviderID
	}
	if req.APIEndpoint != nil {
		cfg.APIEndpoint = *req.APIEndpoint
	}
	applyConfigRequest(cfg, req)

	if err := s.store.SaveConfigRow(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DeleteConfig removes a configuration.
func (s *Service) DeleteConfig(ctx context.Context, id uint) error {
	return s.store.DeleteConfig(ctx, id)
}

// TestConnection runs the configuration through authentication only.
func (s *Service) TestConnection(ctx context.Context, id uint) (*provider.TestResult, error) {
	return s.engine.RunTest(ctx, id)
}

// Sync performs a full synchronization run for one configuration.
func (s *Service) Sync(ctx context.Context, id uint) (*provider.RunSummary, error) {
	return s.engine.RunOne(ctx, id)
}

// SyncDue runs every due configuration and collects the summaries.
func (s *Service) SyncDue(ctx context.Context) ([]*provider.RunSummary, error) {
	out, err := s.engine.RunDue(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]*provider.RunSummary, 0)
	for summary := range out {
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// Circuit loads one circuit row.
func (s *Service) Circuit(ctx context.Context, id uint) (*models.Circuit, error) {
	return s.store.GetCircuit(ctx, id)
}

// CircuitCost returns the synced cost data for a circuit.
func (s *Service) CircuitCost(ctx context.Context, circuitID uint) (*models.CircuitCost, error) {
	return s.store.GetCost(ctx, circuitID)
}

// CircuitTickets returns the synced tickets for a circuit.
func (s *Service) CircuitTickets(ctx context.Context, circuitID uint) ([]models.CircuitTicket, error) {
	return s.store.ListTickets(ctx, circuitID)
}

// CircuitPath returns the path record for a circuit.
func (s *Service) CircuitPath(ctx context.Context, circuitID uint) (*models.CircuitPath, error) {
	return s.store.GetPath(ctx, circuitID)
}

// CircuitContracts returns the contracts for a circuit.
func (s *Service) CircuitContracts(ctx context.Context, circuitID uint) ([]models.CircuitContract, error) {
	return s.store.ListContracts(ctx, circuitID)
}

// CreateContract inserts a new contract row.
func (s *Service) CreateContract(ctx context.Context, contract *models.CircuitContract) error {
	return s.store.CreateContract(ctx, contract)
}

// DeleteContract removes a contract and its stored document.
func (s *Service) DeleteContract(ctx context.Context, contractID uint) error {
	return s.store.DeleteContract(ctx, contractID)
}

// UploadContractDocument stores a contract document and records its key.
func (s *Service) UploadContractDocument(ctx context.Context, contractID uint, filename string, reader io.Reader, size int64) (string, error) {
	return s.store.AttachContractDocument(ctx, contractID, filename, reader, size)
}

// DownloadContractDocument streams a stored contract document.
func (s *Service) DownloadContractDocument(ctx context.Context, contractID uint) (io.ReadCloser, error) {
	return s.store.ContractDocument(ctx, contractID)
}

func applyConfigRequest(cfg *models.ProviderAPIConfig, req ConfigRequest) {
	if req.APIKey != nil {
		cfg.APIKey = *req.APIKey
	}
	if req.APISecret != nil {
		cfg.APISecret = *req.APISecret
	}
	if req.SyncEnabled != nil {
		cfg.SyncEnabled = *req.SyncEnabled
	}
	if req.SyncIntervalHours != nil {
		cfg.SyncIntervalHours = *req.SyncIntervalHours
	}
}
