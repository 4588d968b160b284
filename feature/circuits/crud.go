package circuits

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"circuit-manager/feature/circuits/models"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrConfigExists is returned when a configuration for the same provider and
// provider type already exists. One configuration per pair keeps the
// scheduler's per-config lock meaningful.
var ErrConfigExists = errors.New("a configuration for this provider and type already exists")

// ErrNotFound is returned for lookups of rows that do not exist.
var ErrNotFound = errors.New("not found")

// CreateConfig inserts a new provider API configuration.
func (s *Store) CreateConfig(ctx context.Context, cfg *models.ProviderAPIConfig) error {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.ProviderAPIConfig{}).
		Where("provider_id = ? AND provider_type = ?", cfg.ProviderID, cfg.ProviderType).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check existing config: %w", err)
	}
	if count > 0 {
		return ErrConfigExists
	}

	if err := s.db.WithContext(ctx).Create(cfg).Error; err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}
	return nil
}

// GetConfigRow loads the raw configuration row, including credentials. Only
// internal callers see this shape; handlers serialize it with the write-only
// credential fields omitted.
func (s *Store) GetConfigRow(ctx context.Context, id uint) (*models.ProviderAPIConfig, error) {
	var row models.ProviderAPIConfig
	err := s.db.WithContext(ctx).First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("config %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config %d: %w", id, err)
	}
	return &row, nil
}

// ListConfigRows returns all configuration rows.
func (s *Store) ListConfigRows(ctx context.Context) ([]models.ProviderAPIConfig, error) {
	var rows []models.ProviderAPIConfig
	if err := s.db.WithContext(ctx).Order("provider_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list configs: %w", err)
	}
	return rows, nil
}

// SaveConfigRow persists changes to an existing configuration row.
func (s *Store) SaveConfigRow(ctx context.Context, cfg *models.ProviderAPIConfig) error {
	if err := s.db.WithContext(ctx).Save(cfg).Error; err != nil {
		return fmt.Errorf("failed to save config %d: %w", cfg.ID, err)
	}
	return nil
}

// DeleteConfig removes a configuration row.
func (s *Store) DeleteConfig(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.ProviderAPIConfig{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete config %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("config %d: %w", id, ErrNotFound)
	}
	return nil
}

// GetCircuit loads one circuit row.
func (s *Store) GetCircuit(ctx context.Context, id uint) (*models.Circuit, error) {
	var row models.Circuit
	err := s.db.WithContext(ctx).First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("circuit %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load circuit %d: %w", id, err)
	}
	return &row, nil
}

// GetCost returns the cost row for a circuit.
func (s *Store) GetCost(ctx context.Context, circuitID uint) (*models.CircuitCost, error) {
	var row models.CircuitCost
	err := s.db.WithContext(ctx).Where("circuit_id = ?", circuitID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("cost for circuit %d: %w", circuitID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cost for circuit %d: %w", circuitID, err)
	}
	return &row, nil
}

// ListTickets returns all tickets for a circuit, newest first.
func (s *Store) ListTickets(ctx context.Context, circuitID uint) ([]models.CircuitTicket, error) {
	var rows []models.CircuitTicket
	err := s.db.WithContext(ctx).
		Where("circuit_id = ?", circuitID).
		Order("opened_date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets for circuit %d: %w", circuitID, err)
	}
	return rows, nil
}

// GetPath returns the path row for a circuit.
func (s *Store) GetPath(ctx context.Context, circuitID uint) (*models.CircuitPath, error) {
	var row models.CircuitPath
	err := s.db.WithContext(ctx).Where("circuit_id = ?", circuitID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("path for circuit %d: %w", circuitID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load path for circuit %d: %w", circuitID, err)
	}
	return &row, nil
}

// ListContracts returns all contracts for a circuit, newest first.
func (s *Store) ListContracts(ctx context.Context, circuitID uint) ([]models.CircuitContract, error) {
	var rows []models.CircuitContract
	err := s.db.WithContext(ctx).
		Where("circuit_id = ?", circuitID).
		Order("start_date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts for circuit %d: %w", circuitID, err)
	}
	return rows, nil
}

// CreateContract inserts a new contract row.
func (s *Store) CreateContract(ctx context.Context, contract *models.CircuitContract) error {
	if err := s.db.WithContext(ctx).Create(contract).Error; err != nil {
		return fmt.Errorf("failed to create contract: %w", err)
	}
	return nil
}

// AttachContractDocument uploads a contract document to object storage and
// records its key on the contract row. A previously attached document under a
// different key is removed so replaced uploads do not leak orphaned objects.
func (s *Store) AttachContractDocument(ctx context.Context, contractID uint, filename string, reader io.Reader, size int64) (string, error) {
	var contract models.CircuitContract
	err := s.db.WithContext(ctx).First(&contract, contractID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("contract %d: %w", contractID, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to load contract %d: %w", contractID, err)
	}

	previous := contract.DocumentKey
	key := fmt.Sprintf("circuit_contracts/%d/%s", contractID, filepath.Base(filename))
	_, err = s.objects.PutObject(ctx, s.bucket, key, reader, size,
		minio.PutObjectOptions{ContentType: "application/octet-stream"})
	if err != nil {
		return "", fmt.Errorf("failed to upload contract document: %w", err)
	}

	contract.DocumentKey = key
	if err := s.db.WithContext(ctx).Save(&contract).Error; err != nil {
		return "", fmt.Errorf("failed to record document key: %w", err)
	}

	if previous != "" && previous != key {
		if err := s.objects.RemoveObject(ctx, s.bucket, previous, minio.RemoveObjectOptions{}); err != nil {
			s.logger.Warn("Failed to remove replaced contract document",
				zap.String("key", previous), zap.Error(err))
		}
	}
	return key, nil
}

// DeleteContract removes a contract row and its stored document, if any. The
// row is the source of truth, so a failed object removal is logged rather
// than rolling the delete back.
func (s *Store) DeleteContract(ctx context.Context, contractID uint) error {
	var contract models.CircuitContract
	err := s.db.WithContext(ctx).First(&contract, contractID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("contract %d: %w", contractID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to load contract %d: %w", contractID, err)
	}

	if err := s.db.WithContext(ctx).Delete(&contract).Error; err != nil {
		return fmt.Errorf("failed to delete contract %d: %w", contractID, err)
	}

	if contract.DocumentKey != "" {
		if err := s.objects.RemoveObject(ctx, s.bucket, contract.DocumentKey, minio.RemoveObjectOptions{}); err != nil {
			s.logger.Warn("Failed to remove contract document",
				zap.String("key", contract.DocumentKey), zap.Error(err))
		}
	}
	return nil
}

// ContractDocument streams a stored contract document.
func (s *Store) ContractDocument(ctx context.Context, contractID uint) (io.ReadCloser, error) {
	var contract models.CircuitContract
	err := s.db.WithContext(ctx).First(&contract, contractID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("contract %d: %w", contractID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load contract %d: %w", contractID, err)
	}
	if contract.DocumentKey == "" {
		return nil, fmt.Errorf("contract %d has no document: %w", contractID, ErrNotFound)
	}
	return s.objects.GetObject(ctx, s.bucket, contract.DocumentKey, minio.GetObjectOptions{})
}
