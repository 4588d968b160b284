package circuits

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"circuit-manager/core/provider"
	"circuit-manager/core/storage"
	"circuit-manager/feature/circuits/models"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Store is the gorm-backed persistence layer for the circuit feature and the
// provider engine. Database rows hold the structured data; opaque payloads
// (contract documents, path archives) go to object storage with only the key
// kept on the row.
type Store struct {
	db      *gorm.DB
	objects storage.Client
	bucket  string
	logger  *zap.Logger
}

// NewStore creates a store.
func NewStore(db *gorm.DB, objects storage.Client, bucket string, logger *zap.Logger) *Store {
	return &Store{db: db, objects: objects, bucket: bucket, logger: logger}
}

// FindCircuitsByProviderCID returns every circuit of the provider whose
// carrier circuit-id equals externalID. All candidates are returned so the
// matcher can detect ambiguity.
func (s *Store) FindCircuitsByProviderCID(ctx context.Context, providerID uint, externalID string) ([]provider.LocalEntity, error) {
	var rows []models.Circuit
	err := s.db.WithContext(ctx).
		Where("provider_id = ? AND cid = ?", providerID, externalID).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query circuits: %w", err)
	}

	entities := make([]provider.LocalEntity, 0, len(rows))
	for _, row := range rows {
		entities = append(entities, provider.LocalEntity{
			ID:         row.ID,
			ProviderID: row.ProviderID,
			CID:        row.CID,
			Name:       row.Name,
		})
	}
	return entities, nil
}

// UpsertCost writes cost data for a circuit. Returns false when the stored
// values already match, so repeated syncs of identical carrier data are
// no-ops.
func (s *Store) UpsertCost(ctx context.Context, entity provider.LocalEntity, fields provider.CostFields) (bool, error) {
	var cost models.CircuitCost
	err := s.db.WithContext(ctx).Where("circuit_id = ?", entity.ID).First(&cost).Error

	now := time.Now()
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cost = models.CircuitCost{
			CircuitID:       entity.ID,
			NRC:             fields.NRC,
			MRC:             fields.MRC,
			Currency:        currencyOrDefault(fields.Currency),
			BillingAccount:  fields.BillingAccount,
			LastUpdatedDate: &now,
		}
		if err := s.db.WithContext(ctx).Create(&cost).Error; err != nil {
			return false, fmt.Errorf("failed to create cost: %w", err)
		}
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load cost: %w", err)
	}

	if floatPtrEqual(cost.NRC, fields.NRC) &&
		floatPtrEqual(cost.MRC, fields.MRC) &&
		cost.Currency == currencyOrDefault(fields.Currency) &&
		cost.BillingAccount == fields.BillingAccount {
		return false, nil
	}

	cost.NRC = fields.NRC
	cost.MRC = fields.MRC
	cost.Currency = currencyOrDefault(fields.Currency)
	cost.BillingAccount = fields.BillingAccount
	cost.LastUpdatedDate = &now
	if err := s.db.WithContext(ctx).Save(&cost).Error; err != nil {
		return false, fmt.Errorf("failed to update cost: %w", err)
	}
	return true, nil
}

// UpsertTicket writes one support ticket, keyed by ticket number.
func (s *Store) UpsertTicket(ctx context.Context, entity provider.LocalEntity, fields provider.TicketFields) (bool, error) {
	var ticket models.CircuitTicket
	err := s.db.WithContext(ctx).Where("ticket_number = ?", fields.Number).First(&ticket).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		ticket = models.CircuitTicket{
			CircuitID:    entity.ID,
			TicketNumber: fields.Number,
			Subject:      fields.Subject,
			Status:       fields.Status,
			Priority:     fields.Priority,
			Description:  fields.Description,
			Resolution:   fields.Resolution,
			ExternalURL:  fields.ExternalURL,
			ClosedDate:   fields.ClosedAt,
		}
		if err := s.db.WithContext(ctx).Create(&ticket).Error; err != nil {
			return false, fmt.Errorf("failed to create ticket %s: %w", fields.Number, err)
		}
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load ticket %s: %w", fields.Number, err)
	}

	if ticket.CircuitID == entity.ID &&
		ticket.Subject == fields.Subject &&
		ticket.Status == fields.Status &&
		ticket.Priority == fields.Priority &&
		ticket.Description == fields.Description &&
		ticket.Resolution == fields.Resolution &&
		ticket.ExternalURL == fields.ExternalURL &&
		timePtrEqual(ticket.ClosedDate, fields.ClosedAt) {
		return false, nil
	}

	ticket.CircuitID = entity.ID
	ticket.Subject = fields.Subject
	ticket.Status = fields.Status
	ticket.Priority = fields.Priority
	ticket.Description = fields.Description
	ticket.Resolution = fields.Resolution
	ticket.ExternalURL = fields.ExternalURL
	ticket.ClosedDate = fields.ClosedAt
	if err := s.db.WithContext(ctx).Save(&ticket).Error; err != nil {
		return false, fmt.Errorf("failed to update ticket %s: %w", fields.Number, err)
	}
	return true, nil
}

// UpsertPath stores an opaque path archive for a circuit. The payload is
// fingerprinted with SHA-256: an unchanged archive touches neither object
// storage nor the row.
func (s *Store) UpsertPath(ctx context.Context, entity provider.LocalEntity, payload []byte) (bool, error) {
	digest := sha256.Sum256(payload)
	sha := hex.EncodeToString(digest[:])

	var path models.CircuitPath
	err := s.db.WithContext(ctx).Where("circuit_id = ?", entity.ID).First(&path).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to load path: %w", err)
	}
	if err == nil && path.PayloadSHA == sha {
		return false, nil
	}

	key := fmt.Sprintf("circuit_paths/%d/archive", entity.ID)
	_, putErr := s.objects.PutObject(ctx, s.bucket, key,
		bytes.NewReader(payload), int64(len(payload)),
		minio.PutObjectOptions{ContentType: "application/octet-stream"})
	if putErr != nil {
		return false, fmt.Errorf("failed to store path archive: %w", putErr)
	}

	path.CircuitID = entity.ID
	path.ArchiveKey = key
	path.PayloadSHA = sha
	if err := s.db.WithContext(ctx).Save(&path).Error; err != nil {
		return false, fmt.Errorf("failed to save path: %w", err)
	}
	return true, nil
}

// GetAPIConfig loads one provider API configuration in the engine's shape.
func (s *Store) GetAPIConfig(ctx context.Context, id uint) (*provider.APIConfig, error) {
	var row models.ProviderAPIConfig
	err := s.db.WithContext(ctx).First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w (id %d)", provider.ErrConfigNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config %d: %w", id, err)
	}

	cfg := toEngineConfig(row)
	cfg.ProviderName = s.providerName(ctx, row.ProviderID)
	return &cfg, nil
}

// ListAPIConfigs returns all provider API configurations. The engine applies
// the due/enabled scheduling policy itself.
func (s *Store) ListAPIConfigs(ctx context.Context) ([]provider.APIConfig, error) {
	var rows []models.ProviderAPIConfig
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list configs: %w", err)
	}

	configs := make([]provider.APIConfig, 0, len(rows))
	for _, row := range rows {
		configs = append(configs, toEngineConfig(row))
	}
	return configs, nil
}

// SaveRunOutcome folds a run's terminal state into the configuration's
// last-run columns.
func (s *Store) SaveRunOutcome(ctx context.Context, configID uint, summary *provider.RunSummary) error {
	updates := map[string]any{
		"last_sync":    summary.FinishedAt,
		"sync_status":  string(summary.Status),
		"sync_message": summary.Message(),
	}
	err := s.db.WithContext(ctx).
		Model(&models.ProviderAPIConfig{}).
		Where("id = ?", configID).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("failed to save run outcome: %w", err)
	}
	return nil
}

func (s *Store) providerName(ctx context.Context, providerID uint) string {
	var p models.Provider
	if err := s.db.WithContext(ctx).First(&p, providerID).Error; err != nil {
		return ""
	}
	return p.Name
}

func toEngineConfig(row models.ProviderAPIConfig) provider.APIConfig {
	return provider.APIConfig{
		ID:           row.ID,
		ProviderID:   row.ProviderID,
		ProviderType: row.ProviderType,
		Endpoint:     row.APIEndpoint,
		APIKey:       row.APIKey,
		APISecret:    row.APISecret,
		Enabled:      row.SyncEnabled,
		Interval:     time.Duration(row.SyncIntervalHours) * time.Hour,
		LastRun:      row.LastSync,
		LastStatus:   row.SyncStatus,
		LastMessage:  row.SyncMessage,
	}
}

func currencyOrDefault(currency string) string {
	if currency == "" {
		return "USD"
	}
	return currency
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
