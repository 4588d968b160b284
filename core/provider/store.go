package provider

import (
	"context"
	"time"
)

// CostFields is the normalized cost payload an adapter extracts from a
// carrier record. Nil charge pointers mean the carrier did not report the
// value, not zero.
type CostFields struct {
	// NRC is the one-time non-recurring charge.
	NRC *float64
	// MRC is the monthly recurring charge.
	MRC *float64
	// Currency is the ISO 4217 code, e.g. "USD".
	Currency string
	// BillingAccount is the carrier billing account number.
	BillingAccount string
}

// TicketFields is the normalized support-ticket payload. Status and Priority
// use the local vocabulary; adapters map carrier values before upserting.
type TicketFields struct {
	Number      string
	Subject     string
	Status      string
	Priority    string
	Description string
	Resolution  string
	ExternalURL string
	ClosedAt    *time.Time
}

// Store is the narrow persistence interface the engine depends on. Each
// upsert is transactional at single-record granularity: it either fully
// succeeds or fully fails, never writing partial fields.
type Store interface {
	// FindCircuitsByProviderCID returns every local circuit whose carrier
	// circuit-id equals externalID under the given provider. The matcher
	// needs all candidates to detect ambiguity.
	FindCircuitsByProviderCID(ctx context.Context, providerID uint, externalID string) ([]LocalEntity, error)

	// UpsertCost writes cost data for a circuit. Returns true if anything
	// changed, false if the stored data was already current.
	UpsertCost(ctx context.Context, entity LocalEntity, fields CostFields) (bool, error)

	// UpsertTicket writes one support ticket, keyed by ticket number.
	UpsertTicket(ctx context.Context, entity LocalEntity, fields TicketFields) (bool, error)

	// UpsertPath stores an opaque geometry payload for a circuit. The engine
	// never inspects the payload; parsing and rendering are someone else's
	// concern.
	UpsertPath(ctx context.Context, entity LocalEntity, payload []byte) (bool, error)

	// GetAPIConfig loads one provider API configuration.
	// Returns ErrConfigNotFound if it does not exist.
	GetAPIConfig(ctx context.Context, id uint) (*APIConfig, error)

	// ListAPIConfigs returns all provider API configurations. The engine
	// applies the due/enabled scheduling policy itself.
	ListAPIConfigs(ctx context.Context) ([]APIConfig, error)

	// SaveRunOutcome persists a run's terminal state onto the
	// configuration's last-run fields. Called exactly once per run,
	// including aborted ones.
	SaveRunOutcome(ctx context.Context, configID uint, summary *RunSummary) error
}
