package models

import (
	"time"
)

// Provider mirrors the host inventory's carrier entity. Rows are managed by
// operators; the sync engine only reads them.
type Provider struct {
	ID   uint   `gorm:"column:id;primaryKey" json:"id"`
	Name string `gorm:"column:name;size:100;uniqueIndex" json:"name"`
	Slug string `gorm:"column:slug;size:100;uniqueIndex" json:"slug"`
}

// TableName overrides the table name.
func (Provider) TableName() string {
	return "providers"
}

// Circuit is a locally tracked circuit. The CID column holds the carrier's
// circuit identifier and is what remote records match against.
type Circuit struct {
	ID          uint   `gorm:"column:id;primaryKey" json:"id"`
	ProviderID  uint   `gorm:"column:provider_id;index:idx_circuits_provider_cid" json:"provider_id"`
	CID         string `gorm:"column:cid;size:100;index:idx_circuits_provider_cid" json:"cid"`
	Name        string `gorm:"column:name;size:100" json:"name"`
	Status      string `gorm:"column:status;size:50" json:"status"`
	Description string `gorm:"column:description;type:text" json:"description"`
}

// TableName overrides the table name.
func (Circuit) TableName() string {
	return "circuits"
}

// CircuitCost tracks NRC and MRC costs for one circuit. Nil charges mean the
// carrier did not report a value.
type CircuitCost struct {
	ID        uint `gorm:"column:id;primaryKey" json:"id"`
	CircuitID uint `gorm:"column:circuit_id;uniqueIndex" json:"circuit_id"`
	// NRC is the one-time installation or setup charge.
	NRC *float64 `gorm:"column:nrc;type:decimal(12,2)" json:"nrc"`
	// MRC is the monthly service charge.
	MRC *float64 `gorm:"column:mrc;type:decimal(12,2)" json:"mrc"`
	// Currency is the ISO 4217 code (e.g. USD, EUR, GBP).
	Currency        string     `gorm:"column:currency;size:3;default:USD" json:"currency"`
	BillingAccount  string     `gorm:"column:billing_account;size:100" json:"billing_account"`
	LastUpdatedDate *time.Time `gorm:"column:last_updated_date" json:"last_updated_date"`
	CreatedAt       time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name.
func (CircuitCost) TableName() string {
	return "circuit_costs"
}

// CircuitContract stores contract terms for a circuit. The signed document
// itself lives in object storage under DocumentKey.
type CircuitContract struct {
	ID             uint       `gorm:"column:id;primaryKey" json:"id"`
	CircuitID      uint       `gorm:"column:circuit_id;index" json:"circuit_id"`
	ContractNumber string     `gorm:"column:contract_number;size:100" json:"contract_number"`
	StartDate      time.Time  `gorm:"column:start_date" json:"start_date"`
	EndDate        *time.Time `gorm:"column:end_date" json:"end_date"`
	TermMonths     *uint      `gorm:"column:term_months" json:"term_months"`
	AutoRenew      bool       `gorm:"column:auto_renew;default:false" json:"auto_renew"`
	// RenewalNoticeDays is the notice required for non-renewal.
	RenewalNoticeDays   *uint    `gorm:"column:renewal_notice_days" json:"renewal_notice_days"`
	EarlyTerminationFee *float64 `gorm:"column:early_termination_fee;type:decimal(12,2)" json:"early_termination_fee"`
	// DocumentKey is the object storage key of the uploaded contract file.
	DocumentKey string    `gorm:"column:document_key;size:255" json:"document_key"`
	Notes       string    `gorm:"column:notes;type:text" json:"notes"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name.
func (CircuitContract) TableName() string {
	return "circuit_contracts"
}

// Ticket status values.
const (
	TicketStatusOpen       = "open"
	TicketStatusInProgress = "in_progress"
	TicketStatusPending    = "pending"
	TicketStatusResolved   = "resolved"
	TicketStatusClosed     = "closed"
)

// Ticket priority values.
const (
	TicketPriorityLow      = "low"
	TicketPriorityMedium   = "medium"
	TicketPriorityHigh     = "high"
	TicketPriorityCritical = "critical"
)

// CircuitTicket tracks one support ticket for a circuit, keyed by the
// carrier's ticket number.
type CircuitTicket struct {
	ID           uint       `gorm:"column:id;primaryKey" json:"id"`
	CircuitID    uint       `gorm:"column:circuit_id;index" json:"circuit_id"`
	TicketNumber string     `gorm:"column:ticket_number;size:100;uniqueIndex" json:"ticket_number"`
	Subject      string     `gorm:"column:subject;size:255" json:"subject"`
	Status       string     `gorm:"column:status;size:20;default:open" json:"status"`
	Priority     string     `gorm:"column:priority;size:20;default:medium" json:"priority"`
	OpenedDate   time.Time  `gorm:"column:opened_date;autoCreateTime" json:"opened_date"`
	ClosedDate   *time.Time `gorm:"column:closed_date" json:"closed_date"`
	Description  string     `gorm:"column:description;type:text" json:"description"`
	Resolution   string     `gorm:"column:resolution;type:text" json:"resolution"`
	ExternalURL  string     `gorm:"column:external_url;size:255" json:"external_url"`
	UpdatedAt    time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name.
func (CircuitTicket) TableName() string {
	return "circuit_tickets"
}

// CircuitPath stores geographic path information for a circuit. The raw
// carrier archive (KMZ or similar) lives in object storage under ArchiveKey;
// PayloadSHA fingerprints it so unchanged payloads are not rewritten.
type CircuitPath struct {
	ID        uint   `gorm:"column:id;primaryKey" json:"id"`
	CircuitID uint   `gorm:"column:circuit_id;uniqueIndex" json:"circuit_id"`
	ArchiveKey string `gorm:"column:archive_key;size:255" json:"archive_key"`
	// PayloadSHA is the hex SHA-256 of the stored archive.
	PayloadSHA     string    `gorm:"column:payload_sha;size:64" json:"payload_sha"`
	MapCenterLat   *float64  `gorm:"column:map_center_lat;type:decimal(9,6)" json:"map_center_lat"`
	MapCenterLon   *float64  `gorm:"column:map_center_lon;type:decimal(9,6)" json:"map_center_lon"`
	MapZoom        uint      `gorm:"column:map_zoom;default:10" json:"map_zoom"`
	PathDistanceKM *float64  `gorm:"column:path_distance_km;type:decimal(10,2)" json:"path_distance_km"`
	Notes          string    `gorm:"column:notes;type:text" json:"notes"`
	UpdatedAt      time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name.
func (CircuitPath) TableName() string {
	return "circuit_paths"
}

// ProviderAPIConfig holds one provider API integration. The key and secret
// are write-only: they never serialize into API responses.
type ProviderAPIConfig struct {
	ID         uint `gorm:"column:id;primaryKey" json:"id"`
	ProviderID uint `gorm:"column:provider_id;uniqueIndex:idx_api_configs_provider_type" json:"provider_id"`
	// ProviderType selects the adapter in the provider registry.
	ProviderType string `gorm:"column:provider_type;size:50;uniqueIndex:idx_api_configs_provider_type" json:"provider_type"`
	APIEndpoint  string `gorm:"column:api_endpoint;size:255" json:"api_endpoint"`
	APIKey       string `gorm:"column:api_key;size:255" json:"-"`
	APISecret    string `gorm:"column:api_secret;size:255" json:"-"`
	SyncEnabled  bool   `gorm:"column:sync_enabled;default:false" json:"sync_enabled"`
	// SyncIntervalHours is the time between automatic syncs.
	SyncIntervalHours uint       `gorm:"column:sync_interval_hours;default:24" json:"sync_interval_hours"`
	LastSync          *time.Time `gorm:"column:last_sync" json:"last_sync"`
	// SyncStatus is the last run's terminal status.
	SyncStatus string `gorm:"column:sync_status;size:100" json:"sync_status"`
	// SyncMessage is the last run's compact status line.
	SyncMessage string    `gorm:"column:sync_message;size:255" json:"sync_message"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name.
func (ProviderAPIConfig) TableName() string {
	return "provider_api_configs"
}
