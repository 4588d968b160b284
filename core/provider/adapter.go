package provider

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RemoteRecord is a carrier's raw representation of one circuit. Beyond the
// external identifier used for matching, the engine treats it as opaque;
// adapters read whatever they need out of Fields.
type RemoteRecord struct {
	// ExternalID is the carrier's circuit identifier.
	ExternalID string

	// Fields holds the decoded carrier payload.
	Fields map[string]any
}

// LocalEntity is a reference snapshot of a locally stored circuit. The engine
// never mutates circuits directly; all writes go through the Store.
type LocalEntity struct {
	// ID is the local primary key.
	ID uint

	// ProviderID is the local provider the circuit belongs to.
	ProviderID uint

	// CID is the carrier circuit id recorded locally.
	CID string

	// Name is the display name, used only for logging and reports.
	Name string
}

// Session is the adapter-owned authentication state for one run.
// Adapters define the concrete type (typically a token plus an HTTP client);
// the engine only carries it between calls.
type Session any

// APIConfig is the engine's view of one provider API configuration.
// It is read-only to the engine except for the last-run fields, which only
// the runner writes (through Store.SaveRunOutcome) at run completion.
type APIConfig struct {
	ID           uint
	ProviderID   uint
	ProviderName string

	// ProviderType selects the adapter via the registry.
	ProviderType string

	// Endpoint is the carrier API base URL.
	Endpoint string

	// APIKey and APISecret authenticate against the carrier. They must never
	// appear in logs, summaries or any result payload.
	APIKey    string
	APISecret string

	Enabled  bool
	Interval time.Duration

	LastRun     *time.Time
	LastStatus  string
	LastMessage string
}

// Due reports whether the configuration qualifies for a scheduled run at the
// given instant: enabled, and either never run or past its interval.
func (c APIConfig) Due(now time.Time) bool {
	if !c.Enabled {
		return false
	}
	if c.LastRun == nil {
		return true
	}
	return now.Sub(*c.LastRun) >= c.Interval
}

// Deps are the collaborators handed to an adapter factory.
type Deps struct {
	Store  Store
	Logger *zap.Logger
}

// Factory constructs an adapter instance for one run.
type Factory func(deps Deps) Adapter

// Adapter is the mandatory capability set every carrier integration
// implements. All operations that cross the network take a context and must
// return errors from the engine taxonomy (*AuthError, *FetchError,
// *SyncError) for ordinary failures instead of panicking.
type Adapter interface {
	// Name returns the provider-type key this adapter registers under.
	Name() string

	// Authenticate establishes credentials against the carrier endpoint,
	// e.g. a token exchange. Network failures map to an *AuthError with
	// KindNetwork; malformed credential input maps to KindInvalid.
	Authenticate(ctx context.Context, cfg APIConfig) (Session, error)

	// ListRecords returns all currently relevant remote records, fully
	// materialized. A network failure mid-enumeration surfaces as a
	// *FetchError with KindPartial carrying the records fetched so far.
	ListRecords(ctx context.Context, sess Session) ([]RemoteRecord, error)

	// RecordDetail fetches the full payload for one record. It is called
	// only after matching, so unmatched records never pay for deep data.
	RecordDetail(ctx context.Context, sess Session, externalID string) (RemoteRecord, error)

	// SyncCost upserts cost data for the matched circuit through the Store.
	// It returns true on any committed change and false on a no-op, and must
	// be idempotent: the same input twice yields the same end state.
	SyncCost(ctx context.Context, sess Session, entity LocalEntity, rec RemoteRecord) (bool, error)
}

// TicketSyncer is the optional ticket synchronization capability.
// Its absence is a legal, detectable condition, not an error.
type TicketSyncer interface {
	SyncTickets(ctx context.Context, sess Session, entity LocalEntity, rec RemoteRecord) (bool, error)
}

// PathSyncer is the optional path synchronization capability. The geometry
// payload it produces is opaque to the engine; the Store decides how to keep
// it.
type PathSyncer interface {
	SyncPath(ctx context.Context, sess Session, entity LocalEntity, rec RemoteRecord) (bool, error)
}

// RecordMatcher lets an adapter replace the default matching policy entirely,
// e.g. for carriers whose circuit ids are not stable. Returning (nil, nil)
// means no match.
type RecordMatcher interface {
	MatchRecord(ctx context.Context, rec RemoteRecord) (*LocalEntity, error)
}
