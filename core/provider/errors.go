package provider

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateKey is returned by Registry.Register when the provider-type
	// key is already bound. A duplicate registration is a programming error
	// that must surface immediately, not be silently overwritten.
	ErrDuplicateKey = errors.New("provider type already registered")

	// ErrRunInProgress is returned when a run is requested for a
	// configuration that is already running. Concurrent runs against the
	// same credentials risk duplicate authentication and racing last-run
	// writes, so the invocation is rejected, not queued.
	ErrRunInProgress = errors.New("sync already in progress for this configuration")

	// ErrConfigNotFound is returned by Store implementations when the
	// requested configuration does not exist.
	ErrConfigNotFound = errors.New("provider configuration not found")
)

// ConfigError marks a configuration problem (unknown provider-type key,
// malformed config). It is fatal and never retried.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "config error: " + e.Reason
}

// AuthKind classifies authentication failures.
type AuthKind int

const (
	// AuthInvalid means the credential input was malformed or rejected.
	AuthInvalid AuthKind = iota
	// AuthNetwork means an HTTP or network failure prevented authentication.
	// This is the only kind eligible for the bounded retry.
	AuthNetwork
)

// AuthError is fatal to a run: no subsequent call can succeed without a
// session.
type AuthError struct {
	Kind AuthKind
	Err  error
}

func (e *AuthError) Error() string {
	switch e.Kind {
	case AuthNetwork:
		return fmt.Sprintf("authentication failed (network): %v", e.Err)
	default:
		return fmt.Sprintf("authentication failed (invalid credentials): %v", e.Err)
	}
}

func (e *AuthError) Unwrap() error { return e.Err }

// FetchKind classifies enumeration and detail-fetch failures.
type FetchKind int

const (
	// FetchTotal means enumeration produced nothing usable; fatal at
	// enumeration time.
	FetchTotal FetchKind = iota
	// FetchPartial means enumeration failed mid-way; Records carries what
	// was fetched before the failure. The run proceeds with the partial set
	// since the engine only upserts and never deletes by omission.
	FetchPartial
	// FetchNetwork is a network failure on a single detail fetch; non-fatal,
	// recorded against the record.
	FetchNetwork
)

// FetchError is returned by ListRecords and RecordDetail.
type FetchError struct {
	Kind FetchKind
	// Records holds the partial result for KindPartial.
	Records []RemoteRecord
	Err     error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FetchPartial:
		return fmt.Sprintf("partial enumeration (%d records): %v", len(e.Records), e.Err)
	case FetchNetwork:
		return fmt.Sprintf("fetch failed (network): %v", e.Err)
	default:
		return fmt.Sprintf("fetch failed: %v", e.Err)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// SyncKind classifies sub-sync failures.
type SyncKind int

const (
	// SyncValidation means the carrier payload did not validate.
	SyncValidation SyncKind = iota
	// SyncStorage means the local upsert failed.
	SyncStorage
	// SyncNetwork means a network failure during the sub-sync.
	SyncNetwork
)

// SyncError is always non-fatal to the run; it is recorded against the
// specific record and sub-sync step that produced it.
type SyncError struct {
	Kind SyncKind
	// Step names the sub-sync ("cost", "tickets", "path").
	Step string
	Err  error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("%s sync failed: %v", e.Step, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }
