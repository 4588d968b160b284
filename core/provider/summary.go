package provider

import (
	"fmt"
	"time"
)

// RunStatus is the terminal status of a run.
type RunStatus string

const (
	// StatusCompleted means every processed record synced cleanly.
	StatusCompleted RunStatus = "completed"
	// StatusCompletedWithErrors means the run finished but some records
	// failed.
	StatusCompletedWithErrors RunStatus = "completed_with_errors"
	// StatusAborted means a fatal error (or cancellation) ended the run
	// before Finalizing.
	StatusAborted RunStatus = "aborted"
)

// MaxRecordErrors caps the per-record error list kept on a RunSummary.
// Failed keeps counting past the cap; only the messages stop accumulating.
const MaxRecordErrors = 100

// RunSummary aggregates one synchronization attempt. It is transient except
// for the terminal fields folded into the configuration's last-run columns.
type RunSummary struct {
	// RunID uniquely identifies the attempt in logs.
	RunID string `json:"run_id"`

	ConfigID     uint   `json:"config_id"`
	ProviderType string `json:"provider_type"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// Total is the number of remote records enumerated.
	Total int `json:"total"`
	// Synced counts records whose sub-syncs all succeeded.
	Synced int `json:"synced"`
	// Skipped counts unmatched records. Unmatched is not an error.
	Skipped int `json:"skipped"`
	// Failed counts records with at least one failure. It reflects the true
	// total even when Errors is truncated.
	Failed int `json:"failed"`

	Status RunStatus `json:"status"`

	// Abort holds the headline error for aborted runs.
	Abort string `json:"abort,omitempty"`

	// Warnings holds run-level warnings, e.g. partial enumeration.
	Warnings []string `json:"warnings,omitempty"`

	// Errors holds per-record error messages, capped at MaxRecordErrors.
	Errors []string `json:"errors,omitempty"`

	// ErrorsTruncated marks that more errors occurred than Errors holds.
	ErrorsTruncated bool `json:"errors_truncated,omitempty"`
}

// recordError appends a per-record error message, honoring the cap.
func (s *RunSummary) recordError(msg string) {
	if len(s.Errors) >= MaxRecordErrors {
		if !s.ErrorsTruncated {
			s.ErrorsTruncated = true
			s.Errors = append(s.Errors, fmt.Sprintf("... further errors omitted (cap %d)", MaxRecordErrors))
		}
		return
	}
	s.Errors = append(s.Errors, msg)
}

// Message renders the compact status line stored on the configuration's
// last-run fields. It never contains credentials.
func (s *RunSummary) Message() string {
	switch s.Status {
	case StatusAborted:
		return fmt.Sprintf("Aborted: %s", s.Abort)
	case StatusCompletedWithErrors:
		return fmt.Sprintf("Completed with errors: %d/%d synced, %d failed", s.Synced, s.Total, s.Failed)
	default:
		return fmt.Sprintf("Success: %d/%d synced", s.Synced, s.Total)
	}
}

// TestResult is the ephemeral outcome of a connection test. It is returned
// to the caller and never persisted.
type TestResult struct {
	Success bool `json:"success"`
	// Message describes the outcome; credential values never appear here.
	Message string `json:"message"`
	// ResponseTime is how long authentication took.
	ResponseTime time.Duration `json:"response_time"`
}
