package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// runState tracks the run lifecycle for logging. A run always moves forward:
// Init -> Authenticating -> Enumerating -> Processing -> Finalizing, ending
// in Completed or Aborted.
type runState int

const (
	stateInit runState = iota
	stateAuthenticating
	stateEnumerating
	stateProcessing
	stateFinalizing
)

func (s runState) String() string {
	switch s {
	case stateAuthenticating:
		return "authenticating"
	case stateEnumerating:
		return "enumerating"
	case stateProcessing:
		return "processing"
	case stateFinalizing:
		return "finalizing"
	default:
		return "init"
	}
}

// runner drives one synchronization attempt for one configuration.
type runner struct {
	cfg      APIConfig
	adapter  Adapter
	store    Store
	settings Config
	logger   *zap.Logger

	state   runState
	summary *RunSummary
}

func newRunner(cfg APIConfig, adapter Adapter, store Store, settings Config, logger *zap.Logger) *runner {
	summary := &RunSummary{
		RunID:        uuid.NewString(),
		ConfigID:     cfg.ID,
		ProviderType: cfg.ProviderType,
		StartedAt:    time.Now(),
	}
	return &runner{
		cfg:      cfg,
		adapter:  adapter,
		store:    store,
		settings: settings,
		logger: logger.With(
			zap.String("run_id", summary.RunID),
			zap.Uint("config_id", cfg.ID),
			zap.String("provider_type", cfg.ProviderType),
		),
		summary: summary,
	}
}

func (r *runner) transition(next runState) {
	r.logger.Debug("Run state transition",
		zap.Stringer("from", r.state),
		zap.Stringer("to", next),
	)
	r.state = next
}

// run executes the full lifecycle and always returns a summary with a
// terminal status. The key invariant: once enumeration has produced at least
// one record, no single record's failure can abort the run.
func (r *runner) run(ctx context.Context) *RunSummary {
	r.transition(stateAuthenticating)
	bound, err := bind(ctx, r.adapter, r.cfg, r.settings, r.logger)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return r.cancel(ctx)
		}
		return r.abort(ctx, fmt.Sprintf("authentication failed: %v", err))
	}
	r.logger.Info("Authenticated against carrier", zap.Int("attempts", bound.attempts))

	r.transition(stateEnumerating)
	records, err := r.listRecords(ctx, bound.session)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return r.cancel(ctx)
		}
		return r.abort(ctx, fmt.Sprintf("enumeration failed: %v", err))
	}
	r.summary.Total = len(records)
	r.logger.Info("Enumerated remote records", zap.Int("total", len(records)))

	// Probe optional capabilities once per run.
	ticketSyncer, _ := r.adapter.(TicketSyncer)
	pathSyncer, _ := r.adapter.(PathSyncer)
	m := newMatcher(r.store, r.adapter)

	r.transition(stateProcessing)
	for _, rec := range records {
		// Cooperative cancellation between records; partial progress is
		// kept, not silently lost.
		if ctx.Err() != nil {
			return r.cancel(ctx)
		}
		r.processRecord(ctx, bound.session, m, ticketSyncer, pathSyncer, rec)
	}

	r.transition(stateFinalizing)
	status := StatusCompleted
	if r.summary.Failed > 0 {
		status = StatusCompletedWithErrors
	}
	return r.finish(ctx, status, "")
}

// listRecords enumerates the carrier, downgrading partial enumeration to a
// run-level warning: the engine only upserts, so a partial set cannot cause
// delete-by-omission damage.
func (r *runner) listRecords(ctx context.Context, sess Session) ([]RemoteRecord, error) {
	callCtx, cancel := context.WithTimeout(ctx, r.settings.timeout())
	defer cancel()

	records, err := r.adapter.ListRecords(callCtx, sess)
	if err != nil {
		var fetchErr *FetchError
		if errors.As(err, &fetchErr) && fetchErr.Kind == FetchPartial {
			warning := fmt.Sprintf("partial enumeration, proceeding with %d records: %v", len(fetchErr.Records), fetchErr.Err)
			r.summary.Warnings = append(r.summary.Warnings, warning)
			r.logger.Warn("Partial enumeration", zap.Int("records", len(fetchErr.Records)), zap.Error(fetchErr.Err))
			return fetchErr.Records, nil
		}
		return nil, err
	}
	return records, nil
}

// processRecord matches one record and dispatches its sub-syncs. Sub-syncs
// for one record are independent: a cost failure does not block the ticket
// or path sync, and a record counts as failed at most once.
func (r *runner) processRecord(ctx context.Context, sess Session, m *matcher, tickets TicketSyncer, paths PathSyncer, rec RemoteRecord) {
	result, err := m.Match(ctx, r.cfg.ProviderID, rec)
	if err != nil {
		r.summary.Failed++
		r.summary.recordError(fmt.Sprintf("record %s: %v", rec.ExternalID, err))
		return
	}

	switch result.State {
	case MatchUnmatched:
		r.summary.Skipped++
		r.logger.Debug("No local circuit for record", zap.String("external_id", rec.ExternalID))
		return
	case MatchAmbiguous:
		r.summary.Failed++
		r.summary.recordError(fmt.Sprintf("record %s: ambiguous match, multiple local circuits share this carrier id", rec.ExternalID))
		r.logger.Warn("Ambiguous match", zap.String("external_id", rec.ExternalID))
		return
	}
	entity := result.Entity

	detail, err := r.recordDetail(ctx, sess, rec.ExternalID)
	if err != nil {
		r.summary.Failed++
		r.summary.recordError(fmt.Sprintf("record %s: detail fetch failed: %v", rec.ExternalID, err))
		r.logger.Warn("Detail fetch failed", zap.String("external_id", rec.ExternalID), zap.Error(err))
		return
	}

	recordFailed := false

	if _, err := r.subSync(ctx, "cost", func(callCtx context.Context) (bool, error) {
		return r.adapter.SyncCost(callCtx, sess, entity, detail)
	}); err != nil {
		recordFailed = true
		r.summary.recordError(fmt.Sprintf("record %s: cost sync failed: %v", rec.ExternalID, err))
	}

	if tickets != nil {
		if _, err := r.subSync(ctx, "tickets", func(callCtx context.Context) (bool, error) {
			return tickets.SyncTickets(callCtx, sess, entity, detail)
		}); err != nil {
			recordFailed = true
			r.summary.recordError(fmt.Sprintf("record %s: ticket sync failed: %v", rec.ExternalID, err))
		}
	}

	if paths != nil {
		if _, err := r.subSync(ctx, "path", func(callCtx context.Context) (bool, error) {
			return paths.SyncPath(callCtx, sess, entity, detail)
		}); err != nil {
			recordFailed = true
			r.summary.recordError(fmt.Sprintf("record %s: path sync failed: %v", rec.ExternalID, err))
		}
	}

	if recordFailed {
		r.summary.Failed++
	} else {
		r.summary.Synced++
	}
}

func (r *runner) recordDetail(ctx context.Context, sess Session, externalID string) (RemoteRecord, error) {
	callCtx, cancel := context.WithTimeout(ctx, r.settings.timeout())
	defer cancel()
	return r.adapter.RecordDetail(callCtx, sess, externalID)
}

func (r *runner) subSync(ctx context.Context, step string, fn func(context.Context) (bool, error)) (bool, error) {
	callCtx, cancel := context.WithTimeout(ctx, r.settings.timeout())
	defer cancel()

	changed, err := fn(callCtx)
	if err != nil {
		r.logger.Warn("Sub-sync failed", zap.String("step", step), zap.Error(err))
		return false, err
	}
	if changed {
		r.logger.Debug("Sub-sync committed change", zap.String("step", step))
	}
	return changed, nil
}

// abort ends the run with a fatal headline error.
func (r *runner) abort(ctx context.Context, reason string) *RunSummary {
	r.logger.Error("Run aborted", zap.String("reason", reason))
	return r.finish(ctx, StatusAborted, reason)
}

// cancel ends the run cooperatively, preserving the partial summary.
// Cancellation is a non-error terminal state.
func (r *runner) cancel(ctx context.Context) *RunSummary {
	r.logger.Info("Run cancelled",
		zap.Int("synced", r.summary.Synced),
		zap.Int("failed", r.summary.Failed),
	)
	return r.finish(ctx, StatusAborted, "cancelled")
}

// finish stamps the terminal state and persists the outcome. Even aborted
// runs persist, so operators see the most recent attempt rather than a stale
// success. Persistence survives run cancellation via WithoutCancel.
func (r *runner) finish(ctx context.Context, status RunStatus, abortReason string) *RunSummary {
	r.summary.Status = status
	r.summary.Abort = abortReason
	r.summary.FinishedAt = time.Now()

	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.settings.timeout())
	defer cancel()
	if err := r.store.SaveRunOutcome(saveCtx, r.cfg.ID, r.summary); err != nil {
		r.logger.Error("Failed to persist run outcome", zap.Error(err))
	}

	r.logger.Info("Run finished",
		zap.String("status", string(status)),
		zap.Int("total", r.summary.Total),
		zap.Int("synced", r.summary.Synced),
		zap.Int("skipped", r.summary.Skipped),
		zap.Int("failed", r.summary.Failed),
	)
	return r.summary
}
