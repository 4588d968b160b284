package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestEngine(t *testing.T, store *fakeStore, adapter Adapter) *Engine {
	t.Helper()
	reg := NewRegistry()
	assert.NoError(t, reg.Register("mock", func(deps Deps) Adapter { return adapter }))
	return NewEngineWithRegistry(reg, store, zap.NewNop(), testSettings())
}

// TestRunOne_AllSynced tests the happy path: every record matches and syncs.
func TestRunOne_AllSynced(t *testing.T) {
	store := &fakeStore{}
	adapter := &mockAdapter{
		listFunc: func(ctx context.Context, sess Session) ([]RemoteRecord, error) {
			return records("A", "B", "C"), nil
		},
	}
	engine := newTestEngine(t, store, adapter)

	summary, err := engine.RunOne(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, StatusCompleted, summary.Status)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 3, summary.Synced)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, 0, summary.Failed)
	assert.Empty(t, summary.Errors)

	// Terminal state is persisted exactly once.
	saved := store.savedSummaries()
	assert.Len(t, saved, 1)
	assert.Equal(t, summary, saved[0])
}

// TestRunOne_RecordFailureIsolation tests that one failing record cannot
// abort the run or block the remaining records.
func TestRunOne_RecordFailureIsolation(t *testing.T) {
	store := &fakeStore{}
	adapter := &mockAdapter{
		listFunc: func(ctx context.Context, sess Session) ([]RemoteRecord, error) {
			return records("R1", "R2", "R3", "R4", "R5"), nil
		},
		costFunc: func(ctx context.Context, sess Session, entity LocalEntity, rec RemoteRecord) (bool, error) {
			if rec.ExternalID == "R3" {
				return false, &SyncError{Kind: SyncStorage, Step: "cost", Err: fmt.Errorf("deadlock")}
			}
			return true, nil
		},
	}
	engine := newTestEngine(t, store, adapter)

	summary, err := engine.RunOne(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, StatusCompletedWithErrors, summary.Status)
	assert.Equal(t, 5, summary.Total)
	assert.Equal(t, 4, summary.Synced)
	assert.Equal(t, 1, summary.Failed)
	assert.Len(t, summary.Errors, 1)
	assert.Contains(t, summary.Errors[0], "R3")
}

// TestRunOne_MixedOutcomes tests the synced/skipped/failed bookkeeping across
// matched, unmatched and ambiguous records.
func TestRunOne_MixedOutcomes(t *testing.T) {
	store := &fakeStore{
		findFunc: func(ctx context.Context, providerID uint, externalID string) ([]LocalEntity, error) {
			switch externalID {
			case "matched":
				return []LocalEntity{{ID: 1, ProviderID: providerID, CID: externalID}}, nil
			case "ambiguous":
				return []LocalEntity{
					{ID: 2, ProviderID: providerID, CID: externalID},
					{ID: 3, ProviderID: providerID, CID: externalID},
				}, nil
			default:
				return nil, nil
			}
		},
	}
	adapter := &mockAdapter{
		listFunc: func(ctx context.Context, sess Session) ([]RemoteRecord, error) {
			return records("matched", "unmatched", "ambiguous"), nil
		},
	}
	engine := newTestEngine(t, store, adapter)

	summary, err := engine.RunOne(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, StatusCompletedWithErrors, summary.Status)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.Synced)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 1, summary.Failed)
	assert.Len(t, summary.Errors, 1)
	assert.Contains(t, summary.Errors[0], "ambiguous")
}

// TestRunOne_AuthInvalidFailsFast tests that rejected credentials abort
// immediately, with no retry and no storage writes beyond the outcome.
func TestRunOne_AuthInvalidFailsFast(t *testing.T) {
	authCalls := 0
	store := &fakeStore{}
	adapter := &mockAdapter{
		authFunc: func(ctx context.Context, cfg APIConfig) (Session, error) {
			authCalls++
			return nil, &AuthError{Kind: AuthInvalid, Err: fmt.Errorf("401 unauthorized")}
		},
	}
	engine := newTestEngine(t, store, adapter)

	summary, err := engine.RunOne(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, StatusAborted, summary.Status)
	assert.Contains(t, summary.Abort, "authentication failed")
	assert.Equal(t, 1, authCalls)

	cost, ticket, path := store.mutationCalls()
	assert.Zero(t, cost)
	assert.Zero(t, ticket)
	assert.Zero(t, path)

	// The aborted outcome is still persisted.
	assert.Len(t, store.savedSummaries(), 1)
}

// TestRunOne_AuthNetworkRetries tests that transient network auth failures
// are retried and the run proceeds once authentication succeeds.
func TestRunOne_AuthNetworkRetries(t *testing.T) {
	authCalls := 0
	store := &fakeStore{}
	adapter := &mockAdapter{
		authFunc: func(ctx context.Context, cfg APIConfig) (Session, error) {
			authCalls++
			if authCalls < 3 {
				return nil, &AuthError{Kind: AuthNetwork, Err: fmt.Errorf("connection reset")}
			}
			return "token", nil
		},
		listFunc: func(ctx context.Context, sess Session) ([]RemoteRecord, error) {
			return records("A"), nil
		},
	}
	engine := newTestEngine(t, store, adapter)

	summary, err := engine.RunOne(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, StatusCompleted, summary.Status)
	assert.Equal(t, 3, authCalls)
}

// TestRunOne_AuthNetworkExhausted tests that the retry budget is bounded.
func TestRunOne_AuthNetworkExhausted(t *testing.T) {
	authCalls := 0
	store := &fakeStore{}
	adapter := &mockAdapter{
		authFunc: func(ctx context.Context, cfg APIConfig) (Session, error) {
			authCalls++
			return nil, &AuthError{Kind: AuthNetwork, Err: fmt.Errorf("connection reset")}
		},
	}
	engine := newTestEngine(t, store, adapter)

	summary, err := engine.RunOne(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, StatusAborted, summary.Status)
	assert.Equal(t, testSettings().AuthRetries, authCalls)
}

// TestRunOne_EnumerationFailureAborts tests that a total enumeration failure
// ends the run before any record work.
func TestRunOne_EnumerationFailureAborts(t *testing.T) {
	store := &fakeStore{}
	adapter := &mockAdapter{
		listFunc: func(ctx context.Context, sess Session) ([]RemoteRecord, error) {
			return nil, &FetchError{Kind: FetchTotal, Err: fmt.Errorf("503 service unavailable")}
		},
	}
	engine := newTestEngine(t, store, adapter)

	summary, err := engine.RunOne(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, StatusAborted, summary.Status)
	assert.Contains(t, summary.Abort, "enumeration failed")

	cost, _, _ := store.mutationCalls()
	assert.Zero(t, cost)
}

// TestRunOne_PartialEnumerationProceeds tests that a mid-enumeration failure
// downgrades to a warning and the run continues with what was fetched.
func TestRunOne_PartialEnumerationProceeds(t *testing.T) {
	store := &fakeStore{}
	adapter := &mockAdapter{
		listFunc: func(ctx context.Context, sess Session) ([]RemoteRecord, error) {
			return nil, &FetchError{
				Kind:    FetchPartial,
				Records: records("A", "B"),
				Err:     fmt.Errorf("timeout on page 3"),
			}
		},
	}
	engine := newTestEngine(t, store, adapter)

	summary, err := engine.RunOne(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, StatusCompleted, summary.Status)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 2, summary.Synced)
	assert.Len(t, summary.Warnings, 1)
	assert.Contains(t, summary.Warnings[0], "partial enumeration")
}

// TestRunOne_ErrorCap tests that Failed keeps counting past the message cap
// while the error list stops growing.
func TestRunOne_ErrorCap(t *testing.T) {
	store := &fakeStore{}
	adapter := &mockAdapter{
		listFunc: func(ctx context.Context, sess Session) ([]RemoteRecord, error) {
			ids := make([]string, 150)
			for i := range ids {
				ids[i] = fmt.Sprintf("R%03d", i)
			}
			return records(ids...), nil
		},
		costFunc: func(ctx context.Context, sess Session, entity LocalEntity, rec RemoteRecord) (bool, error) {
			return false, &SyncError{Kind: SyncValidation, Step: "cost", Err: fmt.Errorf("bad payload")}
		},
	}
	engine := newTestEngine(t, store, adapter)

	summary, err := engine.RunOne(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 150, summary.Failed)
	assert.True(t, summary.ErrorsTruncated)
	// Cap plus the single truncation marker.
	assert.Len(t, summary.Errors, MaxRecordErrors+1)
	assert.Contains(t, summary.Errors[MaxRecordErrors], "omitted")
}

// TestRunOne_DetailFetchFailure tests that a failed detail fetch fails only
// that record.
func TestRunOne_DetailFetchFailure(t *testing.T) {
	store := &fakeStore{}
	adapter := &mockAdapter{
		listFunc: func(ctx context.Context, sess Session) ([]RemoteRecord, error) {
			return records("A", "B"), nil
		},
		detailFunc: func(ctx context.Context, sess Session, externalID string) (RemoteRecord, error) {
			if externalID == "A" {
				return RemoteRecord{}, &FetchError{Kind: FetchNetwork, Err: fmt.Errorf("timeout")}
			}
			return RemoteRecord{ExternalID: externalID}, nil
		},
	}
	engine := newTestEngine(t, store, adapter)

	summary, err := engine.RunOne(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, summary.Synced)
	assert.Equal(t, 1, summary.Failed)
	assert.Contains(t, summary.Errors[0], "detail fetch failed")
}

// TestRunOne_SubSyncIndependence tests that a cost failure does not block the
// ticket sync for the same record, and that the record is counted failed once.
func TestRunOne_SubSyncIndependence(t *testing.T) {
	ticketCalls := 0
	store := &fakeStore{}
	adapter := &ticketAdapter{
		mockAdapter: &mockAdapter{
			listFunc: func(ctx context.Context, sess Session) ([]RemoteRecord, error) {
				return records("A"), nil
			},
			costFunc: func(ctx context.Context, sess Session, entity LocalEntity, rec RemoteRecord) (bool, error) {
				return false, &SyncError{Kind: SyncStorage, Step: "cost", Err: fmt.Errorf("constraint violation")}
			},
		},
		ticketsFunc: func(ctx context.Context, sess Session, entity LocalEntity, rec RemoteRecord) (bool, error) {
			ticketCalls++
			return true, nil
		},
	}
	engine := newTestEngine(t, store, adapter)

	summary, err := engine.RunOne(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, ticketCalls)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 0, summary.Synced)
}

// TestRunOne_RecordFailsOnce tests that multiple sub-sync failures on one
// record still count it as a single failure.
func TestRunOne_RecordFailsOnce(t *testing.T) {
	store := &fakeStore{}
	adapter := &ticketAdapter{
		mockAdapter: &mockAdapter{
			listFunc: func(ctx context.Context, sess Session) ([]RemoteRecord, error) {
				return records("A"), nil
			},
			costFunc: func(ctx context.Context, sess Session, entity LocalEntity, rec RemoteRecord) (bool, error) {
				return false, &SyncError{Kind: SyncStorage, Step: "cost", Err: fmt.Errorf("write failed")}
			},
		},
		ticketsFunc: func(ctx context.Context, sess Session, entity LocalEntity, rec RemoteRecord) (bool, error) {
			return false, &SyncError{Kind: SyncNetwork, Step: "tickets", Err: fmt.Errorf("timeout")}
		},
	}
	engine := newTestEngine(t, store, adapter)

	summary, err := engine.RunOne(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, summary.Failed)
	// Both failures are recorded even though the record counts once.
	assert.Len(t, summary.Errors, 2)
}

// TestRunOne_OptionalCapabilityAbsent tests that a cost-only adapter runs
// without the engine attempting ticket or path syncs.
func TestRunOne_OptionalCapabilityAbsent(t *testing.T) {
	store := &fakeStore{}
	adapter := &mockAdapter{
		listFunc: func(ctx context.Context, sess Session) ([]RemoteRecord, error) {
			return records("A", "B"), nil
		},
	}
	engine := newTestEngine(t, store, adapter)

	summary, err := engine.RunOne(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, StatusCompleted, summary.Status)
	assert.Equal(t, 2, summary.Synced)
}

// TestRunOne_Cancellation tests that cancelling mid-run preserves partial
// progress and still persists the outcome.
func TestRunOne_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := &fakeStore{}
	adapter := &mockAdapter{
		listFunc: func(lctx context.Context, sess Session) ([]RemoteRecord, error) {
			return records("A", "B", "C"), nil
		},
		costFunc: func(cctx context.Context, sess Session, entity LocalEntity, rec RemoteRecord) (bool, error) {
			if rec.ExternalID == "A" {
				cancel()
			}
			return true, nil
		},
	}
	engine := newTestEngine(t, store, adapter)

	summary, err := engine.RunOne(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, StatusAborted, summary.Status)
	assert.Equal(t, "cancelled", summary.Abort)
	assert.Equal(t, 1, summary.Synced)

	// Persistence survives the cancelled context.
	assert.Len(t, store.savedSummaries(), 1)
}

// TestRunOne_UnknownProviderType tests that a configuration pointing at an
// unregistered adapter aborts with a persisted outcome.
func TestRunOne_UnknownProviderType(t *testing.T) {
	store := &fakeStore{
		getFunc: func(ctx context.Context, id uint) (*APIConfig, error) {
			cfg := testConfig(id)
			cfg.ProviderType = "ghost"
			return &cfg, nil
		},
	}
	engine := newTestEngine(t, store, &mockAdapter{})

	summary, err := engine.RunOne(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, StatusAborted, summary.Status)
	assert.Contains(t, summary.Abort, `"ghost"`)
	assert.Len(t, store.savedSummaries(), 1)
}

// TestRunOne_ConfigNotFound tests that a missing configuration surfaces the
// store error.
func TestRunOne_ConfigNotFound(t *testing.T) {
	store := &fakeStore{
		getFunc: func(ctx context.Context, id uint) (*APIConfig, error) {
			return nil, ErrConfigNotFound
		},
	}
	engine := newTestEngine(t, store, &mockAdapter{})

	_, err := engine.RunOne(context.Background(), 404)
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

// TestRunOne_ConcurrentRejected tests that a second invocation against a
// running configuration is rejected, not queued.
func TestRunOne_ConcurrentRejected(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once

	store := &fakeStore{}
	adapter := &mockAdapter{
		listFunc: func(ctx context.Context, sess Session) ([]RemoteRecord, error) {
			once.Do(func() {
				close(started)
				<-release
			})
			return nil, nil
		},
	}
	engine := newTestEngine(t, store, adapter)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := engine.RunOne(context.Background(), 1)
		assert.NoError(t, err)
	}()

	<-started
	_, err := engine.RunOne(context.Background(), 1)
	assert.ErrorIs(t, err, ErrRunInProgress)

	close(release)
	wg.Wait()

	// After the first run releases the lock, the configuration runs again.
	_, err = engine.RunOne(context.Background(), 1)
	assert.NoError(t, err)
}

// TestRunOne_CredentialsNeverExposed tests that key and secret never leak
// into the persisted summary, even on failure paths.
func TestRunOne_CredentialsNeverExposed(t *testing.T) {
	store := &fakeStore{}
	adapter := &mockAdapter{
		authFunc: func(ctx context.Context, cfg APIConfig) (Session, error) {
			return nil, &AuthError{Kind: AuthInvalid, Err: fmt.Errorf("401 unauthorized")}
		},
	}
	engine := newTestEngine(t, store, adapter)

	summary, err := engine.RunOne(context.Background(), 1)
	assert.NoError(t, err)

	encoded, err := json.Marshal(summary)
	assert.NoError(t, err)
	cfg := testConfig(1)
	assert.False(t, strings.Contains(string(encoded), cfg.APIKey))
	assert.False(t, strings.Contains(string(encoded), cfg.APISecret))
	assert.NotContains(t, summary.Message(), cfg.APIKey)
	assert.NotContains(t, summary.Message(), cfg.APISecret)
}

// TestRunTest_Success tests that a connection test authenticates only and
// persists nothing.
func TestRunTest_Success(t *testing.T) {
	listCalls := 0
	store := &fakeStore{}
	adapter := &mockAdapter{
		listFunc: func(ctx context.Context, sess Session) ([]RemoteRecord, error) {
			listCalls++
			return records("A"), nil
		},
	}
	engine := newTestEngine(t, store, adapter)

	result, err := engine.RunTest(context.Background(), 1)
	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.GreaterOrEqual(t, result.ResponseTime, time.Duration(0))

	// Authentication only: no enumeration, no persisted outcome.
	assert.Zero(t, listCalls)
	assert.Empty(t, store.savedSummaries())
}

// TestRunTest_Failure tests that a failed test reports the failure without
// exposing credentials.
func TestRunTest_Failure(t *testing.T) {
	store := &fakeStore{}
	adapter := &mockAdapter{
		authFunc: func(ctx context.Context, cfg APIConfig) (Session, error) {
			return nil, &AuthError{Kind: AuthInvalid, Err: fmt.Errorf("401 unauthorized")}
		},
	}
	engine := newTestEngine(t, store, adapter)

	result, err := engine.RunTest(context.Background(), 1)
	assert.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "connection failed")

	cfg := testConfig(1)
	assert.NotContains(t, result.Message, cfg.APIKey)
	assert.NotContains(t, result.Message, cfg.APISecret)
	assert.Empty(t, store.savedSummaries())
}

// TestRunTest_UnknownProviderType tests the test path for an unregistered
// adapter key.
func TestRunTest_UnknownProviderType(t *testing.T) {
	store := &fakeStore{
		getFunc: func(ctx context.Context, id uint) (*APIConfig, error) {
			cfg := testConfig(id)
			cfg.ProviderType = "ghost"
			return &cfg, nil
		},
	}
	engine := newTestEngine(t, store, &mockAdapter{})

	result, err := engine.RunTest(context.Background(), 1)
	assert.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "not found in registry")
}

// TestRunDue_Selection tests that bulk runs pick exactly the enabled, due
// configurations.
func TestRunDue_Selection(t *testing.T) {
	recent := time.Now().Add(-time.Minute)
	stale := time.Now().Add(-2 * time.Hour)

	neverRun := testConfig(1)
	notDue := testConfig(2)
	notDue.LastRun = &recent
	disabled := testConfig(3)
	disabled.Enabled = false
	overdue := testConfig(4)
	overdue.LastRun = &stale

	store := &fakeStore{
		listFunc: func(ctx context.Context) ([]APIConfig, error) {
			return []APIConfig{neverRun, notDue, disabled, overdue}, nil
		},
	}
	adapter := &mockAdapter{
		listFunc: func(ctx context.Context, sess Session) ([]RemoteRecord, error) {
			return records("A"), nil
		},
	}
	engine := newTestEngine(t, store, adapter)

	out, err := engine.RunDue(context.Background())
	assert.NoError(t, err)

	ran := make(map[uint]bool)
	for summary := range out {
		ran[summary.ConfigID] = true
	}
	assert.Len(t, ran, 2)
	assert.True(t, ran[1], "never-run configuration must be due")
	assert.True(t, ran[4], "overdue configuration must be due")
	assert.False(t, ran[2], "recently run configuration must not be due")
	assert.False(t, ran[3], "disabled configuration must never run")
}

// TestRunDue_SkipsLocked tests that a configuration already running is
// skipped by the bulk pass instead of waiting.
func TestRunDue_SkipsLocked(t *testing.T) {
	cfg := testConfig(1)
	store := &fakeStore{
		listFunc: func(ctx context.Context) ([]APIConfig, error) {
			return []APIConfig{cfg}, nil
		},
	}
	engine := newTestEngine(t, store, &mockAdapter{})

	assert.True(t, engine.locks.acquire(cfg.ID))
	defer engine.locks.release(cfg.ID)

	out, err := engine.RunDue(context.Background())
	assert.NoError(t, err)

	var got []*RunSummary
	for summary := range out {
		got = append(got, summary)
	}
	assert.Empty(t, got)
}

// TestRunDue_PersistsUnknownType tests that a due configuration with an
// unregistered adapter key still gets a persisted aborted outcome.
func TestRunDue_PersistsUnknownType(t *testing.T) {
	cfg := testConfig(1)
	cfg.ProviderType = "ghost"
	store := &fakeStore{
		listFunc: func(ctx context.Context) ([]APIConfig, error) {
			return []APIConfig{cfg}, nil
		},
	}
	engine := newTestEngine(t, store, &mockAdapter{})

	out, err := engine.RunDue(context.Background())
	assert.NoError(t, err)

	var got []*RunSummary
	for summary := range out {
		got = append(got, summary)
	}
	assert.Len(t, got, 1)
	assert.Equal(t, StatusAborted, got[0].Status)
	assert.Len(t, store.savedSummaries(), 1)
}

// TestRunDue_CancelledCallerDropsSummaries tests that when the caller cancels
// instead of draining the channel, the run outcome is still persisted and the
// discarded summary is logged, and the channel still closes.
func TestRunDue_CancelledCallerDropsSummaries(t *testing.T) {
	cfg := testConfig(1)
	store := &fakeStore{
		listFunc: func(ctx context.Context) ([]APIConfig, error) {
			return []APIConfig{cfg}, nil
		},
	}
	logCore, logs := observer.New(zap.DebugLevel)
	reg := NewRegistry()
	assert.NoError(t, reg.Register("mock", func(deps Deps) Adapter { return &mockAdapter{} }))
	engine := NewEngineWithRegistry(reg, store, zap.New(logCore), testSettings())

	ctx, cancel := context.WithCancel(context.Background())
	out, err := engine.RunDue(ctx)
	assert.NoError(t, err)
	cancel()

	// Nothing reads from the channel, so the worker's send can only resolve
	// through the cancelled context.
	assert.Eventually(t, func() bool {
		return logs.FilterMessage("Dropping run summary, caller stopped draining").Len() == 1
	}, time.Second, 10*time.Millisecond)

	for range out {
	}
	assert.Len(t, store.savedSummaries(), 1)
}
