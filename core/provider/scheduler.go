package provider

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// lockTable enforces at-most-one run per configuration. A busy configuration
// rejects concurrent invocations rather than queueing them.
type lockTable struct {
	mu     sync.Mutex
	active map[uint]struct{}
}

func newLockTable() *lockTable {
	return &lockTable{active: make(map[uint]struct{})}
}

func (t *lockTable) acquire(id uint) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, running := t.active[id]; running {
		return false
	}
	t.active[id] = struct{}{}
	return true
}

func (t *lockTable) release(id uint) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.active, id)
}

// Engine is the invocation surface over the run orchestrator. It resolves
// adapters through a registry, enforces per-configuration mutual exclusion
// and schedules bulk runs over a bounded worker pool.
type Engine struct {
	registry *Registry
	store    Store
	settings Config
	logger   *zap.Logger
	locks    *lockTable
}

// NewEngine creates an engine backed by the default registry.
func NewEngine(store Store, logger *zap.Logger, settings Config) *Engine {
	return NewEngineWithRegistry(defaultRegistry, store, logger, settings)
}

// NewEngineWithRegistry creates an engine with an explicit registry.
// Tests use this to register throwaway adapters without touching process
// state.
func NewEngineWithRegistry(registry *Registry, store Store, logger *zap.Logger, settings Config) *Engine {
	return &Engine{
		registry: registry,
		store:    store,
		settings: settings,
		logger:   logger,
		locks:    newLockTable(),
	}
}

// RunTest runs a configuration through authentication only and reports the
// outcome. Nothing is persisted; the result is ephemeral.
func (e *Engine) RunTest(ctx context.Context, configID uint) (*TestResult, error) {
	cfg, err := e.store.GetAPIConfig(ctx, configID)
	if err != nil {
		return nil, err
	}

	factory, ok := e.registry.Get(cfg.ProviderType)
	if !ok {
		return &TestResult{
			Success: false,
			Message: fmt.Sprintf("provider type %q not found in registry", cfg.ProviderType),
		}, nil
	}
	adapter := factory(Deps{Store: e.store, Logger: e.logger})

	start := time.Now()
	if _, err := bind(ctx, adapter, *cfg, e.settings, e.logger); err != nil {
		return &TestResult{
			Success:      false,
			Message:      fmt.Sprintf("connection failed: %v", err),
			ResponseTime: time.Since(start),
		}, nil
	}

	return &TestResult{
		Success:      true,
		Message:      "connection successful",
		ResponseTime: time.Since(start),
	}, nil
}

// RunOne performs a full run for one configuration, regardless of its
// enabled flag or interval: an explicit invocation is an operator override.
// It returns ErrRunInProgress if the configuration is already running.
func (e *Engine) RunOne(ctx context.Context, configID uint) (*RunSummary, error) {
	cfg, err := e.store.GetAPIConfig(ctx, configID)
	if err != nil {
		return nil, err
	}

	if !e.locks.acquire(cfg.ID) {
		return nil, fmt.Errorf("%w (config %d)", ErrRunInProgress, cfg.ID)
	}
	defer e.locks.release(cfg.ID)

	return e.runLocked(ctx, *cfg), nil
}

// RunDue runs every enabled configuration whose interval has elapsed (or
// that has never run), each as an independent full run over a bounded worker
// pool. Summaries stream on the returned channel as runs finish; the channel
// closes when the batch is done.
func (e *Engine) RunDue(ctx context.Context) (<-chan *RunSummary, error) {
	configs, err := e.store.ListAPIConfigs(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var due []APIConfig
	for _, cfg := range configs {
		if cfg.Due(now) {
			due = append(due, cfg)
		}
	}
	e.logger.Info("Scheduling due configurations",
		zap.Int("total", len(configs)),
		zap.Int("due", len(due)),
	)

	out := make(chan *RunSummary)
	go func() {
		defer close(out)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(e.settings.workers())

		for _, cfg := range due {
			cfg := cfg
			g.Go(func() error {
				if !e.locks.acquire(cfg.ID) {
					e.logger.Warn("Skipping configuration, run already in progress", zap.Uint("config_id", cfg.ID))
					return nil
				}
				defer e.locks.release(cfg.ID)

				summary := e.runLocked(gctx, cfg)
				select {
				case out <- summary:
				case <-ctx.Done():
					// The outcome is already persisted; only the caller's
					// view of it is lost.
					e.logger.Debug("Dropping run summary, caller stopped draining",
						zap.Uint("config_id", cfg.ID),
						zap.String("status", string(summary.Status)),
					)
				}
				return nil
			})
		}
		_ = g.Wait()
	}()

	return out, nil
}

// runLocked executes one run with the configuration lock already held.
// An unknown provider-type key aborts immediately, but the outcome is still
// persisted: a failed run never leaves the last-run fields unset.
func (e *Engine) runLocked(ctx context.Context, cfg APIConfig) *RunSummary {
	factory, ok := e.registry.Get(cfg.ProviderType)
	if !ok {
		cfgErr := &ConfigError{Reason: fmt.Sprintf("provider type %q not found in registry", cfg.ProviderType)}
		summary := &RunSummary{
			RunID:        uuid.NewString(),
			ConfigID:     cfg.ID,
			ProviderType: cfg.ProviderType,
			StartedAt:    time.Now(),
			FinishedAt:   time.Now(),
			Status:       StatusAborted,
			Abort:        cfgErr.Error(),
		}
		e.logger.Error("Run aborted before start", zap.Uint("config_id", cfg.ID), zap.Error(cfgErr))
		if err := e.store.SaveRunOutcome(context.WithoutCancel(ctx), cfg.ID, summary); err != nil {
			e.logger.Error("Failed to persist run outcome", zap.Error(err))
		}
		return summary
	}

	adapter := factory(Deps{Store: e.store, Logger: e.logger})
	return newRunner(cfg, adapter, e.store, e.settings, e.logger).run(ctx)
}
