package provider

import (
	"context"
	"sync"
	"time"
)

// mockAdapter is a simple test adapter with overridable behavior per call.
type mockAdapter struct {
	authFunc   func(ctx context.Context, cfg APIConfig) (Session, error)
	listFunc   func(ctx context.Context, sess Session) ([]RemoteRecord, error)
	detailFunc func(ctx context.Context, sess Session, externalID string) (RemoteRecord, error)
	costFunc   func(ctx context.Context, sess Session, entity LocalEntity, rec RemoteRecord) (bool, error)
}

func (m *mockAdapter) Name() string {
	return "mock"
}

func (m *mockAdapter) Authenticate(ctx context.Context, cfg APIConfig) (Session, error) {
	if m.authFunc != nil {
		return m.authFunc(ctx, cfg)
	}
	return "session-token", nil
}

func (m *mockAdapter) ListRecords(ctx context.Context, sess Session) ([]RemoteRecord, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, sess)
	}
	return nil, nil
}

func (m *mockAdapter) RecordDetail(ctx context.Context, sess Session, externalID string) (RemoteRecord, error) {
	if m.detailFunc != nil {
		return m.detailFunc(ctx, sess, externalID)
	}
	return RemoteRecord{ExternalID: externalID}, nil
}

func (m *mockAdapter) SyncCost(ctx context.Context, sess Session, entity LocalEntity, rec RemoteRecord) (bool, error) {
	if m.costFunc != nil {
		return m.costFunc(ctx, sess, entity, rec)
	}
	return true, nil
}

// ticketAdapter adds the optional ticket capability on top of mockAdapter.
type ticketAdapter struct {
	*mockAdapter
	ticketsFunc func(ctx context.Context, sess Session, entity LocalEntity, rec RemoteRecord) (bool, error)
}

func (m *ticketAdapter) SyncTickets(ctx context.Context, sess Session, entity LocalEntity, rec RemoteRecord) (bool, error) {
	if m.ticketsFunc != nil {
		return m.ticketsFunc(ctx, sess, entity, rec)
	}
	return true, nil
}

// overrideAdapter adds a custom matching policy on top of mockAdapter.
type overrideAdapter struct {
	*mockAdapter
	matchFunc func(ctx context.Context, rec RemoteRecord) (*LocalEntity, error)
}

func (m *overrideAdapter) MatchRecord(ctx context.Context, rec RemoteRecord) (*LocalEntity, error) {
	return m.matchFunc(ctx, rec)
}

// fakeStore is an in-memory Store with overridable behavior and call counters.
type fakeStore struct {
	mu sync.Mutex

	findFunc   func(ctx context.Context, providerID uint, externalID string) ([]LocalEntity, error)
	costFunc   func(ctx context.Context, entity LocalEntity, fields CostFields) (bool, error)
	ticketFunc func(ctx context.Context, entity LocalEntity, fields TicketFields) (bool, error)
	pathFunc   func(ctx context.Context, entity LocalEntity, payload []byte) (bool, error)
	getFunc    func(ctx context.Context, id uint) (*APIConfig, error)
	listFunc   func(ctx context.Context) ([]APIConfig, error)
	saveFunc   func(ctx context.Context, configID uint, summary *RunSummary) error

	costCalls   int
	ticketCalls int
	pathCalls   int
	saved       []*RunSummary
}

func (s *fakeStore) FindCircuitsByProviderCID(ctx context.Context, providerID uint, externalID string) ([]LocalEntity, error) {
	if s.findFunc != nil {
		return s.findFunc(ctx, providerID, externalID)
	}
	return []LocalEntity{{ID: 1, ProviderID: providerID, CID: externalID}}, nil
}

func (s *fakeStore) UpsertCost(ctx context.Context, entity LocalEntity, fields CostFields) (bool, error) {
	s.mu.Lock()
	s.costCalls++
	s.mu.Unlock()
	if s.costFunc != nil {
		return s.costFunc(ctx, entity, fields)
	}
	return true, nil
}

func (s *fakeStore) UpsertTicket(ctx context.Context, entity LocalEntity, fields TicketFields) (bool, error) {
	s.mu.Lock()
	s.ticketCalls++
	s.mu.Unlock()
	if s.ticketFunc != nil {
		return s.ticketFunc(ctx, entity, fields)
	}
	return true, nil
}

func (s *fakeStore) UpsertPath(ctx context.Context, entity LocalEntity, payload []byte) (bool, error) {
	s.mu.Lock()
	s.pathCalls++
	s.mu.Unlock()
	if s.pathFunc != nil {
		return s.pathFunc(ctx, entity, payload)
	}
	return true, nil
}

func (s *fakeStore) GetAPIConfig(ctx context.Context, id uint) (*APIConfig, error) {
	if s.getFunc != nil {
		return s.getFunc(ctx, id)
	}
	cfg := testConfig(id)
	return &cfg, nil
}

func (s *fakeStore) ListAPIConfigs(ctx context.Context) ([]APIConfig, error) {
	if s.listFunc != nil {
		return s.listFunc(ctx)
	}
	return nil, nil
}

func (s *fakeStore) SaveRunOutcome(ctx context.Context, configID uint, summary *RunSummary) error {
	s.mu.Lock()
	s.saved = append(s.saved, summary)
	s.mu.Unlock()
	if s.saveFunc != nil {
		return s.saveFunc(ctx, configID, summary)
	}
	return nil
}

func (s *fakeStore) savedSummaries() []*RunSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*RunSummary, len(s.saved))
	copy(out, s.saved)
	return out
}

func (s *fakeStore) mutationCalls() (cost, ticket, path int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.costCalls, s.ticketCalls, s.pathCalls
}

func testConfig(id uint) APIConfig {
	return APIConfig{
		ID:           id,
		ProviderID:   10,
		ProviderName: "Test Carrier",
		ProviderType: "mock",
		Endpoint:     "https://api.example.com",
		APIKey:       "test-key-aa11",
		APISecret:    "test-secret-bb22",
		Enabled:      true,
		Interval:     time.Hour,
	}
}

func testSettings() Config {
	return Config{
		Workers:        2,
		TimeoutSeconds: 5,
		AuthRetries:    3,
		authBackoff:    time.Millisecond,
	}
}

func records(ids ...string) []RemoteRecord {
	out := make([]RemoteRecord, 0, len(ids))
	for _, id := range ids {
		out = append(out, RemoteRecord{ExternalID: id})
	}
	return out
}
