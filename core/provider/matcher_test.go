package provider

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestMatch_SingleCandidate tests that exactly one candidate yields a match.
func TestMatch_SingleCandidate(t *testing.T) {
	store := &fakeStore{
		findFunc: func(ctx context.Context, providerID uint, externalID string) ([]LocalEntity, error) {
			return []LocalEntity{{ID: 42, ProviderID: providerID, CID: externalID}}, nil
		},
	}
	m := newMatcher(store, &mockAdapter{})

	result, err := m.Match(context.Background(), 10, RemoteRecord{ExternalID: "CID-001"})
	assert.NoError(t, err)
	assert.Equal(t, MatchMatched, result.State)
	assert.Equal(t, uint(42), result.Entity.ID)
}

// TestMatch_Deterministic tests that the same input always resolves to the
// same entity.
func TestMatch_Deterministic(t *testing.T) {
	store := &fakeStore{
		findFunc: func(ctx context.Context, providerID uint, externalID string) ([]LocalEntity, error) {
			return []LocalEntity{{ID: 7, ProviderID: providerID, CID: externalID}}, nil
		},
	}
	m := newMatcher(store, &mockAdapter{})
	rec := RemoteRecord{ExternalID: "CID-007"}

	first, err := m.Match(context.Background(), 10, rec)
	assert.NoError(t, err)
	second, err := m.Match(context.Background(), 10, rec)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

// TestMatch_NoCandidates tests that an unknown carrier id is unmatched, not
// an error.
func TestMatch_NoCandidates(t *testing.T) {
	store := &fakeStore{
		findFunc: func(ctx context.Context, providerID uint, externalID string) ([]LocalEntity, error) {
			return nil, nil
		},
	}
	m := newMatcher(store, &mockAdapter{})

	result, err := m.Match(context.Background(), 10, RemoteRecord{ExternalID: "CID-404"})
	assert.NoError(t, err)
	assert.Equal(t, MatchUnmatched, result.State)
}

// TestMatch_EmptyExternalID tests that a record without a carrier id can
// never match.
func TestMatch_EmptyExternalID(t *testing.T) {
	store := &fakeStore{
		findFunc: func(ctx context.Context, providerID uint, externalID string) ([]LocalEntity, error) {
			t.Fatal("lookup must not run for an empty external id")
			return nil, nil
		},
	}
	m := newMatcher(store, &mockAdapter{})

	result, err := m.Match(context.Background(), 10, RemoteRecord{})
	assert.NoError(t, err)
	assert.Equal(t, MatchUnmatched, result.State)
}

// TestMatch_Ambiguous tests that two circuits sharing a carrier id are
// reported as ambiguous rather than picking one arbitrarily.
func TestMatch_Ambiguous(t *testing.T) {
	store := &fakeStore{
		findFunc: func(ctx context.Context, providerID uint, externalID string) ([]LocalEntity, error) {
			return []LocalEntity{
				{ID: 1, ProviderID: providerID, CID: externalID},
				{ID: 2, ProviderID: providerID, CID: externalID},
			}, nil
		},
	}
	m := newMatcher(store, &mockAdapter{})

	result, err := m.Match(context.Background(), 10, RemoteRecord{ExternalID: "CID-DUP"})
	assert.NoError(t, err)
	assert.Equal(t, MatchAmbiguous, result.State)
}

// TestMatch_LookupError tests that a failed lookup surfaces as an error,
// distinct from the unmatched state.
func TestMatch_LookupError(t *testing.T) {
	store := &fakeStore{
		findFunc: func(ctx context.Context, providerID uint, externalID string) ([]LocalEntity, error) {
			return nil, fmt.Errorf("connection refused")
		},
	}
	m := newMatcher(store, &mockAdapter{})

	_, err := m.Match(context.Background(), 10, RemoteRecord{ExternalID: "CID-001"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "circuit lookup failed")
}

// TestMatch_AdapterOverride tests that an adapter-supplied matching policy
// replaces the default entirely.
func TestMatch_AdapterOverride(t *testing.T) {
	store := &fakeStore{
		findFunc: func(ctx context.Context, providerID uint, externalID string) ([]LocalEntity, error) {
			t.Fatal("default lookup must not run when the adapter overrides matching")
			return nil, nil
		},
	}

	adapter := &overrideAdapter{
		mockAdapter: &mockAdapter{},
		matchFunc: func(ctx context.Context, rec RemoteRecord) (*LocalEntity, error) {
			if rec.ExternalID == "known" {
				return &LocalEntity{ID: 99, CID: "known"}, nil
			}
			return nil, nil
		},
	}
	m := newMatcher(store, adapter)

	result, err := m.Match(context.Background(), 10, RemoteRecord{ExternalID: "known"})
	assert.NoError(t, err)
	assert.Equal(t, MatchMatched, result.State)
	assert.Equal(t, uint(99), result.Entity.ID)

	result, err = m.Match(context.Background(), 10, RemoteRecord{ExternalID: "unknown"})
	assert.NoError(t, err)
	assert.Equal(t, MatchUnmatched, result.State)
}
