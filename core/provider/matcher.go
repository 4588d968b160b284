package provider

import (
	"context"
	"fmt"
)

// MatchState is the tri-state outcome of resolving a remote record to a
// local circuit.
type MatchState int

const (
	// MatchUnmatched means no local circuit corresponds to the record.
	// The record is skipped; this is not an error.
	MatchUnmatched MatchState = iota
	// MatchMatched means exactly one local circuit matched.
	MatchMatched
	// MatchAmbiguous means more than one local candidate matched. Treated
	// as a failure, recorded and skipped.
	MatchAmbiguous
)

// MatchResult carries the state and, for MatchMatched, the matched entity.
type MatchResult struct {
	State  MatchState
	Entity LocalEntity
}

// matcher resolves remote records to local circuits. The default policy is
// exact equality of the record's external id and the circuit's carrier
// circuit-id, scoped to the provider. Adapters implementing RecordMatcher
// replace the policy entirely. Matching never creates circuits; entity
// creation is an administrative action outside the engine.
type matcher struct {
	store    Store
	override RecordMatcher
}

// newMatcher probes the adapter for the optional matching override.
func newMatcher(store Store, adapter Adapter) *matcher {
	m := &matcher{store: store}
	if rm, ok := adapter.(RecordMatcher); ok {
		m.override = rm
	}
	return m
}

// Match resolves one record. Lookup errors are returned as errors, distinct
// from "no candidate found": collapsing them would hide a real failure mode.
func (m *matcher) Match(ctx context.Context, providerID uint, rec RemoteRecord) (MatchResult, error) {
	if m.override != nil {
		entity, err := m.override.MatchRecord(ctx, rec)
		if err != nil {
			return MatchResult{}, fmt.Errorf("adapter match failed: %w", err)
		}
		if entity == nil {
			return MatchResult{State: MatchUnmatched}, nil
		}
		return MatchResult{State: MatchMatched, Entity: *entity}, nil
	}

	if rec.ExternalID == "" {
		return MatchResult{State: MatchUnmatched}, nil
	}

	candidates, err := m.store.FindCircuitsByProviderCID(ctx, providerID, rec.ExternalID)
	if err != nil {
		return MatchResult{}, fmt.Errorf("circuit lookup failed: %w", err)
	}

	switch len(candidates) {
	case 0:
		return MatchResult{State: MatchUnmatched}, nil
	case 1:
		return MatchResult{State: MatchMatched, Entity: candidates[0]}, nil
	default:
		return MatchResult{State: MatchAmbiguous}, nil
	}
}
