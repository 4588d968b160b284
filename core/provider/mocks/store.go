package mocks

import (
	"context"

	"circuit-manager/core/provider"

	"github.com/stretchr/testify/mock"
)

// Store is a mock implementation of provider.Store
type Store struct {
	mock.Mock
}

func (m *Store) FindCircuitsByProviderCID(ctx context.Context, providerID uint, externalID string) ([]provider.LocalEntity, error) {
	args := m.Called(ctx, providerID, externalID)
	if entities, ok := args.Get(0).([]provider.LocalEntity); ok {
		return entities, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) UpsertCost(ctx context.Context, entity provider.LocalEntity, fields provider.CostFields) (bool, error) {
	args := m.Called(ctx, entity, fields)
	return args.Bool(0), args.Error(1)
}

func (m *Store) UpsertTicket(ctx context.Context, entity provider.LocalEntity, fields provider.TicketFields) (bool, error) {
	args := m.Called(ctx, entity, fields)
	return args.Bool(0), args.Error(1)
}

func (m *Store) UpsertPath(ctx context.Context, entity provider.LocalEntity, payload []byte) (bool, error) {
	args := m.Called(ctx, entity, payload)
	return args.Bool(0), args.Error(1)
}

func (m *Store) GetAPIConfig(ctx context.Context, id uint) (*provider.APIConfig, error) {
	args := m.Called(ctx, id)
	if cfg, ok := args.Get(0).(*provider.APIConfig); ok {
		return cfg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) ListAPIConfigs(ctx context.Context) ([]provider.APIConfig, error) {
	args := m.Called(ctx)
	if configs, ok := args.Get(0).([]provider.APIConfig); ok {
		return configs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) SaveRunOutcome(ctx context.Context, configID uint, summary *provider.RunSummary) error {
	args := m.Called(ctx, configID, summary)
	return args.Error(0)
}
