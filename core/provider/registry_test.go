package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func mockFactory(deps Deps) Adapter {
	return &mockAdapter{}
}

// TestRegistry_DuplicateKey tests that a second registration under the same
// key fails instead of silently replacing the first.
func TestRegistry_DuplicateKey(t *testing.T) {
	reg := NewRegistry()

	err := reg.Register("lumen", mockFactory)
	assert.NoError(t, err)

	err = reg.Register("lumen", mockFactory)
	assert.ErrorIs(t, err, ErrDuplicateKey)

	// First binding survives.
	_, ok := reg.Get("lumen")
	assert.True(t, ok)
}

func TestRegistry_GetMiss(t *testing.T) {
	reg := NewRegistry()

	_, ok := reg.Get("nonexistent")
	assert.False(t, ok)
}

// TestRegistry_Unregister tests that an unregistered key can be bound again.
func TestRegistry_Unregister(t *testing.T) {
	reg := NewRegistry()

	assert.NoError(t, reg.Register("lumen", mockFactory))
	reg.Unregister("lumen")

	_, ok := reg.Get("lumen")
	assert.False(t, ok)

	assert.NoError(t, reg.Register("lumen", mockFactory))
}

// TestRegistry_KeysSorted tests that Keys returns a deterministic ordering
// regardless of registration order.
func TestRegistry_KeysSorted(t *testing.T) {
	reg := NewRegistry()

	assert.NoError(t, reg.Register("zayo", mockFactory))
	assert.NoError(t, reg.Register("att", mockFactory))
	assert.NoError(t, reg.Register("lumen", mockFactory))

	assert.Equal(t, []string{"att", "lumen", "zayo"}, reg.Keys())
}
