package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToFloat(t *testing.T) {
	assert.Equal(t, 1250.50, ToFloat(1250.50))
	assert.Equal(t, 1250.50, ToFloat("1250.50"))
	assert.Equal(t, 42.0, ToFloat(42))
	assert.Equal(t, 0.0, ToFloat("not a number"))
	assert.Equal(t, 0.0, ToFloat(nil))
}

func TestToString(t *testing.T) {
	assert.Equal(t, "CID-1", ToString("CID-1"))
	assert.Equal(t, "CID-1", ToString([]byte("CID-1")))
	assert.Equal(t, "42", ToString(42))
	assert.Equal(t, "", ToString(nil))
}

func TestToInt(t *testing.T) {
	assert.Equal(t, 42, ToInt(42))
	assert.Equal(t, 42, ToInt("42"))
	assert.Equal(t, 42, ToInt(42.9))
	assert.Equal(t, 0, ToInt("garbage"))
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool(true))
	assert.True(t, ToBool(1))
	assert.True(t, ToBool("true"))
	assert.True(t, ToBool("1"))
	assert.False(t, ToBool(0))
	assert.False(t, ToBool("no"))
}
