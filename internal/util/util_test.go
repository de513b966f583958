package util

import (
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMillis(t *testing.T) {
	assert.Equal(t, 1.235, Millis(1234567*time.Nanosecond))
	assert.Equal(t, 0.0, Millis(0))
	assert.Equal(t, 2000.0, Millis(2*time.Second))
}

func TestNewIDIsMonotonic(t *testing.T) {
	a, b := NewID(), NewID()

	_, err := ulid.ParseStrict(a)
	require.NoError(t, err)
	assert.Less(t, a, b)
}
