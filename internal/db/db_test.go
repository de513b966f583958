package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalStoresDisabledWithoutAddress(t *testing.T) {
	ch, err := NewClickHouseConnection(ClickHouseOpts{})
	require.NoError(t, err)
	assert.Nil(t, ch)

	rds, err := NewRedisClient(RedisOpts{})
	require.NoError(t, err)
	assert.Nil(t, rds)
}

func TestPostgresRequiresDSN(t *testing.T) {
	_, err := NewPostgresConnection("", PostgresOpts{})
	assert.Error(t, err)
}
