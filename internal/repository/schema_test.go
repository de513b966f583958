package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaEnsureTable(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewSchema(db)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS customers").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, s.EnsureTable(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchemaEnsureIndexes(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewSchema(db)

	mock.ExpectBegin()
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_customers_city ON customers\\(city\\)").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_customers_status ON customers\\(status\\)").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, s.EnsureIndexes(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchemaListIndexes(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewSchema(db)

	mock.ExpectQuery("SELECT indexname\\s+FROM pg_indexes").
		WillReturnRows(sqlmock.NewRows([]string{"indexname"}).
			AddRow("customers_pkey").
			AddRow("idx_customers_city"))

	names, err := s.ListIndexes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"customers_pkey", "idx_customers_city"}, names)
}
