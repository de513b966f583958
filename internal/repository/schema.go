package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const createCustomersTable = `
CREATE TABLE IF NOT EXISTS customers (
    id        BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    full_name TEXT NOT NULL,
    city      TEXT NOT NULL,
    status    TEXT NOT NULL
)`

var customerIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_customers_city ON customers(city)`,
	`CREATE INDEX IF NOT EXISTS idx_customers_status ON customers(status)`,
}

// SchemaManager creates the customers table and its secondary indexes.
// Every operation is idempotent.
type SchemaManager interface {
	EnsureTable(ctx context.Context) error
	EnsureIndexes(ctx context.Context) error
	ListIndexes(ctx context.Context) ([]string, error)
}

type Schema struct {
	db *sqlx.DB
}

func NewSchema(db *sqlx.DB) *Schema {
	return &Schema{db: db}
}

var _ SchemaManager = (*Schema)(nil)

func (s *Schema) EnsureTable(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createCustomersTable); err != nil {
		return fmt.Errorf("create customers table: %w", err)
	}
	return nil
}

func (s *Schema) EnsureIndexes(ctx context.Context) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, ddl := range customerIndexes {
		if _, err := tx.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return tx.Commit()
}

// ListIndexes returns the names of all indexes on customers, primary key included.
func (s *Schema) ListIndexes(ctx context.Context) ([]string, error) {
	names := []string{}
	err := s.db.SelectContext(ctx, &names, `
		SELECT indexname
		  FROM pg_indexes
		 WHERE schemaname = current_schema()
		   AND tablename = 'customers'
		 ORDER BY indexname
	`)
	if err != nil {
		return nil, fmt.Errorf("list indexes: %w", err)
	}
	return names, nil
}
