package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmehdipour/customer-lab/internal/model"
	"github.com/jmoiron/sqlx"
)

const defaultInsertBatch = 1000

type CustomersRepository interface {
	Search(ctx context.Context, f model.Filters) ([]model.Customer, error)
	// Replace truncates the table (restarting ids) and inserts rows in one transaction.
	Replace(ctx context.Context, rows []model.Customer) (int, error)
	Count(ctx context.Context) (int64, error)
	StatusCounts(ctx context.Context) ([]model.StatusCount, error)
	// TopCity returns nil when the table is empty.
	TopCity(ctx context.Context) (*model.CityCount, error)
}

type CustomersRepositoryImpl struct {
	db        *sqlx.DB
	batchSize int
}

func NewCustomersRepository(db *sqlx.DB, batchSize int) *CustomersRepositoryImpl {
	if batchSize <= 0 {
		batchSize = defaultInsertBatch
	}
	return &CustomersRepositoryImpl{db: db, batchSize: batchSize}
}

var _ CustomersRepository = (*CustomersRepositoryImpl)(nil)

func (r *CustomersRepositoryImpl) Search(ctx context.Context, f model.Filters) ([]model.Customer, error) {
	q, args := BuildSearchQuery(f)

	rows := make([]model.Customer, 0, SearchLimit)
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}
	return rows, nil
}

func (r *CustomersRepositoryImpl) Replace(ctx context.Context, rows []model.Customer) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `TRUNCATE TABLE customers RESTART IDENTITY`); err != nil {
		return 0, fmt.Errorf("truncate customers: %w", err)
	}

	for start := 0; start < len(rows); start += r.batchSize {
		end := min(start+r.batchSize, len(rows))
		if err := r.insertBatch(ctx, tx, rows[start:end]); err != nil {
			return 0, fmt.Errorf("insert customers [%d:%d]: %w", start, end, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit customers: %w", err)
	}
	return len(rows), nil
}

func (r *CustomersRepositoryImpl) insertBatch(ctx context.Context, tx *sqlx.Tx, rows []model.Customer) error {
	if len(rows) == 0 {
		return nil
	}

	var sb strings.Builder
	args := make([]any, 0, len(rows)*3)

	sb.WriteString(`INSERT INTO customers (full_name, city, status) VALUES `)
	for i, c := range rows {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString("(?, ?, ?)")
		args = append(args, c.FullName, c.City, c.Status)
	}

	_, err := tx.ExecContext(ctx, tx.Rebind(sb.String()), args...)
	return err
}

func (r *CustomersRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM customers`); err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return n, nil
}

func (r *CustomersRepositoryImpl) StatusCounts(ctx context.Context) ([]model.StatusCount, error) {
	var out []model.StatusCount
	err := r.db.SelectContext(ctx, &out, `
		SELECT status, COUNT(*) AS c
		  FROM customers
		 GROUP BY status
		 ORDER BY status
	`)
	if err != nil {
		return nil, fmt.Errorf("status distribution: %w", err)
	}
	return out, nil
}

func (r *CustomersRepositoryImpl) TopCity(ctx context.Context) (*model.CityCount, error) {
	var c model.CityCount
	err := r.db.GetContext(ctx, &c, `
		SELECT city, COUNT(*) AS c
		  FROM customers
		 GROUP BY city
		 ORDER BY c DESC, city ASC
		 LIMIT 1
	`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("top city: %w", err)
	}
	return &c, nil
}
