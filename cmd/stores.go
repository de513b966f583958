package cmd

import (
	"context"
	"fmt"

	"github.com/jmehdipour/customer-lab/internal/config"
	"github.com/jmehdipour/customer-lab/internal/db"
	"github.com/jmehdipour/customer-lab/internal/repository"
	"github.com/jmoiron/sqlx"
)

func openPostgres(cfg config.Config) (*sqlx.DB, error) {
	pg, err := db.NewPostgresConnection(cfg.Postgres.ConnString(), db.PostgresOpts{
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Postgres.ConnMaxIdleTime,
		PingTimeout:     cfg.Postgres.PingTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}
	return pg, nil
}

// openHistory returns a nil repository (and nil conn) when ClickHouse is not configured.
func openHistory(ctx context.Context, cfg config.Config) (repository.HistoryRepository, *sqlx.DB, error) {
	chDB, err := db.NewClickHouseConnection(db.ClickHouseOpts{
		DSN:             cfg.ClickHouse.DSN,
		MaxOpenConns:    cfg.ClickHouse.MaxOpenConns,
		MaxIdleConns:    cfg.ClickHouse.MaxIdleConns,
		ConnMaxLifetime: cfg.ClickHouse.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.ClickHouse.ConnMaxIdleTime,
		PingTimeout:     cfg.ClickHouse.PingTimeout,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("clickhouse connect: %w", err)
	}
	if chDB == nil {
		return nil, nil, nil
	}

	history := repository.NewHistoryRepository(chDB)
	if err := history.EnsureTables(ctx); err != nil {
		_ = chDB.Close()
		return nil, nil, err
	}
	return history, chDB, nil
}
