package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmehdipour/customer-lab/internal/model"
	"github.com/jmoiron/sqlx"
)

var historyDDL = []string{
	`CREATE DATABASE IF NOT EXISTS customerlab`,
	`CREATE TABLE IF NOT EXISTS customerlab.perf_runs (
		id                  String,
		created_at          DateTime64(3, 'UTC'),
		city                Nullable(String),
		status              Nullable(String),
		name                Nullable(String),
		before_scan         Nullable(String),
		before_planning_ms  Nullable(Float64),
		before_execution_ms Nullable(Float64),
		before_wall_ms      Float64,
		after_scan          Nullable(String),
		after_planning_ms   Nullable(Float64),
		after_execution_ms  Nullable(Float64),
		after_wall_ms       Float64
	) ENGINE = MergeTree ORDER BY (created_at, id)`,
	`CREATE TABLE IF NOT EXISTS customerlab.dq_reports (
		id           String,
		created_at   DateTime64(3, 'UTC'),
		row_count    Int64,
		top_city     Nullable(String),
		top_city_pct Nullable(Float64),
		warnings     Array(String),
		passed       Bool
	) ENGINE = MergeTree ORDER BY (created_at, id)`,
}

// PerfRun is one recorded before/after comparison (flattened).
type PerfRun struct {
	ID                string    `db:"id"                  json:"id"`
	CreatedAt         time.Time `db:"created_at"          json:"created_at"`
	City              *string   `db:"city"                json:"city"`
	Status            *string   `db:"status"              json:"status"`
	Name              *string   `db:"name"                json:"name"`
	BeforeScan        *string   `db:"before_scan"         json:"before_scan"`
	BeforePlanningMs  *float64  `db:"before_planning_ms"  json:"before_planning_ms"`
	BeforeExecutionMs *float64  `db:"before_execution_ms" json:"before_execution_ms"`
	BeforeWallMs      float64   `db:"before_wall_ms"      json:"before_wall_ms"`
	AfterScan         *string   `db:"after_scan"          json:"after_scan"`
	AfterPlanningMs   *float64  `db:"after_planning_ms"   json:"after_planning_ms"`
	AfterExecutionMs  *float64  `db:"after_execution_ms"  json:"after_execution_ms"`
	AfterWallMs       float64   `db:"after_wall_ms"       json:"after_wall_ms"`
}

// ReportRun is one recorded data-quality report.
type ReportRun struct {
	ID         string    `db:"id"           json:"id"`
	CreatedAt  time.Time `db:"created_at"   json:"created_at"`
	RowCount   int64     `db:"row_count"    json:"row_count"`
	TopCity    *string   `db:"top_city"     json:"top_city"`
	TopCityPct *float64  `db:"top_city_pct" json:"top_city_pct"`
	Warnings   []string  `db:"warnings"     json:"warnings"`
	Passed     bool      `db:"passed"       json:"passed"`
}

// HistoryRepository keeps perf comparisons and dq reports in ClickHouse.
type HistoryRepository interface {
	EnsureTables(ctx context.Context) error
	RecordPerf(ctx context.Context, at time.Time, c model.Comparison) error
	RecordReport(ctx context.Context, r model.Report) error
	ListPerf(ctx context.Context, limit int) ([]PerfRun, error)
	ListReports(ctx context.Context, limit int) ([]ReportRun, error)
}

type historyRepository struct {
	ch *sqlx.DB // ClickHouse connection
}

func NewHistoryRepository(ch *sqlx.DB) HistoryRepository {
	return &historyRepository{ch: ch}
}

func (r *historyRepository) EnsureTables(ctx context.Context) error {
	for _, ddl := range historyDDL {
		if _, err := r.ch.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("clickhouse ddl: %w", err)
		}
	}
	return nil
}

// insert runs a single-row batch; clickhouse-go sends the block on Commit.
func (r *historyRepository) insert(ctx context.Context, q string, args ...any) error {
	tx, err := r.ch.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return err
	}
	defer stmt.Close()

	if _, err := stmt.ExecContext(ctx, args...); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *historyRepository) RecordPerf(ctx context.Context, at time.Time, c model.Comparison) error {
	const q = `
		INSERT INTO customerlab.perf_runs
		    (id, created_at, city, status, name,
		     before_scan, before_planning_ms, before_execution_ms, before_wall_ms,
		     after_scan, after_planning_ms, after_execution_ms, after_wall_ms)
	`
	err := r.insert(ctx, q,
		c.ID, at.UTC(), c.Filters.City, c.Filters.Status, c.Filters.Name,
		c.Before.ScanTypeHint, c.Before.PlanningTimeMs, c.Before.ExecutionTimeMs, c.Before.WallClockMs,
		c.After.ScanTypeHint, c.After.PlanningTimeMs, c.After.ExecutionTimeMs, c.After.WallClockMs,
	)
	if err != nil {
		return fmt.Errorf("record perf run: %w", err)
	}
	return nil
}

func (r *historyRepository) RecordReport(ctx context.Context, rep model.Report) error {
	const q = `
		INSERT INTO customerlab.dq_reports
		    (id, created_at, row_count, top_city, top_city_pct, warnings, passed)
	`
	var (
		city *string
		pct  *float64
	)
	if rep.TopCity != nil {
		city, pct = &rep.TopCity.City, &rep.TopCity.Percentage
	}
	warnings := rep.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	err := r.insert(ctx, q, rep.ID, rep.GeneratedAt.UTC(), rep.RowCount, city, pct, warnings, rep.Passed)
	if err != nil {
		return fmt.Errorf("record dq report: %w", err)
	}
	return nil
}

// HistoryLimit maps a requested page size onto 1..500, defaulting to 50.
func HistoryLimit(limit int) int {
	if limit <= 0 || limit > 500 {
		return 50
	}
	return limit
}

func (r *historyRepository) ListPerf(ctx context.Context, limit int) ([]PerfRun, error) {
	out := []PerfRun{}
	err := r.ch.SelectContext(ctx, &out, `
		SELECT id, created_at, city, status, name,
		       before_scan, before_planning_ms, before_execution_ms, before_wall_ms,
		       after_scan, after_planning_ms, after_execution_ms, after_wall_ms
		FROM customerlab.perf_runs
		ORDER BY created_at DESC
		LIMIT ?
	`, HistoryLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list perf runs: %w", err)
	}
	return out, nil
}

func (r *historyRepository) ListReports(ctx context.Context, limit int) ([]ReportRun, error) {
	out := []ReportRun{}
	err := r.ch.SelectContext(ctx, &out, `
		SELECT id, created_at, row_count, top_city, top_city_pct, warnings, passed
		FROM customerlab.dq_reports
		ORDER BY created_at DESC
		LIMIT ?
	`, HistoryLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list dq reports: %w", err)
	}
	return out, nil
}
