// Package perf compares the plan of the customers search with and without
// index-based access paths.
package perf

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmehdipour/customer-lab/internal/metrics"
	"github.com/jmehdipour/customer-lab/internal/model"
	"github.com/jmehdipour/customer-lab/internal/repository"
	"github.com/jmehdipour/customer-lab/internal/util"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const explainPrefix = "EXPLAIN (ANALYZE, BUFFERS, FORMAT TEXT) "

const Note = "Create indexes (POST /index) and filter on city/status for clearer differences. " +
	"With very small tables, times may still be close."

// ComparisonRecorder stores finished comparisons. It may be nil.
type ComparisonRecorder interface {
	RecordPerf(ctx context.Context, at time.Time, c model.Comparison) error
}

type Comparator struct {
	db       *sqlx.DB
	schema   repository.SchemaManager
	recorder ComparisonRecorder
	log      *zap.Logger
}

func NewComparator(db *sqlx.DB, schema repository.SchemaManager, recorder ComparisonRecorder, log *zap.Logger) *Comparator {
	return &Comparator{db: db, schema: schema, recorder: recorder, log: log}
}

// Compare runs the search query for f under EXPLAIN ANALYZE twice: first with
// index, bitmap and index-only scans disabled, then with them enabled. Each
// run uses its own connection and transaction. A failed run fails the whole
// comparison; unparsable plan values only degrade to nil.
func (c *Comparator) Compare(ctx context.Context, f model.Filters) (model.Comparison, error) {
	query, args := repository.BuildSearchQuery(f)
	explain := explainPrefix + query

	before, err := c.run(ctx, model.PlanModeBefore, explain, args)
	if err != nil {
		return model.Comparison{}, err
	}
	after, err := c.run(ctx, model.PlanModeAfter, explain, args)
	if err != nil {
		return model.Comparison{}, err
	}

	indexes, err := c.schema.ListIndexes(ctx)
	if err != nil {
		c.log.Warn("list indexes failed", zap.Error(err))
		indexes = []string{}
	}

	cmp := model.Comparison{
		ID:      util.NewID(),
		Filters: f,
		Before:  before,
		After:   after,
		Indexes: indexes,
		Note:    Note,
	}

	if c.recorder != nil {
		if err := c.recorder.RecordPerf(ctx, time.Now(), cmp); err != nil {
			c.log.Warn("record perf comparison failed", zap.String("comparison_id", cmp.ID), zap.Error(err))
		}
	}
	return cmp, nil
}

func (c *Comparator) run(ctx context.Context, mode model.PlanMode, explain string, args []any) (model.PlanResult, error) {
	conn, err := c.db.Connx(ctx)
	if err != nil {
		return model.PlanResult{}, fmt.Errorf("%s: acquire connection: %w", mode, err)
	}
	defer conn.Close()

	scope, err := ApplyPlannerMode(ctx, conn, mode)
	if err != nil {
		return model.PlanResult{}, fmt.Errorf("%s: %w", mode, err)
	}
	defer func() {
		if err := scope.Release(ctx); err != nil {
			c.log.Warn("planner settings not restored, connection discarded",
				zap.String("mode", mode.String()), zap.Error(err))
		}
	}()

	tx, err := conn.BeginTxx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return model.PlanResult{}, fmt.Errorf("%s: begin tx: %w", mode, err)
	}
	// EXPLAIN ANALYZE of a SELECT writes nothing; never commit.
	defer func() { _ = tx.Rollback() }()

	lines := []string{}
	start := time.Now()
	err = tx.SelectContext(ctx, &lines, tx.Rebind(explain), args...)
	elapsed := time.Since(start)
	if err != nil {
		return model.PlanResult{}, fmt.Errorf("%s: explain: %w", mode, err)
	}

	sum := ParsePlan(lines)

	scan := "unknown"
	if sum.ScanTypeHint != nil {
		scan = *sum.ScanTypeHint
	}
	metrics.PerfRunsTotal.WithLabelValues(mode.String(), scan).Inc()
	metrics.PerfWallClock.WithLabelValues(mode.String()).Observe(elapsed.Seconds())

	return model.PlanResult{
		ScanTypeHint:    sum.ScanTypeHint,
		PlanningTimeMs:  sum.PlanningTimeMs,
		ExecutionTimeMs: sum.ExecutionTimeMs,
		WallClockMs:     util.Millis(elapsed),
		Plan:            lines,
	}, nil
}
