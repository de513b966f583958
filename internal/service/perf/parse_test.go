package perf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlan(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		wantScan string // "" means nil
		wantPlan *float64
		wantExec *float64
	}{
		{
			name: "seq scan with timings",
			lines: []string{
				"Limit  (cost=0.00..1.62 rows=50 width=40) (actual time=0.010..0.020 rows=50 loops=1)",
				"  ->  Seq Scan on customers  (cost=0.00..22.70 rows=6 width=40) (actual time=0.009..0.015 rows=50 loops=1)",
				"        Filter: (city = 'Austin'::text)",
				"Planning Time: 0.081 ms",
				"Execution Time: 0.035 ms",
			},
			wantScan: HintSeqScan,
			wantPlan: f64(0.081),
			wantExec: f64(0.035),
		},
		{
			name: "bitmap heap scan",
			lines: []string{
				"Limit  (cost=4.20..8.52 rows=1 width=40)",
				"  ->  Sort  (cost=4.20..4.21 rows=1 width=40)",
				"        ->  Bitmap Heap Scan on customers  (cost=4.18..8.19 rows=1 width=40)",
				"              ->  Bitmap Index Scan on idx_customers_city  (cost=0.00..4.18 rows=2 width=0)",
				"Planning Time: 1.5 ms",
			},
			wantScan: HintBitmapScan,
			wantPlan: f64(1.5),
		},
		{
			name: "index scan",
			lines: []string{
				"Limit  (cost=0.15..8.17 rows=1 width=40)",
				"  ->  Index Scan using customers_pkey on customers  (cost=0.15..8.17 rows=1 width=40)",
				"Execution Time: 12 ms",
			},
			wantScan: HintIndexScan,
			wantExec: f64(12),
		},
		{
			name: "first match wins across lines",
			lines: []string{
				"  ->  Index Scan using customers_pkey on customers",
				"  ->  Seq Scan on customers",
			},
			wantScan: HintIndexScan,
		},
		{
			name: "priority within a line",
			lines: []string{
				"Seq Scan mentioning Bitmap and Index Scan",
			},
			wantScan: HintSeqScan,
		},
		{
			name: "index only scan is not an index scan hint",
			lines: []string{
				"  ->  Index Only Scan using idx_customers_city on customers",
			},
		},
		{
			name: "unparsable timings stay nil",
			lines: []string{
				"Planning Time: fast",
				"Execution Time:",
			},
		},
		{
			name: "last valid timing wins and bad ones do not clobber it",
			lines: []string{
				"Planning Time: 0.5 ms",
				"Planning Time: 0.7 ms",
				"Planning Time: n/a",
			},
			wantPlan: f64(0.7),
		},
		{
			name: "empty plan",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePlan(tt.lines)

			if tt.wantScan == "" {
				assert.Nil(t, got.ScanTypeHint)
			} else {
				require.NotNil(t, got.ScanTypeHint)
				assert.Equal(t, tt.wantScan, *got.ScanTypeHint)
			}
			assert.Equal(t, tt.wantPlan, got.PlanningTimeMs)
			assert.Equal(t, tt.wantExec, got.ExecutionTimeMs)
		})
	}
}

func f64(v float64) *float64 { return &v }
