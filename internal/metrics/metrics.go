package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SeedsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "customerlab_seeds_total",
			Help: "Dataset reload attempts by outcome",
		},
		[]string{"result"}, // ok|invalid|failed
	)

	SeededRows = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "customerlab_seeded_rows",
			Help: "Rows inserted by the last successful reload",
		},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "customerlab_search_duration_seconds",
			Help:    "Customer search latency (execute + fetch)",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
		},
		[]string{"masked"},
	)

	PerfRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "customerlab_perf_runs_total",
			Help: "EXPLAIN ANALYZE runs by planner mode and detected scan type",
		},
		[]string{"mode", "scan"}, // before|after , Seq Scan|Bitmap Scan|Index Scan|unknown
	)

	PerfWallClock = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "customerlab_perf_wall_clock_seconds",
			Help:    "Wall clock of EXPLAIN ANALYZE execute + fetch",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
		},
		[]string{"mode"},
	)

	DQChecksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "customerlab_dq_checks_total",
			Help: "Data-quality analyses by outcome",
		},
		[]string{"result"}, // passed|warned|error
	)
)

func MustRegister(r prometheus.Registerer) {
	r.MustRegister(
		SeedsTotal,
		SeededRows,
		SearchDuration,
		PerfRunsTotal,
		PerfWallClock,
		DQChecksTotal,
	)
}
