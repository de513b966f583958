package model

// PlanMode selects the planner configuration a comparison run uses.
type PlanMode string

const (
	// PlanModeBefore disables index, bitmap and index-only scans.
	PlanModeBefore PlanMode = "before"
	// PlanModeAfter re-enables them and lets the planner choose.
	PlanModeAfter PlanMode = "after"
)

func (m PlanMode) String() string { return string(m) }

// PlanResult is the outcome of one EXPLAIN ANALYZE run.
// Parsed fields stay nil when the plan text did not yield them.
type PlanResult struct {
	ScanTypeHint    *string  `json:"scan_type_hint"`
	PlanningTimeMs  *float64 `json:"planning_time_ms"`
	ExecutionTimeMs *float64 `json:"execution_time_ms"`
	WallClockMs     float64  `json:"wall_clock_ms"`
	Plan            []string `json:"plan"`
}

// Comparison is the before/after result returned by GET /perf.
type Comparison struct {
	ID      string     `json:"id,omitempty"`
	Filters Filters    `json:"filters"`
	Before  PlanResult `json:"before"`
	After   PlanResult `json:"after"`
	Indexes []string   `json:"indexes"`
	Note    string     `json:"note"`
}
