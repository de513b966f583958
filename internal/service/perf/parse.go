package perf

import (
	"strconv"
	"strings"
)

// Scan-type hints, in detection priority order.
const (
	HintSeqScan    = "Seq Scan"
	HintBitmapScan = "Bitmap Scan"
	HintIndexScan  = "Index Scan"
)

// scanRules are checked in order against each line; the first rule that
// matches any line fixes the hint for the whole plan.
var scanRules = []struct {
	marker string
	hint   string
}{
	{marker: "Seq Scan", hint: HintSeqScan},
	{marker: "Bitmap", hint: HintBitmapScan},
	{marker: "Index Scan", hint: HintIndexScan},
}

// timingFields are the labelled numeric trailers of EXPLAIN ANALYZE output.
var timingFields = []struct {
	label string
	field func(*PlanSummary) **float64
}{
	{label: "Planning Time:", field: func(s *PlanSummary) **float64 { return &s.PlanningTimeMs }},
	{label: "Execution Time:", field: func(s *PlanSummary) **float64 { return &s.ExecutionTimeMs }},
}

// PlanSummary holds what could be extracted from a text plan. A nil field
// means the plan did not contain a parsable value for it.
type PlanSummary struct {
	ScanTypeHint    *string
	PlanningTimeMs  *float64
	ExecutionTimeMs *float64
}

// ParsePlan extracts the scan-type hint and timing values from EXPLAIN
// (FORMAT TEXT) lines. It never fails: malformed values are left nil.
func ParsePlan(lines []string) PlanSummary {
	var s PlanSummary
	for _, ln := range lines {
		if s.ScanTypeHint == nil {
			s.ScanTypeHint = detectScan(ln)
		}
		for _, tf := range timingFields {
			if v, ok := labelledFloat(ln, tf.label); ok {
				*tf.field(&s) = &v
			}
		}
	}
	return s
}

func detectScan(line string) *string {
	for _, r := range scanRules {
		if strings.Contains(line, r.marker) {
			hint := r.hint
			return &hint
		}
	}
	return nil
}

// labelledFloat parses the first token after label, e.g. "Planning Time: 0.123 ms".
func labelledFloat(line, label string) (float64, bool) {
	_, rest, found := strings.Cut(line, label)
	if !found {
		return 0, false
	}
	tok, _, _ := strings.Cut(strings.TrimSpace(rest), " ")
	if tok == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
