package model

import "strings"

// Filters are the optional search constraints shared by search and perf.
// A nil field was not supplied by the caller; it is echoed back as null.
type Filters struct {
	City   *string `json:"city"`
	Status *string `json:"status"`
	Name   *string `json:"name"`
}

// Value returns *f, or "" when the filter is absent.
func Value(f *string) string {
	if f == nil {
		return ""
	}
	return *f
}

// Active reports whether the filter constrains the query (present and non-empty).
func Active(f *string) bool {
	return f != nil && strings.TrimSpace(*f) != ""
}
