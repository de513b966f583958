package model

import "strings"

// Customer is the only persisted entity: one row of the customers table.
type Customer struct {
	ID       int64  `db:"id"        json:"id"`
	FullName string `db:"full_name" json:"full_name"`
	City     string `db:"city"      json:"city"`
	Status   string `db:"status"    json:"status"` // active|inactive
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) String() string { return string(s) }

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// AllowedStatuses is sorted; it is used verbatim in validation messages.
var AllowedStatuses = []Status{StatusActive, StatusInactive}

// ParseStatus normalizes input (trim + lower-case).
// Returns (value, true) if valid; otherwise (normalized input, false).
func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	return st, st.Valid()
}
