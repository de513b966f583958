package model

import "time"

// CityShare is the most frequent city and its share of all rows.
type CityShare struct {
	City       string  `json:"city"`
	Percentage float64 `json:"percentage"`
}

// Report is the data-quality snapshot of the customers table.
// TopCity is left nil (and omitted) when the table is empty.
type Report struct {
	ID                 string             `json:"id,omitempty"`
	RowCount           int64              `json:"row_count"`
	StatusDistribution map[string]float64 `json:"status_distribution"`
	TopCity            *CityShare         `json:"top_city,omitempty"`
	Warnings           []string           `json:"warnings"`
	Passed             bool               `json:"passed"`
	GeneratedAt        time.Time          `json:"generated_at"`
}

// StatusCount is one row of the status aggregation.
type StatusCount struct {
	Status string `db:"status"`
	Count  int64  `db:"c"`
}

// CityCount is one row of the city aggregation.
type CityCount struct {
	City  string `db:"city"`
	Count int64  `db:"c"`
}
