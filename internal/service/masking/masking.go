// Package masking redacts customer names for display.
package masking

import (
	"strings"
	"unicode/utf8"

	"github.com/jmehdipour/customer-lab/internal/model"
)

const marker = "***"

// Name replaces every whitespace-delimited token of s: a one-character token
// becomes "*", a longer one keeps its first character followed by "***".
// Blank input is returned trimmed (so "" stays "").
func Name(s string) string {
	parts := strings.Fields(s)
	if len(parts) == 0 {
		return strings.TrimSpace(s)
	}

	for i, p := range parts {
		if utf8.RuneCountInString(p) <= 1 {
			parts[i] = "*"
			continue
		}
		_, size := utf8.DecodeRuneInString(p)
		parts[i] = p[:size] + marker
	}
	return strings.Join(parts, " ")
}

// Masker applies Name to customer rows.
//
// Salt is carried from config but the transform does not use it yet; it is
// reserved for a salted-hash scheme and masking stays deterministic.
type Masker struct {
	Salt string
}

func New(salt string) Masker { return Masker{Salt: salt} }

// Customer returns a copy of c with FullName masked.
func (m Masker) Customer(c model.Customer) model.Customer {
	c.FullName = Name(c.FullName)
	return c
}

// Customers masks a copy of rows; the input slice is not modified.
func (m Masker) Customers(rows []model.Customer) []model.Customer {
	out := make([]model.Customer, len(rows))
	for i, c := range rows {
		out[i] = m.Customer(c)
	}
	return out
}
