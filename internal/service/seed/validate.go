package seed

import (
	"fmt"
	"strings"

	"github.com/jmehdipour/customer-lab/internal/model"
)

const (
	maxBlankReported  = 20
	maxStatusReported = 10
)

// StatusSample is a row whose status is outside the allowed set.
type StatusSample struct {
	Index  int
	Status string
}

func (s StatusSample) String() string {
	return fmt.Sprintf("(%d, %q)", s.Index, s.Status)
}

// ValidationError carries the truncated samples of every domain violation
// found in one pass over the dataset.
type ValidationError struct {
	BlankRows     []int
	InvalidStatus []StatusSample
	// totals before truncation
	BlankTotal  int
	StatusTotal int
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.BlankRows) > 0 {
		parts = append(parts, fmt.Sprintf("DQ failed: blank fields in rows (0-based indexes): %v", e.BlankRows))
	}
	if len(e.InvalidStatus) > 0 {
		parts = append(parts, fmt.Sprintf("DQ failed: invalid status. Allowed=%v. Sample=%v", model.AllowedStatuses, e.InvalidStatus))
	}
	return strings.Join(parts, "; ")
}

// Validate runs the domain pass. It collects every violation instead of
// stopping at the first and returns a *ValidationError when any was found.
func Validate(rows []Row) error {
	var verr ValidationError

	for i, r := range rows {
		name := strings.TrimSpace(r.Name)
		city := strings.TrimSpace(r.City)
		status := strings.TrimSpace(r.Status)

		if name == "" || city == "" || status == "" {
			verr.BlankTotal++
			if len(verr.BlankRows) < maxBlankReported {
				verr.BlankRows = append(verr.BlankRows, i)
			}
		}

		if status == "" {
			continue
		}
		if _, ok := model.ParseStatus(status); !ok {
			verr.StatusTotal++
			if len(verr.InvalidStatus) < maxStatusReported {
				verr.InvalidStatus = append(verr.InvalidStatus, StatusSample{Index: i, Status: r.Status})
			}
		}
	}

	if verr.BlankTotal == 0 && verr.StatusTotal == 0 {
		return nil
	}
	return &verr
}

// Normalize converts validated rows to customers: fields trimmed, status lower-cased.
func Normalize(rows []Row) []model.Customer {
	out := make([]model.Customer, len(rows))
	for i, r := range rows {
		st, _ := model.ParseStatus(r.Status)
		out[i] = model.Customer{
			FullName: strings.TrimSpace(r.Name),
			City:     strings.TrimSpace(r.City),
			Status:   st.String(),
		}
	}
	return out
}
