// Package search runs the bounded customers search.
package search

import (
	"context"
	"strconv"
	"time"

	"github.com/jmehdipour/customer-lab/internal/metrics"
	"github.com/jmehdipour/customer-lab/internal/model"
	"github.com/jmehdipour/customer-lab/internal/repository"
	"github.com/jmehdipour/customer-lab/internal/service/masking"
	"github.com/jmehdipour/customer-lab/internal/util"
)

// Result is what GET /search returns.
type Result struct {
	Filters     model.Filters    `json:"filters"`
	Masked      bool             `json:"masked"`
	QueryTimeMs float64          `json:"query_time_ms"`
	Results     []model.Customer `json:"results"`
}

type Service struct {
	customers repository.CustomersRepository
	masker    masking.Masker
}

func New(customers repository.CustomersRepository, masker masking.Masker) *Service {
	return &Service{customers: customers, masker: masker}
}

// Search returns at most repository.SearchLimit rows ordered by id. When mask
// is set the names in the returned copy are redacted; stored data is untouched.
func (s *Service) Search(ctx context.Context, f model.Filters, mask bool) (Result, error) {
	start := time.Now()
	rows, err := s.customers.Search(ctx, f)
	elapsed := time.Since(start)
	if err != nil {
		return Result{}, err
	}
	metrics.SearchDuration.WithLabelValues(strconv.FormatBool(mask)).Observe(elapsed.Seconds())

	if rows == nil {
		rows = []model.Customer{}
	}
	if mask {
		rows = s.masker.Customers(rows)
	}

	return Result{
		Filters:     f,
		Masked:      mask,
		QueryTimeMs: util.Millis(elapsed),
		Results:     rows,
	}, nil
}
