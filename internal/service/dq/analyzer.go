// Package dq computes the data-quality report of the customers table from
// aggregate queries only.
package dq

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jmehdipour/customer-lab/internal/metrics"
	"github.com/jmehdipour/customer-lab/internal/model"
	"github.com/jmehdipour/customer-lab/internal/repository"
	"github.com/jmehdipour/customer-lab/internal/util"
	"go.uber.org/zap"
)

const (
	// StatusSkewPct is the share above which a single status is suspicious.
	StatusSkewPct = 95.0
	// CityConcentrationPct is the share above which the top city is flagged.
	CityConcentrationPct = 80.0
)

// ReportRecorder stores finished reports. It may be nil.
type ReportRecorder interface {
	RecordReport(ctx context.Context, r model.Report) error
}

type Analyzer struct {
	customers repository.CustomersRepository
	recorder  ReportRecorder
	log       *zap.Logger
	now       func() time.Time
}

func NewAnalyzer(customers repository.CustomersRepository, recorder ReportRecorder, log *zap.Logger) *Analyzer {
	return &Analyzer{
		customers: customers,
		recorder:  recorder,
		log:       log,
		now:       time.Now,
	}
}

// Analyze runs a single fail-fast pass: row count, status distribution, top
// city. Passed is true only when no warning was produced.
func (a *Analyzer) Analyze(ctx context.Context) (model.Report, error) {
	rep, err := a.analyze(ctx)
	if err != nil {
		metrics.DQChecksTotal.WithLabelValues("error").Inc()
		return model.Report{}, err
	}

	if rep.Passed {
		metrics.DQChecksTotal.WithLabelValues("passed").Inc()
	} else {
		metrics.DQChecksTotal.WithLabelValues("warned").Inc()
	}

	if a.recorder != nil {
		if err := a.recorder.RecordReport(ctx, rep); err != nil {
			a.log.Warn("record dq report failed", zap.String("report_id", rep.ID), zap.Error(err))
		}
	}
	return rep, nil
}

func (a *Analyzer) analyze(ctx context.Context) (model.Report, error) {
	rep := model.Report{
		ID:                 util.NewID(),
		StatusDistribution: map[string]float64{},
		Warnings:           []string{},
		GeneratedAt:        a.now().UTC(),
	}

	total, err := a.customers.Count(ctx)
	if err != nil {
		return model.Report{}, err
	}
	rep.RowCount = total

	if total == 0 {
		rep.Warnings = append(rep.Warnings, "Table is empty.")
		rep.Passed = false
		return rep, nil
	}

	statuses, err := a.customers.StatusCounts(ctx)
	if err != nil {
		return model.Report{}, err
	}
	for _, s := range statuses {
		pct := Percent(s.Count, total)
		rep.StatusDistribution[s.Status] = pct
		if pct > StatusSkewPct {
			rep.Warnings = append(rep.Warnings,
				fmt.Sprintf("Status '%s' dominates dataset (%.2f%%). Possible pipeline issue.", s.Status, pct))
		}
	}

	top, err := a.customers.TopCity(ctx)
	if err != nil {
		return model.Report{}, err
	}
	if top != nil {
		pct := Percent(top.Count, total)
		rep.TopCity = &model.CityShare{City: top.City, Percentage: pct}
		if pct > CityConcentrationPct {
			rep.Warnings = append(rep.Warnings,
				fmt.Sprintf("City '%s' holds %.2f%% of records.", top.City, pct))
		}
	}

	rep.Passed = len(rep.Warnings) == 0
	return rep, nil
}

// Percent returns part/total as a percentage rounded to 2 decimals.
func Percent(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*100*100) / 100
}
