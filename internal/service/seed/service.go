// Package seed replaces the customers table with the contents of the dataset file.
package seed

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/jmehdipour/customer-lab/internal/metrics"
	"github.com/jmehdipour/customer-lab/internal/model"
	"github.com/jmehdipour/customer-lab/internal/repository"
	"github.com/jmehdipour/customer-lab/internal/util"
	"go.uber.org/zap"
)

// EventPublisher announces a completed reload. It may be nil.
type EventPublisher interface {
	PublishDatasetEvent(ctx context.Context, ev model.DatasetEvent) error
}

type Service struct {
	customers repository.CustomersRepository
	schema    repository.SchemaManager
	events    EventPublisher
	dataFile  string
	log       *zap.Logger
}

func New(
	customers repository.CustomersRepository,
	schema repository.SchemaManager,
	events EventPublisher,
	dataFile string,
	log *zap.Logger,
) *Service {
	return &Service{
		customers: customers,
		schema:    schema,
		events:    events,
		dataFile:  dataFile,
		log:       log,
	}
}

// Source is the dataset file name reported to callers.
func (s *Service) Source() string { return filepath.Base(s.dataFile) }

// Reload loads and validates the dataset, then replaces the table contents in
// one transaction. Nothing is written unless both validation passes succeed.
func (s *Service) Reload(ctx context.Context) (int, error) {
	if err := s.schema.EnsureTable(ctx); err != nil {
		return 0, err
	}

	rows, err := LoadFile(s.dataFile)
	if err != nil {
		metrics.SeedsTotal.WithLabelValues("invalid").Inc()
		return 0, err
	}
	if err := Validate(rows); err != nil {
		metrics.SeedsTotal.WithLabelValues("invalid").Inc()
		return 0, err
	}

	inserted, err := s.customers.Replace(ctx, Normalize(rows))
	if err != nil {
		metrics.SeedsTotal.WithLabelValues("failed").Inc()
		return 0, fmt.Errorf("replace customers: %w", err)
	}
	metrics.SeedsTotal.WithLabelValues("ok").Inc()
	metrics.SeededRows.Set(float64(inserted))

	s.log.Info("customers reloaded", zap.Int("rows", inserted), zap.String("source", s.dataFile))
	s.announce(ctx, inserted)

	return inserted, nil
}

// announce publishes the reload event; the reload already committed, so a
// publish failure is only logged.
func (s *Service) announce(ctx context.Context, inserted int) {
	if s.events == nil {
		return
	}
	ev := model.DatasetEvent{
		ID:         util.NewID(),
		Type:       model.EventSeeded,
		Rows:       inserted,
		Source:     s.Source(),
		OccurredAt: time.Now().UTC(),
	}
	if err := s.events.PublishDatasetEvent(ctx, ev); err != nil {
		s.log.Warn("publish dataset event failed", zap.String("event_id", ev.ID), zap.Error(err))
	}
}
