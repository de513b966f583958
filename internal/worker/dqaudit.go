package worker

import (
	"context"
	"time"

	"github.com/jmehdipour/customer-lab/internal/kafka"
	"github.com/jmehdipour/customer-lab/internal/model"
	"go.uber.org/zap"
)

// MessageSource is the subset of kafka.Consumer the audit loop needs.
type MessageSource interface {
	Fetch(ctx context.Context) (kafka.Message, error)
	Commit(ctx context.Context, m kafka.Message) error
}

type ReportRunner interface {
	Analyze(ctx context.Context) (model.Report, error)
}

// DQAudit re-runs the data-quality analysis every time a dataset event
// arrives, so each reload leaves a report in history.
type DQAudit struct {
	Source   MessageSource
	Analyzer ReportRunner
	Log      *zap.Logger

	// RetryWait is the pause after a failed fetch.
	RetryWait time.Duration
}

func NewDQAudit(source MessageSource, analyzer ReportRunner, log *zap.Logger) *DQAudit {
	return &DQAudit{
		Source:    source,
		Analyzer:  analyzer,
		Log:       log,
		RetryWait: 200 * time.Millisecond,
	}
}

// Run blocks until ctx is cancelled.
func (w *DQAudit) Run(ctx context.Context) error {
	if w.RetryWait <= 0 {
		w.RetryWait = 200 * time.Millisecond
	}
	for {
		m, err := w.Source.Fetch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			w.Log.Warn("kafka fetch failed", zap.Error(err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(w.RetryWait):
			}
			continue
		}
		w.processOne(ctx, m)
	}
}

func (w *DQAudit) processOne(ctx context.Context, m kafka.Message) {
	ev, err := kafka.DecodeDatasetEvent(m.Value)
	if err != nil {
		// poison → commit, skip
		w.Log.Warn("skipping bad dataset event", zap.Int64("offset", m.Offset), zap.Error(err))
		w.commit(ctx, m)
		return
	}

	if ev.Type == model.EventSeeded {
		rep, err := w.Analyzer.Analyze(ctx)
		if err != nil {
			// leave uncommitted; the message is redelivered after a restart
			w.Log.Error("dq audit failed", zap.String("event_id", ev.ID), zap.Error(err))
			return
		}
		w.Log.Info("dq audit finished",
			zap.String("event_id", ev.ID),
			zap.String("report_id", rep.ID),
			zap.Int64("rows", rep.RowCount),
			zap.Bool("passed", rep.Passed),
			zap.Strings("warnings", rep.Warnings),
		)
	}

	w.commit(ctx, m)
}

func (w *DQAudit) commit(ctx context.Context, m kafka.Message) {
	if err := w.Source.Commit(ctx, m); err != nil {
		w.Log.Warn("kafka commit failed", zap.Int64("offset", m.Offset), zap.Error(err))
	}
}
