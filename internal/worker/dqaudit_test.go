package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jmehdipour/customer-lab/internal/kafka"
	"github.com/jmehdipour/customer-lab/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSource struct {
	mu        sync.Mutex
	queue     []kafka.Message
	committed []int64
	drained   chan struct{}
}

func newFakeSource(msgs ...kafka.Message) *fakeSource {
	return &fakeSource{queue: msgs, drained: make(chan struct{})}
}

func (f *fakeSource) Fetch(ctx context.Context) (kafka.Message, error) {
	f.mu.Lock()
	if len(f.queue) > 0 {
		m := f.queue[0]
		f.queue = f.queue[1:]
		f.mu.Unlock()
		return m, nil
	}
	f.mu.Unlock()

	select {
	case <-f.drained:
	default:
		close(f.drained)
	}
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (f *fakeSource) Commit(_ context.Context, m kafka.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.committed = append(f.committed, m.Offset)
	return nil
}

type fakeAnalyzer struct {
	calls int
	err   error
}

func (f *fakeAnalyzer) Analyze(context.Context) (model.Report, error) {
	f.calls++
	if f.err != nil {
		return model.Report{}, f.err
	}
	return model.Report{ID: "r1", RowCount: 10, Passed: true, Warnings: []string{}}, nil
}

func seededMessage(t *testing.T, offset int64) kafka.Message {
	t.Helper()
	b, err := kafka.EncodeDatasetEvent(model.DatasetEvent{
		ID:         "ev",
		Type:       model.EventSeeded,
		Rows:       10,
		Source:     "data.json",
		OccurredAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	return kafka.Message{Offset: offset, Value: b}
}

func runUntilDrained(t *testing.T, w *DQAudit, src *fakeSource) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	select {
	case <-src.drained:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not drain the queue")
	}
	cancel()
	require.NoError(t, <-done)
}

func TestDQAuditAnalyzesSeededEvents(t *testing.T) {
	src := newFakeSource(seededMessage(t, 1), seededMessage(t, 2))
	an := &fakeAnalyzer{}

	runUntilDrained(t, NewDQAudit(src, an, zap.NewNop()), src)

	assert.Equal(t, 2, an.calls)
	assert.Equal(t, []int64{1, 2}, src.committed)
}

func TestDQAuditCommitsPoisonMessages(t *testing.T) {
	src := newFakeSource(
		kafka.Message{Offset: 7, Value: []byte("{broken")},
		kafka.Message{Offset: 8, Value: []byte(`{"id":"x","type":"archived"}`)},
	)
	an := &fakeAnalyzer{}

	runUntilDrained(t, NewDQAudit(src, an, zap.NewNop()), src)

	assert.Zero(t, an.calls)
	assert.Equal(t, []int64{7, 8}, src.committed)
}

func TestDQAuditLeavesFailedAnalysisUncommitted(t *testing.T) {
	src := newFakeSource(seededMessage(t, 3))
	an := &fakeAnalyzer{err: errors.New("connection refused")}

	runUntilDrained(t, NewDQAudit(src, an, zap.NewNop()), src)

	assert.Equal(t, 1, an.calls)
	assert.Empty(t, src.committed)
}
