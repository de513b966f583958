package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmehdipour/customer-lab/internal/model"
	"github.com/segmentio/kafka-go"
)

// Producer publishes dataset lifecycle events.
type Producer struct {
	w *kafka.Writer
}

// NewProducer returns nil when no brokers are configured.
func NewProducer(brokers []string, topic string) *Producer {
	if len(brokers) == 0 {
		return nil
	}
	return &Producer{w: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}}
}

func (p *Producer) PublishDatasetEvent(ctx context.Context, ev model.DatasetEvent) error {
	payload, err := EncodeDatasetEvent(ev)
	if err != nil {
		return err
	}
	if err := p.w.WriteMessages(ctx, kafka.Message{Key: []byte(ev.ID), Value: payload}); err != nil {
		return fmt.Errorf("publish %s event: %w", ev.Type, err)
	}
	return nil
}

func (p *Producer) Close() error { return p.w.Close() }

func EncodeDatasetEvent(ev model.DatasetEvent) ([]byte, error) {
	b, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("encode dataset event: %w", err)
	}
	return b, nil
}

// DecodeDatasetEvent rejects payloads without an id or type.
func DecodeDatasetEvent(b []byte) (model.DatasetEvent, error) {
	var ev model.DatasetEvent
	if err := json.Unmarshal(b, &ev); err != nil {
		return model.DatasetEvent{}, fmt.Errorf("decode dataset event: %w", err)
	}
	if ev.ID == "" || ev.Type == "" {
		return model.DatasetEvent{}, fmt.Errorf("decode dataset event: missing id or type")
	}
	return ev, nil
}
