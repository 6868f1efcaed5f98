package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

const publishTimeout = 5 * time.Second

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaForwarder copies bus events onto a Kafka topic, keyed by event type.
type KafkaForwarder struct {
	writer messageWriter
}

func NewKafkaForwarder(brokers []string, topic string) *KafkaForwarder {
	return &KafkaForwarder{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
			WriteTimeout: 10 * time.Second,
		},
	}
}

// Run forwards events until ctx is done or the channel is closed. Delivery
// failures are logged and the event is dropped.
func (f *KafkaForwarder) Run(ctx context.Context, events <-chan Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			if err := f.forward(ctx, e); err != nil {
				slog.Error("forward event to kafka", "event_type", e.Type, "event_id", e.ID, "error", err)
			}
		}
	}
}

func (f *KafkaForwarder) forward(ctx context.Context, e Event) error {
	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	writeCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return f.writer.WriteMessages(writeCtx, kafka.Message{
		Key:   []byte(e.Type),
		Value: value,
		Time:  time.Now(),
	})
}

func (f *KafkaForwarder) Close() error {
	return f.writer.Close()
}
