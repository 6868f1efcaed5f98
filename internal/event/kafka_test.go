package event

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func (w *recordingWriter) snapshot() []kafka.Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]kafka.Message(nil), w.messages...)
}

func TestKafkaForwarder(t *testing.T) {
	t.Parallel()

	t.Run("forwards events until the channel closes", func(t *testing.T) {
		writer := &recordingWriter{}
		forwarder := &KafkaForwarder{writer: writer}

		events := make(chan Event, 2)
		events <- New(TypeComplaintCreated, 3, map[string]any{"complaint_id": 10})
		events <- New(TypeComplaintApproved, 4, map[string]any{"complaint_id": 10})
		close(events)

		forwarder.Run(context.Background(), events)

		messages := writer.snapshot()
		require.Len(t, messages, 2)
		require.Equal(t, "complaint.created", string(messages[0].Key))

		var decoded Event
		require.NoError(t, json.Unmarshal(messages[1].Value, &decoded))
		require.Equal(t, TypeComplaintApproved, decoded.Type)
		require.Equal(t, int64(4), decoded.ActorID)
	})

	t.Run("keeps running after a write failure", func(t *testing.T) {
		writer := &recordingWriter{err: errors.New("broker down")}
		forwarder := &KafkaForwarder{writer: writer}

		events := make(chan Event, 1)
		events <- New(TypeUserRegistered, 1, nil)
		close(events)

		forwarder.Run(context.Background(), events)
		require.Empty(t, writer.snapshot())
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		forwarder := &KafkaForwarder{writer: &recordingWriter{}}
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan struct{})
		go func() {
			forwarder.Run(ctx, make(chan Event))
			close(done)
		}()
		cancel()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("forwarder did not stop")
		}
	})

	t.Run("close releases the writer", func(t *testing.T) {
		writer := &recordingWriter{}
		require.NoError(t, (&KafkaForwarder{writer: writer}).Close())
		require.True(t, writer.closed)
	})
}
