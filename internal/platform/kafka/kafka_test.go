package kafka

import (
	"context"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

type memoryWriter struct {
	messages []kafka.Message
}

func (m *memoryWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	m.messages = append(m.messages, msgs...)
	return nil
}

func (m *memoryWriter) Close() error { return nil }

func TestNewClient_ParsesBrokers(t *testing.T) {
	require.Equal(t, []string{"a:9092", "b:9092"}, NewClient(" a:9092, ,b:9092 ").Brokers)
	require.False(t, NewClient("").Enabled())
	require.True(t, NewClient("a:9092").Enabled())

	w := NewClient("a:9092").NewWriter("order-events")
	require.Equal(t, "order-events", w.Topic)
}

func TestPublishJSON(t *testing.T) {
	w := &memoryWriter{}
	require.NoError(t, PublishJSON(context.Background(), w, "abc123", map[string]string{"status": "Delivered"}))
	require.Len(t, w.messages, 1)
	require.Equal(t, "abc123", string(w.messages[0].Key))
	require.JSONEq(t, `{"status":"Delivered"}`, string(w.messages[0].Value))
}
