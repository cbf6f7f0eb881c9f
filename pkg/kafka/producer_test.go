package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func newTestProducer(w messageWriter) *Producer {
	return &Producer{writer: w, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func TestNewEvent(t *testing.T) {
	ev, err := NewEvent("wishlist.saved", "user-1", "storefront", map[string]string{"product_id": "7"})
	require.NoError(t, err)

	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, "wishlist.saved", ev.Type)
	assert.Equal(t, "user-1", ev.Key)
	assert.False(t, ev.OccurredAt.IsZero())

	var data map[string]string
	require.NoError(t, ev.UnmarshalData(&data))
	assert.Equal(t, "7", data["product_id"])
}

func TestNewEvent_UnencodablePayload(t *testing.T) {
	_, err := NewEvent("x", "k", "s", make(chan int))
	require.Error(t, err)
}

func TestPublish_WritesKeyedMessageWithHeaders(t *testing.T) {
	w := &recordingWriter{}
	p := newTestProducer(w)

	ev, err := NewEvent("order.created", "order_abc", "storefront", map[string]int{"amount": 50000})
	require.NoError(t, err)
	ev.CorrelationID = "corr-1"

	before := testutil.ToFloat64(producerMessagesPublished.WithLabelValues("storefront.orders"))
	require.NoError(t, p.Publish(context.Background(), "storefront.orders", ev))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, before+1, testutil.ToFloat64(producerMessagesPublished.WithLabelValues("storefront.orders")))

	msg := w.msgs[0]
	assert.Equal(t, "storefront.orders", msg.Topic)
	assert.Equal(t, "order_abc", string(msg.Key))

	headers := map[string]string{}
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "order.created", headers["event_type"])
	assert.Equal(t, "corr-1", headers["correlation_id"])

	var decoded Event
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, ev.ID, decoded.ID)
}

func TestPublish_WrapsWriterError(t *testing.T) {
	p := newTestProducer(&recordingWriter{err: errors.New("leader not available")})

	ev, err := NewEvent("wishlist.saved", "u", "storefront", struct{}{})
	require.NoError(t, err)

	before := testutil.ToFloat64(producerPublishErrors.WithLabelValues("storefront.wishlist"))
	err = p.Publish(context.Background(), "storefront.wishlist", ev)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "leader not available")
	assert.Equal(t, before+1, testutil.ToFloat64(producerPublishErrors.WithLabelValues("storefront.wishlist")))
}

func TestPing_NoBrokers(t *testing.T) {
	err := newTestProducer(&recordingWriter{}).Ping(context.Background())
	require.Error(t, err)
}
