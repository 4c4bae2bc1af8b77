package rabbit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
}

func (c *recordingChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	c.exchange, c.key, c.msg = exchange, key, msg
	return c.err
}

func TestPublishJSON(t *testing.T) {
	ch := &recordingChannel{}
	pub := NewPublisher(ch, ExchangeNotifications)

	err := pub.PublishJSON(context.Background(), KeyNotifications, map[string]string{"subject": "Order Confirmation"}, amqp.Table{"x-destination": "sms"})
	require.NoError(t, err)

	assert.Equal(t, ExchangeNotifications, ch.exchange)
	assert.Equal(t, KeyNotifications, ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)
	assert.Equal(t, "sms", ch.msg.Headers["x-destination"])

	var body map[string]string
	require.NoError(t, json.Unmarshal(ch.msg.Body, &body))
	assert.Equal(t, "Order Confirmation", body["subject"])
}

func TestPublishPropagatesChannelError(t *testing.T) {
	ch := &recordingChannel{err: errors.New("channel closed")}
	err := NewPublisher(ch, ExchangeNotifications).Publish(context.Background(), KeyNotifications, []byte("{}"), nil)
	assert.EqualError(t, err, "channel closed")
}

func TestPublishJSONRejectsUnmarshalable(t *testing.T) {
	ch := &recordingChannel{}
	err := NewPublisher(ch, ExchangeNotifications).PublishJSON(context.Background(), KeyNotifications, make(chan int), nil)
	assert.Error(t, err)
	assert.Empty(t, ch.key)
}
