package worker

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"shopfront/shared/pkg/metrics"
	"shopfront/shared/pkg/models"
	"shopfront/shared/pkg/notify"
)

type Sender interface {
	PublishTo(ctx context.Context, destination, subject, message string) (notify.Outcome, error)
}

// Consumer relays notification.requested events to the Sender. Every message
// gets one attempt; anything that cannot be delivered is dead-lettered.
type Consumer struct {
	Log    zerolog.Logger
	Sender Sender
}

func (c *Consumer) Run(ctx context.Context, deliveries <-chan amqp.Delivery) {
	c.Log.Info().Msg("notification consumer started")
	for {
		select {
		case <-ctx.Done():
			c.Log.Info().Msg("notification consumer stopped")
			return
		case d, ok := <-deliveries:
			if !ok {
				c.Log.Info().Msg("deliveries closed")
				return
			}
			c.handle(ctx, d)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	var evt models.Event[models.NotificationPayload]
	if err := json.Unmarshal(d.Body, &evt); err != nil {
		c.Log.Error().Err(err).Str("rk", d.RoutingKey).Msg("bad json -> dlq")
		c.reject(d, "bad_json")
		return
	}
	if evt.ID == "" {
		c.Log.Error().Str("rk", d.RoutingKey).Msg("missing event id -> dlq")
		c.reject(d, "bad_json")
		return
	}
	if evt.Type != models.EventNotificationRequested {
		c.Log.Warn().Str("type", evt.Type).Str("event_id", evt.ID).Msg("unexpected event type -> ack")
		metrics.RelayedTotal.WithLabelValues("ignored").Inc()
		_ = d.Ack(false)
		return
	}

	out, err := c.Sender.PublishTo(ctx, evt.Payload.Destination, evt.Payload.Subject, evt.Payload.Message)
	if out == notify.Failed {
		c.Log.Error().Err(err).Str("event_id", evt.ID).Msg("delivery failed -> dlq")
		c.reject(d, string(notify.Failed))
		return
	}

	metrics.RelayedTotal.WithLabelValues(string(out)).Inc()
	_ = d.Ack(false)
	c.Log.Info().Str("event_id", evt.ID).Str("outcome", string(out)).Msg("notification relayed")
}

func (c *Consumer) reject(d amqp.Delivery, outcome string) {
	metrics.RelayedTotal.WithLabelValues(outcome).Inc()
	_ = d.Nack(false, false)
}
