package notify

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"shopfront/shared/pkg/models"
	"shopfront/shared/pkg/rabbit"
)

// Rabbit hands confirmations to the notification worker instead of calling SNS
// inline. Delivered means the broker accepted the message.
type Rabbit struct {
	Pub         *rabbit.Publisher
	Destination string
	Log         zerolog.Logger
}

func (r *Rabbit) Notify(ctx context.Context, subject, message string) (Outcome, error) {
	if r.Destination == "" {
		r.Log.Info().Str("subject", subject).Msg("notification destination not set, skipping relay")
		return Skipped, nil
	}
	evt := models.NewNotificationEvent(r.Destination, subject, message)

	pubCtx, cancel := rabbit.WithTimeout(ctx)
	defer cancel()
	if err := r.Pub.PublishJSON(pubCtx, rabbit.KeyNotifications, evt, amqp.Table{"x-event-id": evt.ID}); err != nil {
		return Failed, fmt.Errorf("relay publish: %w", err)
	}
	r.Log.Debug().Str("event_id", evt.ID).Msg("notification relayed")
	return Delivered, nil
}
