package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// Log writes confirmations to the log only. Handy for local runs without AWS.
type Log struct {
	Destination string
	Log         zerolog.Logger
}

func (l *Log) Notify(_ context.Context, subject, message string) (Outcome, error) {
	if l.Destination == "" {
		l.Log.Info().Str("subject", subject).Msg("notification destination not set, skipping")
		return Skipped, nil
	}
	l.Log.Info().
		Str("destination", l.Destination).
		Str("subject", subject).
		Str("message", message).
		Msg("notification")
	return Delivered, nil
}
