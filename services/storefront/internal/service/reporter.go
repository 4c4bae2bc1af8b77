package service

import (
	"context"

	"github.com/rs/zerolog"

	"shopfront/shared/pkg/metrics"
)

// ErrorReporter receives errors that are handled by being swallowed.
type ErrorReporter interface {
	Report(ctx context.Context, op string, err error, fields map[string]string)
}

type LogReporter struct {
	Log zerolog.Logger
}

func (r *LogReporter) Report(_ context.Context, op string, err error, fields map[string]string) {
	metrics.SwallowedErrorsTotal.WithLabelValues(op).Inc()
	ev := r.Log.Error().Err(err).Str("op", op)
	for k, v := range fields {
		ev = ev.Str(k, v)
	}
	ev.Msg("error swallowed")
}
