package main

import (
	"context"

	"github.com/rs/zerolog"

	"shopfront/shared/pkg/awsconf"
	"shopfront/shared/pkg/config"
	"shopfront/shared/pkg/notify"
	"shopfront/shared/pkg/rabbit"
)

// buildNotifier never fails: when the chosen transport cannot be set up it
// degrades to a log notifier with no destination, so every order is Skipped.
func buildNotifier(ctx context.Context, cfg config.Config, log zerolog.Logger) (notify.Notifier, func()) {
	nlog := log.With().Str("component", "notifier").Logger()

	switch cfg.Notify.Backend {
	case config.NotifyLog:
		return &notify.Log{Destination: cfg.Notify.Destination, Log: nlog}, func() {}

	case config.NotifyRabbit:
		rc, err := rabbit.Connect(cfg.Rabbit.URL)
		if err != nil {
			nlog.Warn().Err(err).Msg("rabbit unavailable, notifications will be skipped")
			return &notify.Log{Log: nlog}, func() {}
		}
		if err := rabbit.DeclareNotificationTopology(rc.Ch, 0); err != nil {
			_ = rc.Close()
			nlog.Warn().Err(err).Msg("rabbit topology declare failed, notifications will be skipped")
			return &notify.Log{Log: nlog}, func() {}
		}
		n := &notify.Rabbit{
			Pub:         rabbit.NewPublisher(rc.Ch, rabbit.ExchangeNotifications),
			Destination: cfg.Notify.Destination,
			Log:         nlog,
		}
		return n, func() { _ = rc.Close() }

	case config.NotifySES:
		awsCfg, err := awsconf.Load(ctx, cfg.AWS.Region, cfg.AWS.Profile)
		if err != nil {
			nlog.Warn().Err(err).Msg("aws config unavailable, notifications will be skipped")
			return &notify.Log{Log: nlog}, func() {}
		}
		return notify.NewSES(awsCfg, cfg.Notify.SESFrom, cfg.Notify.Destination, nlog), func() {}

	default:
		awsCfg, err := awsconf.Load(ctx, cfg.AWS.Region, cfg.AWS.Profile)
		if err != nil {
			// no destination: every notification is skipped
			nlog.Warn().Err(err).Msg("aws config unavailable, notifications will be skipped")
			return &notify.Log{Log: nlog}, func() {}
		}
		return notify.NewSNS(awsCfg, cfg.Notify.Destination, nlog), func() {}
	}
}
