package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpx "shopfront/services/notification-worker/internal/http"
	"shopfront/services/notification-worker/internal/worker"
	"shopfront/shared/pkg/awsconf"
	"shopfront/shared/pkg/config"
	"shopfront/shared/pkg/logger"
	"shopfront/shared/pkg/notify"
	"shopfront/shared/pkg/rabbit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New("notification-worker", cfg.Common.LogLevel)

	awsCfg, err := awsconf.Load(context.Background(), cfg.AWS.Region, cfg.AWS.Profile)
	if err != nil {
		log.Fatal().Err(err).Msg("aws config failed")
	}
	sender := notify.NewSNS(awsCfg, cfg.Notify.Destination, log)

	rc, err := rabbit.Connect(cfg.Rabbit.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("rabbit connect failed")
	}
	defer func() { _ = rc.Close() }()

	if err := rabbit.DeclareNotificationTopology(rc.Ch, 20); err != nil {
		log.Fatal().Err(err).Msg("declare notification topology failed")
	}

	deliveries, err := rabbit.NewConsumer(rc.Ch).Consume(rabbit.QueueNotifications, 20)
	if err != nil {
		log.Fatal().Err(err).Msg("consume failed")
	}

	w := &worker.Consumer{Log: log, Sender: sender}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx, deliveries)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           httpx.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info().Str("addr", httpSrv.Addr).Msg("http started")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http failed")
		}
	}()

	log.Info().Msg("notification worker started")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info().Msg("shutdown...")
	cancel()
	shCtx, shCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shCancel()
	_ = httpSrv.Shutdown(shCtx)
}
