package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	httpx "shopfront/services/storefront/internal/http"
	"shopfront/services/storefront/internal/http/handlers"
	"shopfront/services/storefront/internal/repo"
	"shopfront/services/storefront/internal/service"
	"shopfront/services/storefront/internal/session"
	"shopfront/shared/pkg/cache"
	"shopfront/shared/pkg/config"
	"shopfront/shared/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg.Common.ServiceName, cfg.Common.LogLevel)

	ctx := context.Background()

	stores, err := repo.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Store.Backend).Msg("store open failed")
	}
	defer stores.Close()
	log.Info().Str("backend", stores.Backend).Msg("store ready")

	sessionStore, closeSessions := openSessions(ctx, cfg, log)
	defer closeSessions()

	notifier, closeNotifier := buildNotifier(ctx, cfg, log)
	defer closeNotifier()

	sessions := &session.Manager{
		Store:  sessionStore,
		Cookie: cfg.Session.Cookie,
		TTL:    cfg.Session.TTL,
		Secure: cfg.Session.Secure,
		Log:    log,
	}
	orders := &service.OrdersService{
		Repo:          stores.Orders,
		Notifier:      notifier,
		Reporter:      &service.LogReporter{Log: log},
		Log:           log,
		StrictPersist: cfg.Order.StrictPersist,
	}
	accounts := &service.AccountsService{
		Repo:   stores.Users,
		Hasher: service.BcryptHasher{},
		Log:    log,
	}

	auth := &handlers.AuthHandler{Accounts: accounts, Sessions: sessions, Log: log}
	buy := &handlers.BuyNowHandler{Orders: orders, Sessions: sessions, Log: log}
	feedback := &handlers.Feedback{Log: log}

	router := httpx.NewRouter(&httpx.Handlers{
		Health: handlers.Health,
		Page: func(name string) http.HandlerFunc {
			return handlers.Page(name, sessions, log)
		},
		Signup:   auth.Signup,
		Login:    auth.Login,
		Logout:   auth.Logout,
		BuyNow:   buy.ServeHTTP,
		Feedback: feedback.ServeHTTP,
	}, httpx.Options{
		Service:        cfg.Common.ServiceName,
		Log:            log,
		RequestTimeout: cfg.HTTP.RequestTimeout,
		CORSOrigins:    cfg.HTTP.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http failed")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info().Msg("shutdown...")
	shCtx, shCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shCancel()
	_ = srv.Shutdown(shCtx)
}

func openSessions(ctx context.Context, cfg config.Config, log zerolog.Logger) (session.Store, func()) {
	if cfg.Redis.Addr == "" {
		log.Info().Msg("REDIS_ADDR not set, sessions kept in memory")
		return session.NewMemoryStore(), func() {}
	}
	rc := cache.New(cfg.Redis.Addr)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rc.Ping(pingCtx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, sessions kept in memory")
		_ = rc.Close()
		return session.NewMemoryStore(), func() {}
	}
	return &session.RedisStore{Redis: rc}, func() { _ = rc.Close() }
}
