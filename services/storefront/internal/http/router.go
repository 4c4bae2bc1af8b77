package httpx

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "shopfront/services/storefront/docs"

	"shopfront/shared/pkg/logger"
	"shopfront/shared/pkg/metrics"
)

type Handlers struct {
	Health   http.HandlerFunc
	Page     func(name string) http.HandlerFunc
	Signup   http.HandlerFunc
	Login    http.HandlerFunc
	Logout   http.HandlerFunc
	BuyNow   http.HandlerFunc
	Feedback http.HandlerFunc
}

type Options struct {
	Service        string
	Log            zerolog.Logger
	RequestTimeout time.Duration
	CORSOrigins    []string
}

func NewRouter(h *Handlers, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.Middleware(opts.Log))
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware(opts.Service))
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.CORSOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost},
			AllowedHeaders:   []string{"Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", h.Health)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Group(func(r chi.Router) {
		if opts.RequestTimeout > 0 {
			r.Use(middleware.Timeout(opts.RequestTimeout))
		}

		for path, name := range map[string]string{
			"/":         "index",
			"/home":     "home",
			"/shop":     "shop",
			"/cart":     "cart",
			"/login":    "login",
			"/signup":   "signup",
			"/buynow":   "buynow",
			"/feedback": "feedback",
			"/thanku":   "thanku",
		} {
			r.Get(path, h.Page(name))
		}

		r.Post("/signup", h.Signup)
		r.Post("/login", h.Login)
		r.Get("/logout", h.Logout)
		r.Post("/buynow", h.BuyNow)
		r.Post("/feedback", h.Feedback)
	})
	return r
}
