package router

import (
	"net/http"

	mem "pet-care-notifier/internal/adapters/storage/memory"
	"pet-care-notifier/internal/domain/notifications"
	"pet-care-notifier/internal/domain/subscribers"
	"pet-care-notifier/internal/middleware"
	"pet-care-notifier/internal/platform/logger"

	_ "pet-care-notifier/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Opcional: si es nil, registro in-memory (dev/tests).
	Subscribers *subscribers.Service

	Notifications *notifications.Service

	// Profiles / Verifier pueden ser nil (modo dev).
	Webhook subscribers.WebhookOptions

	// TriggerToken vacío => /walks/start y /triggers/* quedan abiertos.
	TriggerToken string

	Log logger.Logger
}

func NewRouter(opts Options) http.Handler {
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	if opts.Webhook.Log == nil {
		opts.Webhook.Log = opts.Log
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(opts.Log))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	subsSvc := opts.Subscribers
	if subsSvc == nil {
		subsSvc = subscribers.NewService(mem.NewSubscriberRepo())
	}

	// Rutas por módulo
	subscribers.RegisterRoutes(r, subsSvc, opts.Webhook)

	if opts.Notifications != nil {
		r.Group(func(g chi.Router) {
			g.Use(middleware.TriggerAuth(opts.TriggerToken))
			notifications.RegisterRoutes(g, opts.Notifications)
		})
	}

	return r
}
