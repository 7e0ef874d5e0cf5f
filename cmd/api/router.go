package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/leadlocal/internal/config"
	"github.com/xavierca1/leadlocal/internal/infra/http/handlers"
	"github.com/xavierca1/leadlocal/internal/infra/http/middleware"
)

type routes struct {
	Health    *handlers.HealthHandler
	Search    *handlers.SearchHandler
	Leads     *handlers.LeadHandler
	Templates *handlers.TemplateHandler
	Exports   *handlers.ExportHandler
	CRM       *handlers.CRMHandler
	// Campaigns is nil without a database.
	Campaigns     *handlers.CampaignHandler
	Notifications *handlers.NotificationHandler
}

// Searches fan out to paid provider APIs.
const (
	searchRateLimit  = 30
	searchRateWindow = time.Minute
)

func newRouter(ctx context.Context, cfg *config.Config, h routes) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Content-Disposition", "X-Archive-Key"},
		MaxAge:         300,
	}))

	r.Get("/health", h.Health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	limiter := handlers.NewRateLimiter(ctx, searchRateLimit, searchRateWindow)
	r.With(limiter.Middleware).Post("/search", h.Search.Handle)

	r.Route("/leads", func(r chi.Router) {
		r.Get("/", h.Leads.List)
		r.Get("/{id}", h.Leads.Get)
		r.Patch("/{id}/status", h.Leads.UpdateStatus)
		r.Patch("/{id}/contact", h.Leads.UpdateContact)
		r.Post("/{id}/insights", h.Leads.GenerateInsights)
	})

	r.Route("/templates", func(r chi.Router) {
		r.Get("/", h.Templates.List)
		r.Get("/{id}", h.Templates.Get)
		r.Post("/{id}/render", h.Templates.Render)
	})

	r.Post("/exports", h.Exports.Handle)
	r.Post("/crm/kommo/sync", h.CRM.SyncKommo)

	if h.Campaigns != nil {
		r.Route("/campaigns", func(r chi.Router) {
			r.Get("/", h.Campaigns.List)
			r.Post("/", h.Campaigns.Create)
			r.Get("/{id}", h.Campaigns.Get)
			r.Post("/{id}/dispatch", h.Campaigns.Dispatch)
		})
	}

	r.Route("/notifications", func(r chi.Router) {
		r.Get("/", h.Notifications.List)
		r.Delete("/", h.Notifications.ClearAll)
		r.Post("/{id}/read", h.Notifications.MarkRead)
		r.Delete("/{id}", h.Notifications.Dismiss)
	})

	return r
}
