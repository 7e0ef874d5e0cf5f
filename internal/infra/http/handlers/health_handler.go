package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Checker is satisfied by *queue.RabbitMQ.
type Checker interface {
	Healthy() bool
}

type HealthHandler struct {
	DB        Pinger
	Queue     Checker
	Providers []string
	// Integrations maps optional integrations to whether they are configured.
	Integrations map[string]bool
	StartTime    time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Providers    []string          `json:"providers"`
	Dependencies map[string]string `json:"dependencies"`
}

func NewHealthHandler(db Pinger, q Checker, providers []string, integrations map[string]bool) *HealthHandler {
	return &HealthHandler{
		DB:           db,
		Queue:        q,
		Providers:    providers,
		Integrations: integrations,
		StartTime:    time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)
	degraded := false

	switch {
	case h.DB == nil:
		deps["database"] = "not configured"
	default:
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		err := h.DB.PingContext(ctx)
		cancel()
		if err != nil {
			deps["database"] = "unhealthy"
			degraded = true
		} else {
			deps["database"] = "healthy"
		}
	}

	switch {
	case h.Queue == nil:
		deps["rabbitmq"] = "not configured"
	case h.Queue.Healthy():
		deps["rabbitmq"] = "healthy"
	default:
		deps["rabbitmq"] = "unhealthy: connection closed"
		degraded = true
	}

	for name, ok := range h.Integrations {
		if ok {
			deps[name] = "configured"
		} else {
			deps[name] = "not configured"
		}
	}

	if len(h.Providers) == 0 {
		degraded = true
	}
	providers := append([]string{}, h.Providers...)
	sort.Strings(providers)

	resp := HealthResponse{
		Status:       "healthy",
		Version:      "1.0.0",
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Providers:    providers,
		Dependencies: deps,
	}
	status := http.StatusOK
	if degraded {
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}
