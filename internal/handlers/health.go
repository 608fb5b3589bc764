package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/jwebster45206/craft-flags/internal/economy"
)

// Pinger is implemented by ledgers backed by a remote service.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status     string                 `json:"status"`
	Timestamp  time.Time              `json:"timestamp"`
	Service    string                 `json:"service"`
	Components map[string]interface{} `json:"components"`
}

type HealthHandler struct {
	ledger economy.Ledger
	logger *slog.Logger
}

func NewHealthHandler(ledger economy.Ledger, logger *slog.Logger) *HealthHandler {
	if ledger == nil {
		ledger = economy.Disabled{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthHandler{
		ledger: ledger,
		logger: logger,
	}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("Health check requested",
		"method", r.Method,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr)

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	components := make(map[string]interface{})
	overallStatus := "healthy"

	switch {
	case !h.ledger.Enabled():
		components["economy"] = "disabled"
	default:
		components["economy"] = "healthy"
		if p, ok := h.ledger.(Pinger); ok {
			if err := p.Ping(ctx); err != nil {
				h.logger.Warn("Economy health check failed", "error", err)
				components["economy"] = "unhealthy"
				overallStatus = "degraded"
			}
		}
	}

	response := HealthResponse{
		Status:     overallStatus,
		Timestamp:  time.Now(),
		Service:    "craft-flags",
		Components: components,
	}

	statusCode := http.StatusOK
	if overallStatus != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}
	writeJSON(w, h.logger, statusCode, response)
}
