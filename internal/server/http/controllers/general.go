package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lyle8341/flake/internal/runtime"
)

// GeneralController handles health and metrics endpoints.
type GeneralController struct {
	rt *runtime.Runtime
}

// NewGeneralController creates a new general controller.
func NewGeneralController(rt *runtime.Runtime) *GeneralController {
	return &GeneralController{rt: rt}
}

// RegisterRoutes registers /v1/healthz and /metrics.
func (c *GeneralController) RegisterRoutes(r chi.Router) {
	r.Get("/v1/healthz", c.handleHealth)
	r.Method(http.MethodGet, "/metrics", c.rt.Metrics().Handler())
}

// handleHealth returns 200 OK with {"status": "ok"} if healthy, 503 Service
// Unavailable while the clock reads behind the last issued id.
func (c *GeneralController) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := c.rt.CheckHealth(r.Context()); err != nil {
		w.Header().Set("Retry-After", "1")
		writeError(w, http.StatusServiceUnavailable, "not_serving")
		return
	}
	cfg := c.rt.Config().Generator
	writeJSON(w, map[string]any{
		"status":       "ok",
		"workerId":     cfg.WorkerID,
		"datacenterId": cfg.DatacenterID,
	})
}
