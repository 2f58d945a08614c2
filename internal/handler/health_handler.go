package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gstbill/internal/repository/postgres"
)

// HealthHandler serves the liveness and readiness endpoints.
type HealthHandler struct {
	health *postgres.Health
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(health *postgres.Health) *HealthHandler {
	return &HealthHandler{health: health}
}

// Root handles GET /. It always answers 200 so platform probes see the
// process, and reports the database state alongside.
func (h *HealthHandler) Root(c *gin.Context) {
	dbState := "connected"
	if !h.health.Ready() {
		dbState = "connecting"
	}
	RespondOK(c, "GST invoice API is running", gin.H{"database": dbState})
}

// Liveness handles GET /healthz.
func (h *HealthHandler) Liveness(c *gin.Context) {
	RespondOK(c, "ok", nil)
}

// Readiness handles GET /readyz. It pings the database on every call so a
// load balancer gets a live answer, not a cached flag.
func (h *HealthHandler) Readiness(c *gin.Context) {
	if err := h.health.Ping(c.Request.Context()); err != nil {
		RespondError(c, http.StatusServiceUnavailable, "Database not reachable")
		return
	}
	RespondOK(c, "ready", nil)
}
