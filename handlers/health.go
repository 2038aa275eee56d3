package handlers

import (
	"net/http"

	"penguin-service/services"

	"github.com/gin-gonic/gin"
)

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Handler serves the model endpoints from a state loaded once at startup.
type Handler struct {
	state *services.ModelState
}

// New creates a Handler around the shared, read-only model state.
func New(state *services.ModelState) *Handler {
	return &Handler{state: state}
}

// Health returns the model load status of the service
// GET /health
//
// Response:
//   200: {"status": "ok"}
//   200: {"status": "error", "detail": "<load diagnostic>"}
func (h *Handler) Health(c *gin.Context) {
	if !h.state.Loaded() {
		c.JSON(http.StatusOK, HealthResponse{
			Status: StatusError,
			Detail: h.state.LoadError(),
		})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{Status: StatusOK})
}
