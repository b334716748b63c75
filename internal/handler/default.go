package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cyberalexander/messengerio/internal/response"
)

// HomeHandler answers the service's root and liveness probes.
type HomeHandler struct {
	service string
	started time.Time
	now     func() time.Time
}

// NewHomeHandler returns a HomeHandler reporting under the given service name.
func NewHomeHandler(service string) *HomeHandler {
	return &HomeHandler{
		service: service,
		started: time.Now(),
		now:     time.Now,
	}
}

// Index godoc
// @Summary     Service banner
// @Description Names the service and points at the SMS endpoint.
// @Tags        home
// @Produce     json
// @Success     200 {object} response.WelcomeResponse
// @Router      / [get]
func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	response.RespondJSON(w, http.StatusOK, response.WelcomePayload{
		Message: fmt.Sprintf("%s is running; send SMS via POST /api/v1/sms", h.service),
	})
}

// Health godoc
// @Summary     Liveness check
// @Description Reports that the process is serving and for how long.
// @Tags        home
// @Produce     json
// @Success     200 {object} response.HealthResponse
// @Router      /health [get]
func (h *HomeHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.RespondJSON(w, http.StatusOK, response.HealthPayload{
		Status:  "ok",
		Service: h.service,
		Uptime:  h.now().Sub(h.started).Truncate(time.Second).String(),
	})
}
