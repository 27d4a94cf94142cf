package controllers

import (
	"net/http"
)

type HealthController struct {
	service string
}

func NewHealthController(service string) *HealthController {
	return &HealthController{service: service}
}

func (h *HealthController) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok", "service": "` + h.service + `"}`))
}
