package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthHandler handles GET /health, the liveness probe.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Check probes one dependency.
type Check func(ctx context.Context) error

// ReadinessHandler handles GET /health/ready. Required checks fail the probe;
// optional ones (Redis) only report "degraded".
type ReadinessHandler struct {
	required map[string]Check
	optional map[string]Check
	timeout  time.Duration
}

func NewReadinessHandler(required, optional map[string]Check) *ReadinessHandler {
	return &ReadinessHandler{required: required, optional: optional, timeout: 3 * time.Second}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	deps := make(map[string]dependencyStatus, len(h.required)+len(h.optional))
	ready, degraded := true, false

	for _, name := range sortedNames(h.required) {
		if err := h.required[name](ctx); err != nil {
			deps[name] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			ready = false
			continue
		}
		deps[name] = dependencyStatus{Status: "ok"}
	}
	for _, name := range sortedNames(h.optional) {
		if err := h.optional[name](ctx); err != nil {
			deps[name] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			degraded = true
			continue
		}
		deps[name] = dependencyStatus{Status: "ok"}
	}

	switch {
	case !ready:
		return c.JSON(http.StatusServiceUnavailable, readinessResponse{Status: "unavailable", Dependencies: deps})
	case degraded:
		return c.JSON(http.StatusOK, readinessResponse{Status: "degraded", Dependencies: deps})
	default:
		return c.JSON(http.StatusOK, readinessResponse{Status: "ok", Dependencies: deps})
	}
}

func sortedNames(checks map[string]Check) []string {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
