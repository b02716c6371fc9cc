package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mercury-homes/lead-funnel/internal/core/ports"
	"github.com/mercury-homes/lead-funnel/internal/dashboard"
)

// DashboardHandler serves the admin summary counts.
type DashboardHandler struct {
	service ports.ApplicationService
	loc     *time.Location
	now     func() time.Time
}

// NewDashboardHandler counts "today" in loc; nil means UTC.
func NewDashboardHandler(service ports.ApplicationService, loc *time.Location) *DashboardHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardHandler{service: service, loc: loc, now: time.Now}
}

type summaryResponse struct {
	dashboard.Summary
	GeneratedAt time.Time `json:"generatedAt"`
}

// Summary handles GET /api/admin/summary.
//
// @Summary      Dashboard counts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  summaryResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/admin/summary [get]
func (h *DashboardHandler) Summary(c echo.Context) error {
	now := h.now().In(h.loc)
	snap := dashboard.Fetch(c.Request().Context(), h.service, now)

	if snap.Renters.State == dashboard.StateFailed || snap.Landlords.State == dashboard.StateFailed {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: msgFetchFailed})
	}

	return c.JSON(http.StatusOK, summaryResponse{Summary: snap.Summary, GeneratedAt: now})
}
