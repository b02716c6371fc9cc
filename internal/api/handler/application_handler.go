package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mercury-homes/lead-funnel/internal/core/domain"
	"github.com/mercury-homes/lead-funnel/internal/core/ports"
)

const (
	headerIdempotencyKey = "Idempotency-Key"
	maxIdempotencyKeyLen = 128

	msgSubmitFailed = "Failed to submit application"
	msgFetchFailed  = "Failed to fetch applications"
)

// ApplicationHandler serves the renter and landlord application endpoints.
type ApplicationHandler struct {
	service ports.ApplicationService
}

func NewApplicationHandler(service ports.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// CreateRenter handles POST /api/applications/renter.
//
// @Summary      Submit a renter application
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string                     false  "Client token that makes retries safe"
// @Param        body             body      renterRequest              true   "Renter inquiry"
// @Success      201              {object}  createApplicationResponse
// @Success      200              {object}  createApplicationResponse  "Replay of an earlier submission"
// @Failure      400              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Failure      429              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /api/applications/renter [post]
func (h *ApplicationHandler) CreateRenter(c echo.Context) error {
	var req renterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	req.normalize()
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	}

	key, ok := idempotencyKey(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid Idempotency-Key header"})
	}

	res, err := h.service.SubmitRenter(c.Request().Context(), toSubmitRenterInput(req, key))
	return respondCreated(c, res, err)
}

// ListRenters handles GET /api/applications/renter.
//
// @Summary      List renter applications, newest first
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.RenterApplication
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/applications/renter [get]
func (h *ApplicationHandler) ListRenters(c echo.Context) error {
	apps, err := h.service.ListRenters(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: msgFetchFailed})
	}
	return c.JSON(http.StatusOK, nonNil(apps))
}

// CreateLandlord handles POST /api/applications/landlord.
//
// @Summary      Submit a landlord application
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string                     false  "Client token that makes retries safe"
// @Param        body             body      landlordRequest            true   "Landlord inquiry"
// @Success      201              {object}  createApplicationResponse
// @Success      200              {object}  createApplicationResponse  "Replay of an earlier submission"
// @Failure      400              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Failure      429              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /api/applications/landlord [post]
func (h *ApplicationHandler) CreateLandlord(c echo.Context) error {
	var req landlordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	req.normalize()
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	}

	key, ok := idempotencyKey(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid Idempotency-Key header"})
	}

	res, err := h.service.SubmitLandlord(c.Request().Context(), toSubmitLandlordInput(req, key))
	return respondCreated(c, res, err)
}

// ListLandlords handles GET /api/applications/landlord.
//
// @Summary      List landlord applications, newest first
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.LandlordApplication
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/applications/landlord [get]
func (h *ApplicationHandler) ListLandlords(c echo.Context) error {
	apps, err := h.service.ListLandlords(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: msgFetchFailed})
	}
	return c.JSON(http.StatusOK, nonNil(apps))
}

// idempotencyKey returns the optional Idempotency-Key header. ok is false
// when the header is too long to be a client token.
func idempotencyKey(c echo.Context) (key string, ok bool) {
	key = c.Request().Header.Get(headerIdempotencyKey)
	return key, len(key) <= maxIdempotencyKeyLen
}

// respondCreated maps a submission outcome onto the create contract: 201 for
// a new record, 200 for a replay, and a generic 500 for anything that went
// wrong while storing.
func respondCreated(c echo.Context, res *ports.SubmissionResult, err error) error {
	if err != nil {
		if errors.Is(err, domain.ErrSubmissionInFlight) {
			return c.JSON(http.StatusConflict, errorResponse{Error: domain.ErrSubmissionInFlight.Error()})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: msgSubmitFailed})
	}

	status := http.StatusCreated
	if res.AlreadyExisted {
		status = http.StatusOK
	}
	return c.JSON(status, createApplicationResponse{Success: true, ID: res.ID})
}
