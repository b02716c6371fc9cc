package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mercury-homes/lead-funnel/internal/dashboard"
)

func getSummary(t *testing.T, h *DashboardHandler) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/summary", nil)
	rec := httptest.NewRecorder()
	if err := h.Summary(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestDashboardHandler_Summary(t *testing.T) {
	svc := newMemoryService()
	e := newTestEcho(svc)
	do(e, http.MethodPost, "/api/applications/renter", renterBody, nil)
	do(e, http.MethodPost, "/api/applications/landlord",
		`{"fullName":"Peter Kamau","phone":"0798765432","propertyType":"townhouse","location":"thika"}`, nil)

	h := NewDashboardHandler(svc, time.UTC)
	h.now = func() time.Time { return time.Date(2024, 5, 10, 18, 0, 0, 0, time.UTC) }

	rec := getSummary(t, h)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got dashboard.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	want := dashboard.Summary{HouseSeekers: 1, PropertyOwners: 1, Today: 2, ToContact: 2}
	if got != want {
		t.Fatalf("summary = %+v, want %+v", got, want)
	}
}

func TestDashboardHandler_FailureIsGeneric(t *testing.T) {
	svc := newMemoryService()
	svc.listErr = errors.New("boom")

	rec := getSummary(t, NewDashboardHandler(svc, nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
