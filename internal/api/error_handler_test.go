package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mercury-homes/lead-funnel/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		body string
	}{
		{"echo error", echo.NewHTTPError(http.StatusUnauthorized, "invalid token"), 401, `{"error":"invalid token"}`},
		{"not found route", echo.ErrNotFound, 404, `{"error":"Not Found"}`},
		{"in flight", fmt.Errorf("submit: %w", domain.ErrSubmissionInFlight), 409, `{"error":"submission already in progress"}`},
		{"credentials", domain.ErrInvalidCredentials, 401, `{"error":"invalid credentials"}`},
		{"unexpected", errors.New("mongo: socket closed"), 500, `{"error":"internal server error"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var logs bytes.Buffer
			e := echo.New()
			e.HTTPErrorHandler = NewHTTPErrorHandler(zerolog.New(&logs))

			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/x", nil), rec)
			e.HTTPErrorHandler(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			if strings.TrimSpace(rec.Body.String()) != tc.body {
				t.Fatalf("unexpected body %s", rec.Body.String())
			}
			if tc.code == 500 && !strings.Contains(logs.String(), "socket closed") {
				t.Fatalf("expected real cause in logs, got %q", logs.String())
			}
			if tc.code == 500 && strings.Contains(rec.Body.String(), "socket") {
				t.Fatal("internal detail leaked to client")
			}
		})
	}
}
