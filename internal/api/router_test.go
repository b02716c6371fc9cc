package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/mercury-homes/lead-funnel/internal/api/handler"
	"github.com/mercury-homes/lead-funnel/internal/api/middleware"
	"github.com/mercury-homes/lead-funnel/internal/core/domain"
	"github.com/mercury-homes/lead-funnel/internal/core/ports"
)

const testSecret = "router-secret"

type stubApplications struct{}

func (stubApplications) SubmitRenter(context.Context, ports.SubmitRenterInput) (*ports.SubmissionResult, error) {
	return &ports.SubmissionResult{ID: "r-1", CreatedAt: time.Now()}, nil
}

func (stubApplications) SubmitLandlord(context.Context, ports.SubmitLandlordInput) (*ports.SubmissionResult, error) {
	return &ports.SubmissionResult{ID: "l-1", CreatedAt: time.Now()}, nil
}

func (stubApplications) ListRenters(context.Context) ([]*domain.RenterApplication, error) {
	return []*domain.RenterApplication{{ID: "r-1", FullName: "Jo", CreatedAt: time.Now()}}, nil
}

func (stubApplications) ListLandlords(context.Context) ([]*domain.LandlordApplication, error) {
	return nil, nil
}

type stubAuth struct{}

func (stubAuth) EnsureAdmin(context.Context, string, string) (*domain.User, error) {
	return nil, nil
}

func (stubAuth) Login(_ context.Context, username, password string) (string, *domain.User, error) {
	if password != "pass" {
		return "", nil, domain.ErrInvalidCredentials
	}
	return signToken(username, domain.RoleAdmin), &domain.User{Username: username, Role: domain.RoleAdmin}, nil
}

func signToken(username, role string) string {
	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": username,
		"role":     role,
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	s, _ := tkn.SignedString([]byte(testSecret))
	return s
}

func newTestRouter(t *testing.T, burst int) *echo.Echo {
	t.Helper()
	reg := prometheus.NewRegistry()
	return NewRouter(Deps{
		Applications: stubApplications{},
		Auth:         stubAuth{},
		JWTSecret:    testSecret,
		RateLimit:    middleware.RateLimitConfig{RPS: 0.001, Burst: burst, Window: time.Minute, Logger: zerolog.Nop()},
		Required:     map[string]handler.Check{"mongodb": func(context.Context) error { return nil }},
		Location:     time.UTC,
		Logger:       zerolog.Nop(),
		Registerer:   reg,
		Gatherer:     reg,
	})
}

func call(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

const renterJSON = `{"fullName":"Jo","phone":"712345678","location":"nairobi-karen","budgetRange":"30k-50k"}`

func TestRouter_PublicCreate(t *testing.T) {
	e := newTestRouter(t, 5)

	rec := call(e, http.MethodPost, "/api/applications/renter", renterJSON, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	require.JSONEq(t, `{"success":true,"id":"r-1"}`, rec.Body.String())
	require.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestRouter_ListingRequiresAdmin(t *testing.T) {
	e := newTestRouter(t, 5)

	rec := call(e, http.MethodGet, "/api/applications/renter", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = call(e, http.MethodGet, "/api/applications/renter", "", signToken("eve", "viewer"))
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.JSONEq(t, `{"error":"forbidden"}`, rec.Body.String())

	rec = call(e, http.MethodGet, "/api/applications/renter", "", signToken("admin", domain.RoleAdmin))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"fullName":"Jo"`)

	rec = call(e, http.MethodGet, "/api/applications/landlord", "", signToken("admin", domain.RoleAdmin))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())
}

func TestRouter_LoginThenSummary(t *testing.T) {
	e := newTestRouter(t, 5)

	rec := call(e, http.MethodPost, "/api/admin/login", `{"username":"admin","password":"pass"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, jsonDecode(rec.Body, &login))
	require.NotEmpty(t, login.Token)

	rec = call(e, http.MethodGet, "/api/admin/summary", "", login.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"houseSeekers":1`)
	require.Contains(t, rec.Body.String(), `"propertyOwners":0`)
}

func TestRouter_RateLimitsSubmissions(t *testing.T) {
	e := newTestRouter(t, 2)

	for i := 0; i < 2; i++ {
		rec := call(e, http.MethodPost, "/api/applications/renter", renterJSON, "")
		require.Equal(t, http.StatusCreated, rec.Code, "request %d", i)
	}

	rec := call(e, http.MethodPost, "/api/applications/renter", renterJSON, "")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))

	// Health checks are never limited.
	rec = call(e, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_RateLimitIgnoresSpoofedForwardedFor(t *testing.T) {
	e := newTestRouter(t, 2)

	accepted := 0
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/applications/renter", strings.NewReader(renterJSON))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(echo.HeaderXForwardedFor, fmt.Sprintf("198.51.100.%d", i))
		req.RemoteAddr = "192.0.2.10:5555"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code == http.StatusCreated {
			accepted++
		}
	}
	require.Equal(t, 2, accepted)
}

func TestRouter_TrustedProxyForwardsClientIP(t *testing.T) {
	_, proxy, err := net.ParseCIDR("10.1.0.0/16")
	require.NoError(t, err)
	reg := prometheus.NewRegistry()
	e := NewRouter(Deps{
		Applications:   stubApplications{},
		Auth:           stubAuth{},
		JWTSecret:      testSecret,
		RateLimit:      middleware.RateLimitConfig{RPS: 0.001, Burst: 1, Window: time.Minute, Logger: zerolog.Nop()},
		TrustedProxies: []*net.IPNet{proxy},
		Logger:         zerolog.Nop(),
		Registerer:     reg,
		Gatherer:       reg,
	})

	post := func(remote, xff string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/applications/renter", strings.NewReader(renterJSON))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(echo.HeaderXForwardedFor, xff)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}

	// Behind the load balancer each client gets its own budget.
	require.Equal(t, http.StatusCreated, post("10.1.2.3:80", "203.0.113.1"))
	require.Equal(t, http.StatusCreated, post("10.1.2.3:80", "203.0.113.2"))
	require.Equal(t, http.StatusTooManyRequests, post("10.1.2.3:80", "203.0.113.1"))

	// A direct client cannot borrow someone else's address.
	require.Equal(t, http.StatusCreated, post("192.0.2.50:80", "203.0.113.3"))
	require.Equal(t, http.StatusTooManyRequests, post("192.0.2.50:80", "203.0.113.4"))
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	e := newTestRouter(t, 5)

	rec := call(e, http.MethodGet, "/health/ready", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"mongodb"`)

	call(e, http.MethodPost, "/api/applications/landlord",
		`{"fullName":"Ann","phone":"712345678","propertyType":"townhouse","location":"nakuru"}`, "")

	rec = call(e, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "requests_total")
}

func TestRouter_UnknownRoute(t *testing.T) {
	e := newTestRouter(t, 5)

	rec := call(e, http.MethodGet, "/nope", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"error":"Not Found"}`, rec.Body.String())
}

func jsonDecode(r io.Reader, v any) error {
	return json.NewDecoder(r).Decode(v)
}
