package api

import (
	"net"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/mercury-homes/lead-funnel/internal/api/handler"
	"github.com/mercury-homes/lead-funnel/internal/api/middleware"
	"github.com/mercury-homes/lead-funnel/internal/core/domain"
	"github.com/mercury-homes/lead-funnel/internal/core/ports"
	_ "github.com/mercury-homes/lead-funnel/internal/docs"
)

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Applications ports.ApplicationService
	Auth         ports.AuthService
	JWTSecret    string
	RateLimit    middleware.RateLimitConfig
	// TrustedProxies are the ranges allowed to set X-Forwarded-For. When
	// empty the client IP is the TCP peer address.
	TrustedProxies []*net.IPNet
	// Required and Optional feed the readiness probe.
	Required map[string]handler.Check
	Optional map[string]handler.Check
	// Location decides what "today" means on the dashboard.
	Location *time.Location
	Logger   zerolog.Logger
	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.IPExtractor = ipExtractor(d.TrustedProxies)
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(echomiddleware.BodyLimit("64K"))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "leadfunnel",
		Registerer: d.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/health"
		},
	}))

	// --- Handlers ---
	apps := handler.NewApplicationHandler(d.Applications)
	auth := handler.NewAuthHandler(d.Auth)
	dash := handler.NewDashboardHandler(d.Applications, d.Location)

	limit := middleware.RateLimit(d.RateLimit)
	admin := []echo.MiddlewareFunc{middleware.Auth(d.JWTSecret), middleware.RBAC(domain.RoleAdmin)}

	// --- Applications: public create, admin-only listing ---
	g := e.Group("/api/applications")
	g.POST("/renter", apps.CreateRenter, limit)
	g.GET("/renter", apps.ListRenters, admin...)
	g.POST("/landlord", apps.CreateLandlord, limit)
	g.GET("/landlord", apps.ListLandlords, admin...)

	// --- Admin ---
	e.POST("/api/admin/login", auth.Login, limit)
	e.GET("/api/admin/summary", dash.Summary, admin...)

	// --- Health probes (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(d.Required, d.Optional).Readiness)

	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// ipExtractor never trusts client-supplied headers unless the peer is one of
// the configured proxies.
func ipExtractor(trusted []*net.IPNet) echo.IPExtractor {
	if len(trusted) == 0 {
		return echo.ExtractIPDirect()
	}
	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, n := range trusted {
		opts = append(opts, echo.TrustIPRange(n))
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil || v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
