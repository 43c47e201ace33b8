package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/v4tech/servicedesk/internal/api/docs"
	"github.com/v4tech/servicedesk/internal/api/handler"
	"github.com/v4tech/servicedesk/internal/api/middleware"
	"github.com/v4tech/servicedesk/internal/core/ports"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Auth            ports.AuthService
	ServiceRequests ports.ServiceRequestService
	Reviews         ports.ReviewService
	Complaints      ports.ComplaintService
	Contact         ports.ContactService
	Stats           ports.StatsService
	HealthChecks    map[string]handler.HealthCheck
}

// Options are transport-level settings.
type Options struct {
	Cookie          handler.CookieConfig
	CORSOrigins     []string
	PublicRateLimit float64
	// Metrics mounts the Prometheus middleware and /metrics. The collectors
	// register globally, so only one router per process may enable it.
	Metrics bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps, opts Options, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(log))
	if len(opts.CORSOrigins) > 0 {
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins:     opts.CORSOrigins,
			AllowCredentials: true,
		}))
	}
	if opts.Metrics {
		e.Use(echoprometheus.NewMiddleware("servicedesk"))
		e.GET("/metrics", echoprometheus.NewHandler())
	}

	// --- Health probes and docs (no auth required) ---
	healthHandler := handler.NewHealthHandler(deps.HealthChecks)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, opts.Cookie, log)
	requestHandler := handler.NewServiceRequestHandler(deps.ServiceRequests)
	reviewHandler := handler.NewReviewHandler(deps.Reviews)
	complaintHandler := handler.NewComplaintHandler(deps.Complaints)
	contactHandler := handler.NewContactHandler(deps.Contact)
	statsHandler := handler.NewStatsHandler(deps.Stats)

	guard := middleware.Auth(deps.Auth, log)
	public := middleware.PublicRateLimit(opts.PublicRateLimit)

	api := e.Group("/api")

	// --- Auth ---
	api.POST("/auth/local-login", authHandler.LocalLogin, public)
	api.POST("/auth/session", authHandler.Session, public)
	api.GET("/auth/me", authHandler.Me, guard)
	api.POST("/auth/logout", authHandler.Logout)

	// --- Service requests ---
	api.POST("/customer-details", requestHandler.Create, public)
	api.GET("/customer-details", requestHandler.List, guard)
	api.PATCH("/customer-details/:id/status", requestHandler.UpdateStatus, guard)
	api.PATCH("/customer-details/:id", requestHandler.Update, guard)
	api.DELETE("/customer-details/:id", requestHandler.Delete, guard)

	// --- Reviews ---
	api.POST("/reviews", reviewHandler.Create, public)
	api.GET("/reviews", reviewHandler.List)
	api.PATCH("/reviews/:id/approve", reviewHandler.Approve, guard)
	api.PATCH("/reviews/:id", reviewHandler.Update, guard)
	api.DELETE("/reviews/:id", reviewHandler.Delete, guard)

	// --- Complaints ---
	api.POST("/complaints", complaintHandler.Create, public)
	api.GET("/complaints/search/:term", complaintHandler.Search)
	api.GET("/complaints", complaintHandler.List, guard)
	api.PATCH("/complaints/:key/status", complaintHandler.UpdateStatus, guard)
	api.DELETE("/complaints/:key", complaintHandler.Delete, guard)

	// --- Contact ---
	api.POST("/contact", contactHandler.Create, public)
	api.GET("/contact", contactHandler.List, guard)
	api.DELETE("/contact/:id", contactHandler.Delete, guard)

	// --- Stats ---
	api.GET("/stats", statsHandler.Get, guard)

	return e
}

// requestLogger feeds Echo's request logger into zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
