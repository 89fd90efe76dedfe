package api

import (
	"strings"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/eventtune/web/internal/api/docs"
	"github.com/eventtune/web/internal/api/handler"
	"github.com/eventtune/web/internal/api/middleware"
	"github.com/eventtune/web/internal/api/view"
	"github.com/eventtune/web/internal/core/domain"
	"github.com/eventtune/web/internal/core/ports"
	"github.com/eventtune/web/internal/core/service"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Backend ports.BackendFactory
	Store   ports.TokenStore
	// Checks are the readiness probes, keyed by dependency name.
	Checks        map[string]handler.Check
	SecureCookies bool
	Log           zerolog.Logger

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
	// Now defaults to time.Now.
	Now func() time.Time
}

// Router is the configured Echo instance plus the dashboards it hosts.
type Router struct {
	*echo.Echo
	Dashboards *handler.DashboardHandler
}

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(d Deps) *Router {
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Renderer = view.MustRenderer()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "eventtune_web",
		Registerer: d.Registerer,
		Skipper:    operational,
	}))
	e.Use(middleware.Session(middleware.SessionConfig{
		Store:   d.Store,
		Secure:  d.SecureCookies,
		Now:     d.Now,
		Log:     d.Log,
		Skipper: operational,
	}))

	// --- Dependencies ---
	authService := service.NewAuthService(d.Backend, d.Now, d.Log)
	appService := service.NewApplicationService(d.Backend)

	dashboards := handler.NewDashboardHandler(d.Backend, d.SecureCookies, d.Log)
	authHandler := handler.NewAuthHandler(authService, d.SecureCookies, dashboards.Forget, d.Log)
	pageHandler := handler.NewPageHandler(appService, d.SecureCookies, d.Log)
	sessionHandler := handler.NewSessionHandler()

	// --- Public pages ---
	e.GET("/", pageHandler.Landing)
	e.GET("/login", authHandler.LoginPage)
	e.POST("/login", authHandler.Login)
	e.GET("/register", authHandler.RegisterPage)
	e.POST("/register", authHandler.Register)
	e.POST("/logout", authHandler.Logout)
	e.GET("/apply", pageHandler.ApplyPage)
	e.POST("/apply", pageHandler.Apply)

	// --- Role dashboards ---
	admin := e.Group("/admin", middleware.RequireRole(domain.RoleAdmin))
	admin.GET("/dashboard", dashboards.Admin)
	admin.POST("/dashboard/refresh", dashboards.Admin)
	admin.POST("/applications/:id/approve", dashboards.Approve)
	admin.POST("/applications/:id/reject", dashboards.Reject)

	artist := e.Group("/artist", middleware.RequireRole(domain.RoleArtist))
	artist.GET("/dashboard", dashboards.Artist)
	artist.POST("/dashboard/refresh", dashboards.Artist)

	user := e.Group("/user", middleware.RequireRole(domain.RoleUser))
	user.GET("/dashboard", dashboards.User)
	user.POST("/dashboard/refresh", dashboards.User)
	user.POST("/profile", dashboards.UpdateProfile)

	// --- JSON ---
	e.GET("/api/session", sessionHandler.Session)

	// --- Operational (no session) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Checks)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return &Router{Echo: e, Dashboards: dashboards}
}

func operational(c echo.Context) bool {
	p := c.Request().URL.Path
	return strings.HasPrefix(p, "/health") || p == "/metrics" || strings.HasPrefix(p, "/swagger/")
}
