package api

import (
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/Surajbalal/Animal-Guard/docs"
	"github.com/Surajbalal/Animal-Guard/internal/api/handler"
	"github.com/Surajbalal/Animal-Guard/internal/api/middleware"
	"github.com/Surajbalal/Animal-Guard/internal/core/domain"
	"github.com/Surajbalal/Animal-Guard/internal/core/ports"
	"github.com/Surajbalal/Animal-Guard/internal/infrastructure/http/handlers"
)

// bodyLimit covers five 10MB attachments plus form fields.
const bodyLimit = "60M"

// Dependencies are the services the HTTP layer is built on.
type Dependencies struct {
	Auth      ports.AuthService
	Reports   ports.ReportService
	Directory ports.DirectoryService
	Admin     ports.AdminService
	// Readiness maps dependency names to their probes for /health/ready.
	Readiness map[string]handlers.Check
	// Registerer receives the HTTP metrics. Defaults to the global registry.
	Registerer prometheus.Registerer
	Logger     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "animalguard",
		Registerer: deps.Registerer,
		Skipper:    skipProbes,
	}))
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.BodyLimit(bodyLimit))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	reportHandler := handler.NewReportHandler(deps.Reports)
	directoryHandler := handler.NewDirectoryHandler(deps.Directory)
	caseHandler := handler.NewCaseHandler(deps.Reports)
	adminHandler := handler.NewAdminHandler(deps.Admin, deps.Directory, deps.Reports)
	authMiddleware := middleware.Auth(deps.Auth)

	// --- Public reporting ---
	e.POST("/api/reports", reportHandler.Submit)
	e.GET("/api/reports/track/:id", reportHandler.Track)
	e.GET("/api/reports/:id/matches", directoryHandler.Matches)
	e.GET("/api/ngos/approved", directoryHandler.Approved)

	// --- Accounts, one login per role ---
	ngo := e.Group("/api/ngo")
	ngo.POST("/register", authHandler.Register)
	mountSession(ngo, authHandler, authMiddleware, domain.RoleNGO)
	mountSession(e.Group("/api/ngo-admin"), authHandler, authMiddleware, domain.RoleNgoAdmin)
	superAdmin := e.Group("/api/super-admin")
	mountSession(superAdmin, authHandler, authMiddleware, domain.RoleSuperAdmin)

	// --- NGO dashboard ---
	caseAccess := []echo.MiddlewareFunc{authMiddleware, middleware.RBAC(domain.RoleNGO, domain.RoleNgoAdmin)}
	ngo.GET("/cases", caseHandler.Cases, caseAccess...)
	ngo.GET("/stats", caseHandler.Stats, caseAccess...)
	ngo.PUT("/cases/:id/accept", caseHandler.Accept, caseAccess...)
	ngo.PUT("/cases/:id/reject", caseHandler.Reject, caseAccess...)
	ngo.PUT("/cases/:id/status", caseHandler.UpdateStatus, caseAccess...)

	// --- Super admin console ---
	adminAccess := []echo.MiddlewareFunc{authMiddleware, middleware.RBAC(domain.RoleSuperAdmin)}
	for _, g := range []*echo.Group{e.Group("/api/admin"), superAdmin} {
		g.GET("/stats", adminHandler.Stats, adminAccess...)
		g.GET("/ngos", adminHandler.Ngos, adminAccess...)
		g.GET("/reports", adminHandler.Reports, adminAccess...)
		g.GET("/ngo-admins", adminHandler.NgoAdmins, adminAccess...)
		g.PUT("/ngos/:id/:action", adminHandler.DecideNgo, adminAccess...)
		g.PUT("/reports/:id/suspend", adminHandler.SuspendReport, adminAccess...)
		g.POST("/ngo-admins", adminHandler.CreateNgoAdmin, adminAccess...)
		g.DELETE("/ngo-admins/:id", adminHandler.DeleteNgoAdmin, adminAccess...)
	}

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	readinessHandler := handlers.NewReadinessHandler(deps.Readiness)

	e.GET("/health", healthHandler.Liveness)           // liveness
	e.GET("/health/ready", readinessHandler.Readiness) // readiness

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// mountSession registers login, profile and logout for one role.
func mountSession(g *echo.Group, h *handler.AuthHandler, auth echo.MiddlewareFunc, role domain.Role) {
	g.POST("/login", h.Login(role))
	g.GET("/profile", h.Profile, auth, middleware.RBAC(role))
	g.POST("/logout", h.Logout, auth, middleware.RBAC(role))
}

func skipProbes(c echo.Context) bool {
	p := c.Path()
	return p == "/metrics" || strings.HasPrefix(p, "/health") || strings.HasPrefix(p, "/swagger")
}
