package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"commons-dinner/internal/handler/api"
	"commons-dinner/internal/handler/middleware"
	"commons-dinner/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Orders  *api.OrderHandler
	Dinners *api.DinnerHandler
	Seasons *api.SeasonHandler
	Billing *api.BillingHandler
	Jobs    *api.JobHandler
	Users   *api.UserHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(logger))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		public := apiGroup.Group("/public")
		addRoutes(public, []route{
			{Method: http.MethodGet, Path: "/billing/:token", Handler: h.Billing.PublicSummary},
		})

		member := apiGroup.Group("")
		member.Use(authMiddleware.RequireAuth())
		admin := authMiddleware.RequireAdmin()

		addRoutes(member, []route{
			{Method: http.MethodGet, Path: "/me", Handler: h.Users.Me},

			{Method: http.MethodPost, Path: "/orders", Handler: h.Orders.Book},
			{Method: http.MethodGet, Path: "/orders/:id", Handler: h.Orders.Get},
			{Method: http.MethodGet, Path: "/orders/:id/history", Handler: h.Orders.History},
			{Method: http.MethodPost, Path: "/orders/:id/release", Handler: h.Orders.Release},
			{Method: http.MethodPost, Path: "/orders/:id/claim", Handler: h.Orders.Claim},
			{Method: http.MethodPut, Path: "/orders/:id/dining-mode", Handler: h.Orders.ChangeDiningMode},
			{Method: http.MethodPost, Path: "/orders/:id/cancel", Handler: h.Orders.Cancel, Mw: []gin.HandlerFunc{admin}},

			{Method: http.MethodGet, Path: "/dinners", Handler: h.Dinners.List},
			{Method: http.MethodPost, Path: "/dinners", Handler: h.Dinners.Create, Mw: []gin.HandlerFunc{admin}},
			{Method: http.MethodGet, Path: "/dinners/:id", Handler: h.Dinners.Get},
			{Method: http.MethodGet, Path: "/dinners/:id/chef", Handler: h.Dinners.Chef},
			{Method: http.MethodGet, Path: "/dinners/:id/orders", Handler: h.Dinners.Orders},
			{Method: http.MethodPost, Path: "/dinners/:id/announce", Handler: h.Dinners.Announce, Mw: []gin.HandlerFunc{admin}},
			{Method: http.MethodPost, Path: "/dinners/:id/consume", Handler: h.Dinners.Consume, Mw: []gin.HandlerFunc{admin}},
			{Method: http.MethodPost, Path: "/dinners/:id/cancel", Handler: h.Dinners.Cancel, Mw: []gin.HandlerFunc{admin}},

			{Method: http.MethodPost, Path: "/seasons", Handler: h.Seasons.Create, Mw: []gin.HandlerFunc{admin}},
			{Method: http.MethodGet, Path: "/seasons/active", Handler: h.Seasons.Active},
			{Method: http.MethodGet, Path: "/seasons/:id", Handler: h.Seasons.Get},
			{Method: http.MethodPost, Path: "/seasons/:id/activate", Handler: h.Seasons.Activate, Mw: []gin.HandlerFunc{admin}},
			{Method: http.MethodPost, Path: "/seasons/:id/teams", Handler: h.Seasons.CreateTeam, Mw: []gin.HandlerFunc{admin}},
			{Method: http.MethodGet, Path: "/seasons/:id/rotation", Handler: h.Seasons.Rotation},
			{Method: http.MethodGet, Path: "/seasons/:id/allocation", Handler: h.Seasons.Allocation},
			{Method: http.MethodPost, Path: "/teams/:teamId/assignments", Handler: h.Seasons.Assign, Mw: []gin.HandlerFunc{admin}},

			{Method: http.MethodPost, Path: "/billing/periods/:period/close", Handler: h.Billing.ClosePeriod, Mw: []gin.HandlerFunc{admin}},
			{Method: http.MethodGet, Path: "/billing/periods/:period", Handler: h.Billing.Period, Mw: []gin.HandlerFunc{admin}},
			{Method: http.MethodGet, Path: "/invoices/:id", Handler: h.Billing.Invoice, Mw: []gin.HandlerFunc{admin}},

			{Method: http.MethodPost, Path: "/jobs/:type/trigger", Handler: h.Jobs.Trigger, Mw: []gin.HandlerFunc{admin}},
			{Method: http.MethodGet, Path: "/jobs/runs", Handler: h.Jobs.ListRuns, Mw: []gin.HandlerFunc{admin}},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
