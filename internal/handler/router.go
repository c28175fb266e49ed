package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"pacectrl/internal/handler/api"
	"pacectrl/internal/handler/middleware"
	"pacectrl/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, widgetHandler *api.WidgetHandler, choiceHandler *api.ChoiceHandler, adminHandler *api.AdminHandler) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, widgetHandler, choiceHandler, adminHandler)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, widgetHandler *api.WidgetHandler, choiceHandler *api.ChoiceHandler, adminHandler *api.AdminHandler) {
	engine.GET("/health", healthCheck)
	engine.GET("/widget.js", widgetHandler.ServeScript)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api/v1")
	{
		public := apiGroup.Group("/public")
		{
			addRoutes(public, []route{
				{Method: http.MethodGet, Path: "/widget/config", Handler: widgetHandler.GetConfig},
				{Method: http.MethodPost, Path: "/choice-intents", Handler: choiceHandler.CreateIntent},
				{Method: http.MethodPost, Path: "/choice-confirmations", Handler: choiceHandler.ConfirmChoice},
			})
		}

		admin := apiGroup.Group("/admin")
		{
			addRoutes(admin, []route{
				{Method: http.MethodGet, Path: "/choice-intents", Handler: adminHandler.ListIntents},
				{Method: http.MethodGet, Path: "/choice-confirmations", Handler: adminHandler.ListConfirmations},
				{Method: http.MethodGet, Path: "/trip-average", Handler: adminHandler.TripAverage},
				{Method: http.MethodGet, Path: "/stream", Handler: adminHandler.Stream},
			})
		}
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
		"status": "ok",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, r.Handler)
		case http.MethodPost:
			g.POST(r.Path, r.Handler)
		case http.MethodPut:
			g.PUT(r.Path, r.Handler)
		case http.MethodPatch:
			g.PATCH(r.Path, r.Handler)
		case http.MethodDelete:
			g.DELETE(r.Path, r.Handler)
		default:
			g.Any(r.Path, r.Handler)
		}
	}
}
