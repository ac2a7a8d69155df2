package handlers

import (
	"net/http"

	"github.com/iwtcode/stationService/internal/config"
	"github.com/iwtcode/stationService/internal/interfaces"
	"github.com/iwtcode/stationService/internal/middleware/logging"
	"github.com/iwtcode/stationService/internal/middleware/swagger"

	"github.com/gin-gonic/gin"
)

// Handler - структура для обработчиков HTTP-запросов
type Handler struct {
	usecase interfaces.Usecases
	logger  *logging.Logger
}

// NewHandler создает новый экземпляр Handler
func NewHandler(usecase interfaces.Usecases, logger *logging.Logger) *Handler {
	return &Handler{
		usecase: usecase,
		logger:  logger.WithPrefix("HANDLER"),
	}
}

// ProvideRouter настраивает и возвращает HTTP-роутер
func ProvideRouter(h *Handler, cfg *config.AppConfig, swagCfg *swagger.Config) http.Handler {
	gin.SetMode(cfg.GinMode)

	router := gin.Default()

	// Swagger
	swagger.Setup(router, swagCfg)

	// Logger Middleware
	router.Use(LoggingMiddleware(h.logger))

	// Группа API v1
	v1 := router.Group("/api/v1")
	{
		sessions := v1.Group("/sessions")
		{
			sessions.POST("", h.CreateSession)
			sessions.GET("", h.GetSessions)
			sessions.DELETE("", h.DeleteSession)
			sessions.POST("/connect", h.Connect)
			sessions.POST("/disconnect", h.Disconnect)
			sessions.POST("/configure", h.Configure)
		}

		monitoring := v1.Group("/monitoring")
		{
			monitoring.POST("/start", h.StartMonitoring)
			monitoring.POST("/stop", h.StopMonitoring)
		}

		capture := v1.Group("/capture")
		{
			capture.POST("/response", h.SendCaptureResponse)
		}
	}

	return router
}
