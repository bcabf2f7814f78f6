package routes

import (
	"net/http"

	"casos_backend/internal/handlers"
	"casos_backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const banner = "Seguimiento Casos API"

// StaticConfig - откуда и по какому префиксу отдаются загруженные файлы
type StaticConfig struct {
	URLPrefix string
	Dir       string
}

// RegisterRoutes регистрирует все HTTP маршруты.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	authMW gin.HandlerFunc,
	static StaticConfig,
) {
	ginRouter.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, banner)
	})
	ginRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))
	ginRouter.Static(static.URLPrefix, static.Dir)

	api := ginRouter.Group("/api")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.CatalogHandler.RegisterRoutes(api, authMW)
		appHandlers.CasoHandler.RegisterRoutes(api, authMW)
		appHandlers.SeguimientoHandler.RegisterRoutes(api, authMW)
		appHandlers.AdjuntoHandler.RegisterRoutes(api, authMW)
		appHandlers.EmailHandler.RegisterRoutes(api)
	}

	logger.Info("HTTP routes registered", "static", static.URLPrefix)
}
