package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/LeSteak11/social-media-downloader/api/handlers"
	"github.com/LeSteak11/social-media-downloader/api/middleware"
	"github.com/LeSteak11/social-media-downloader/internal/app"
)

// SetupRouter sets up the HTTP router
func SetupRouter(service *app.Service, baseDir string, log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS())

	healthHandler := handlers.NewHealthHandler(service.ProviderIDs())
	router.GET("/health", healthHandler.Health)

	v1 := router.Group("/api/v1")
	{
		resolveHandler := handlers.NewResolveHandler(service, log)
		v1.POST("/resolve", resolveHandler.Resolve)

		downloadHandler := handlers.NewDownloadHandler(service, baseDir, log)
		v1.POST("/downloads", downloadHandler.Download)

		historyHandler := handlers.NewHistoryHandler(service, log)
		v1.GET("/history", historyHandler.List)
	}

	return router
}
