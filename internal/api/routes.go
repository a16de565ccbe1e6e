package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler, corsOrigins []string) {
	router.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	api := router.Group("/api")
	{
		api.GET("/health", handler.Health)
		api.POST("/sync", handler.RunSync)
		api.GET("/dashboard", handler.GetDashboard)
		api.GET("/forecast", handler.GetForecast)
	}
}
