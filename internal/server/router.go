package server

import (
  "github.com/gin-gonic/gin"
  "github.com/gin-contrib/cors"
  "github.com/wellsync/wellsync-backend/internal/handlers"
)

type RouterConfig struct {
  RecommendationHandler  *handlers.RecommendationHandler
  InsightsHandler        *handlers.InsightsHandler
  EventTriggerHandler    *handlers.EventTriggerHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:3000",
      "http://localhost:5173",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

  router.GET("/healthcheck", handlers.HealthCheck)

  api := router.Group("/api")
  {
    api.GET("/recommendations/today", cfg.RecommendationHandler.GetToday)
    api.GET("/insights", cfg.InsightsHandler.GetInsights)
    api.POST("/events/trigger", cfg.EventTriggerHandler.Trigger)
  }

  return router
}
