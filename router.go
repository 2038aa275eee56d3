package main

import (
	"penguin-service/handlers"
	"penguin-service/middleware"
	"penguin-service/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRouter configures and returns the Gin router with all routes and middleware
func setupRouter(state *services.ModelState) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())

	h := handlers.New(state)

	router.GET("/health", h.Health)
	router.POST("/predict", h.Predict)

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
