package api

import (
	"fmt"
	"net/http"

	summaryDelivery "meetnotes-backend/internal/summary/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *Handler, summaryHandler *summaryDelivery.SummaryHandler) {
	// Service banner
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "Meeting Notes Summarizer API",
			"version":     "1.0.0",
			"description": "AI-powered meeting notes summarizer & sharer",
			"endpoints": gin.H{
				"health":    "/health",
				"summaries": "/api/summaries",
			},
		})
	})

	// Health check (no auth required)
	r.GET("/health", h.Health)

	api := r.Group("/api")
	{
		summaries := api.Group("/summaries")
		{
			summaries.POST("/generate", summaryHandler.Generate)
			summaries.GET("", summaryHandler.List)
			summaries.GET("/:id", summaryHandler.GetByID)
			summaries.PATCH("/:id", summaryHandler.Update)
			summaries.POST("/:id/share", summaryHandler.Share)
			summaries.DELETE("/:id", summaryHandler.Delete)
		}
	}

	// Unmatched routes return JSON, not the default text body
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not found",
			"message": fmt.Sprintf("The endpoint %s %s does not exist", c.Request.Method, c.Request.URL.Path),
		})
	})
}
