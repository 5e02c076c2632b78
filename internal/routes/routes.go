package routes

import (
	"net/http"

	"gigconnect/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts every handler. API endpoints live under
// /api/v1; file serving stays at the root so stored URLs are short.
func RegisterRoutes(router *gin.Engine, h *handlers.AppHandlers) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	root := router.Group("")
	h.File.RegisterRoutes(root)

	api := router.Group("/api/v1")
	{
		h.Auth.RegisterRoutes(api)
		h.Gig.RegisterRoutes(api)
		h.Profile.RegisterRoutes(api)
	}
}
