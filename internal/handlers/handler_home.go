package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getHome reports that the ledger API is up.
func getHome(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "Koperasi ledger API v1"})
}

// registerHealthRoutes registers the unauthenticated liveness routes.
func registerHealthRoutes(r *gin.Engine) {
	r.GET("/", getHome)
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
}
