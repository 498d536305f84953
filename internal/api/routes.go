package api

import (
	"github.com/asset-hive/asset-service/cmd/middleware"
	"github.com/asset-hive/asset-service/internal/api/handlers"
	"github.com/gin-gonic/gin"
)

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	}
}

// RegisterRoutes wires the HTTP surface. requireAuth puts the mutating
// routes behind the OIDC middleware; retrieval stays public either way.
func RegisterRoutes(r *gin.Engine, requireAuth bool) {
	// Enable CORS for preflight requests
	r.Use(corsMiddleware())

	r.GET("/", handlers.Index)
	r.GET("/u/:blob_key", handlers.ViewFile) // inline rendering in the browser

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		api.GET("/files", handlers.ListFiles)             // list recent uploads
		api.GET("/stats", handlers.GetStats)              // aggregate upload stats
		api.GET("/search", handlers.SearchFiles)          // filename substring search
		api.GET("/download/:blob_key", handlers.Download) // attachment download
		api.GET("/upload/:blob_key", handlers.GetImage)   // image/thumbnail route

		mutating := api.Group("")
		if requireAuth {
			mutating.Use(middleware.RequireAuth())
		}
		mutating.POST("/upload", handlers.UploadFile)
		mutating.POST("/update-tags", handlers.UpdateTags)
	}
}
