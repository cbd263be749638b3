package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nurilloh-an/telegram-mini-app/adminauth"
	"github.com/nurilloh-an/telegram-mini-app/config"
	"github.com/nurilloh-an/telegram-mini-app/middleware"
)

// SetupRoutes is the single entry-point that wires up all API route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, res *adminauth.Resolver, cfg *config.Config) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(middleware.Identity())

	SetupUserRoutes(api, db, res)
	SetupCatalogRoutes(api, db, res, cfg)
	SetupOrderRoutes(api, db, res)
	SetupAdminRoutes(api, db, res)
}
