package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nurilloh-an/telegram-mini-app/adminauth"
	adminController "github.com/nurilloh-an/telegram-mini-app/controllers/admin"
)

// SetupAdminRoutes registers the mutable admin phone registry endpoints.
// Every operation requires admin authority.
func SetupAdminRoutes(api *gin.RouterGroup, db *gorm.DB, res *adminauth.Resolver) {
	phones := api.Group("/admin/phone-numbers")
	{
		phones.GET("", adminController.ListPhonesHandler(db, res))
		phones.POST("", adminController.AddPhoneHandler(db, res))
		phones.DELETE("/:id", adminController.RemovePhoneHandler(db, res))
	}
}
