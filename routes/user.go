package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nurilloh-an/telegram-mini-app/adminauth"
	userControllers "github.com/nurilloh-an/telegram-mini-app/controllers/user"
)

func SetupUserRoutes(api *gin.RouterGroup, db *gorm.DB, res *adminauth.Resolver) {
	users := api.Group("/users")
	{
		// Create on first contact, refresh profile on every later one
		users.POST("", userControllers.UpsertUserHandler(db, res))

		// Fetch by Telegram id (self-heals the cached admin flag)
		users.GET("/:telegramID", userControllers.GetUserHandler(db, res))
	}
}
