package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nurilloh-an/telegram-mini-app/adminauth"
	orderControllers "github.com/nurilloh-an/telegram-mini-app/controllers/order"
)

func SetupOrderRoutes(api *gin.RouterGroup, db *gorm.DB, res *adminauth.Resolver) {
	orders := api.Group("/orders")
	{
		// Create a new order (any known user)
		orders.POST("", orderControllers.CreateOrderHandler(db))

		// Fetch all orders, optionally filtered by status (admin)
		orders.GET("", orderControllers.ListOrdersHandler(db, res))

		// Export all orders as an Excel file (admin)
		orders.GET("/export-excel", orderControllers.ExportOrdersToExcelHandler(db, res))

		// Fetch orders for a specific user
		orders.GET("/user/:userID", orderControllers.ListUserOrdersHandler(db))

		// Update order status (admin)
		orders.PATCH("/:orderID", orderControllers.UpdateOrderStatusHandler(db, res))
	}
}
