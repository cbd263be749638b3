package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nurilloh-an/telegram-mini-app/adminauth"
	"github.com/nurilloh-an/telegram-mini-app/config"
	productcontroller "github.com/nurilloh-an/telegram-mini-app/controllers/product"
)

// SetupCatalogRoutes registers category and product endpoints. Reads are
// public; writes require admin authority.
func SetupCatalogRoutes(api *gin.RouterGroup, db *gorm.DB, res *adminauth.Resolver, cfg *config.Config) {
	categories := api.Group("/categories")
	{
		categories.GET("", productcontroller.GetAllCategories(db))
		categories.GET("/:id", productcontroller.GetCategoryByID(db))
		categories.POST("", productcontroller.CreateCategory(db, res, cfg))
		categories.PUT("/:id", productcontroller.UpdateCategory(db, res, cfg))
		categories.DELETE("/:id", productcontroller.DeleteCategory(db, res))
	}

	products := api.Group("/products")
	{
		products.GET("", productcontroller.GetProducts(db))
		products.GET("/:id", productcontroller.GetProductByID(db))
		products.POST("", productcontroller.CreateProduct(db, res, cfg))
		products.PUT("/:id", productcontroller.UpdateProduct(db, res, cfg))
		products.DELETE("/:id", productcontroller.DeleteProduct(db, res))
	}
}
