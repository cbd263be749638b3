package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nurilloh-an/telegram-mini-app/adminauth"
	"github.com/nurilloh-an/telegram-mini-app/apperr"
	"github.com/nurilloh-an/telegram-mini-app/middleware"
	"github.com/nurilloh-an/telegram-mini-app/models"
)

// removeProducts deletes catalog products and detaches them from historical
// orders: order_items keep their snapshot fields but their product_id is
// nulled out. Runs inside the caller's transaction.
func removeProducts(tx *gorm.DB, productIDs []uint) error {
	if len(productIDs) == 0 {
		return nil
	}
	if err := tx.Model(&models.OrderItem{}).
		Where("product_id IN ?", productIDs).
		Update("product_id", nil).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Product{}, productIDs).Error
}

// DeleteProduct removes a product from the catalog (admin).
func DeleteProduct(db *gorm.DB, res *adminauth.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		telegramID, phone := middleware.CallerIdentity(c)
		if err := res.EnsureAdmin(db, telegramID, phone); err != nil {
			c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			return removeProducts(tx, []uint{product.ID})
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}
