package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nurilloh-an/telegram-mini-app/adminauth"
	"github.com/nurilloh-an/telegram-mini-app/apperr"
	"github.com/nurilloh-an/telegram-mini-app/config"
	"github.com/nurilloh-an/telegram-mini-app/middleware"
	"github.com/nurilloh-an/telegram-mini-app/models"
)

// GetAllCategories returns all categories.
func GetAllCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

// GetCategoryByID returns one category with its products attached.
func GetCategoryByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.Preload("Products").First(&category, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

// CreateCategory creates a category with an optional image upload (admin).
func CreateCategory(db *gorm.DB, res *adminauth.Resolver, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		telegramID, phone := middleware.CallerIdentity(c)
		if err := res.EnsureAdmin(db, telegramID, phone); err != nil {
			c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
			return
		}

		name := c.PostForm("name")
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}

		category := models.Category{Name: name}
		if file, err := c.FormFile("image"); err == nil {
			imageURL, saveErr := saveUploadedImage(c, cfg, file, "categories")
			if saveErr != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": saveErr.Error()})
				return
			}
			category.Image = imageURL
		}

		if err := db.Create(&category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}

// UpdateCategory renames a category and optionally replaces its image (admin).
func UpdateCategory(db *gorm.DB, res *adminauth.Resolver, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		telegramID, phone := middleware.CallerIdentity(c)
		if err := res.EnsureAdmin(db, telegramID, phone); err != nil {
			c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
			return
		}

		var category models.Category
		if err := db.First(&category, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}

		if name := c.PostForm("name"); name != "" {
			category.Name = name
		}
		if file, err := c.FormFile("image"); err == nil {
			imageURL, saveErr := saveUploadedImage(c, cfg, file, "categories")
			if saveErr != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": saveErr.Error()})
				return
			}
			category.Image = imageURL
		}

		if err := db.Save(&category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

// DeleteCategory removes a category and its products (admin). Deletion
// cascades to the owned products, which in turn detach from historical
// orders the same way a direct product delete does.
func DeleteCategory(db *gorm.DB, res *adminauth.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		telegramID, phone := middleware.CallerIdentity(c)
		if err := res.EnsureAdmin(db, telegramID, phone); err != nil {
			c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
			return
		}

		var category models.Category
		if err := db.Preload("Products").First(&category, c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			productIDs := make([]uint, 0, len(category.Products))
			for _, product := range category.Products {
				productIDs = append(productIDs, product.ID)
			}
			if err := removeProducts(tx, productIDs); err != nil {
				return err
			}
			return tx.Delete(&category).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
	}
}
