package orderControllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nurilloh-an/telegram-mini-app/adminauth"
	"github.com/nurilloh-an/telegram-mini-app/apperr"
	"github.com/nurilloh-an/telegram-mini-app/middleware"
	"github.com/nurilloh-an/telegram-mini-app/models"
)

// -------- Request Structs --------

type OrderItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

type CreateOrderRequest struct {
	UserID  uint               `json:"user_id" binding:"required"`
	Comment string             `json:"comment"`
	Items   []OrderItemRequest `json:"items"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// -------- Helpers --------

// Map string to OrderStatus
func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch strings.ToLower(status) {
	case string(models.OrderStatusPending):
		return models.OrderStatusPending, nil
	case string(models.OrderStatusCompleted):
		return models.OrderStatusCompleted, nil
	default:
		return "", apperr.NewValidation("invalid order status %q", status)
	}
}

// productSnapshot reads the product fields that get copied onto an order
// line. It must run inside the order's transaction so every line of one
// order sees the same catalog state.
func productSnapshot(tx *gorm.DB, productID uint) (*models.Product, error) {
	var product models.Product
	if err := tx.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("product", productID)
		}
		return nil, err
	}
	return &product, nil
}

// -------- Core Logic --------

// CreateOrder validates the request, snapshots every requested product and
// persists the order with its items as one atomic unit. Any miss aborts the
// whole operation; no partial order is ever written.
func CreateOrder(db *gorm.DB, req CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, apperr.NewValidation("order must contain at least one item")
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, apperr.NewValidation("quantity for product %d must be a positive integer", item.ProductID)
		}
	}

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, req.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewNotFound("user", nil)
			}
			return err
		}

		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(req.Items))
		for _, reqItem := range req.Items {
			product, err := productSnapshot(tx, reqItem.ProductID)
			if err != nil {
				return err
			}

			lineTotal := product.Price.MulInt(reqItem.Quantity)
			productID := product.ID
			items = append(items, models.OrderItem{
				ProductID:     &productID,
				ProductName:   product.Name,
				ProductImage:  product.Image,
				ProductDetail: product.Detail,
				Quantity:      reqItem.Quantity,
				UnitPrice:     product.Price,
				TotalPrice:    lineTotal,
			})
			total = total.Add(lineTotal.Decimal)
		}

		order = models.Order{
			UserID:     user.ID,
			Status:     models.OrderStatusPending,
			TotalPrice: models.NewMoney(total),
			Comment:    req.Comment,
			Items:      items,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		order.User = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders returns orders newest-first, optionally filtered by status,
// with user and items attached.
func ListOrders(db *gorm.DB, status string) ([]models.Order, error) {
	query := db.
		Preload("User").
		Preload("Items").
		Order("created_at DESC")
	if status != "" {
		mapped, err := mapOrderStatus(status)
		if err != nil {
			return nil, err
		}
		query = query.Where("status = ?", mapped)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ListUserOrders returns one user's orders, newest-first.
func ListUserOrders(db *gorm.DB, userID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := db.
		Where("user_id = ?", userID).
		Preload("User").
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus sets the order status and bumps updated_at. Everything
// else on the order stays immutable.
func UpdateOrderStatus(db *gorm.DB, orderID uint, status models.OrderStatus) (*models.Order, error) {
	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("order", orderID)
		}
		return nil, err
	}

	if err := db.Model(&order).Update("status", status).Error; err != nil {
		return nil, err
	}

	if err := db.
		Preload("User").
		Preload("Items").
		First(&order, order.ID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// -------- Handlers --------

// Place a new order (any known user)
func CreateOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		order, err := CreateOrder(db, req)
		if err != nil {
			c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

// Fetch all orders (admin)
func ListOrdersHandler(db *gorm.DB, res *adminauth.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		telegramID, phone := middleware.CallerIdentity(c)
		if err := res.EnsureAdmin(db, telegramID, phone); err != nil {
			c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
			return
		}
		orders, err := ListOrders(db, c.Query("status"))
		if err != nil {
			c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// Fetch orders for a specific user
func ListUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("userID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}
		orders, listErr := ListUserOrders(db, uint(userID))
		if listErr != nil {
			c.JSON(apperr.Status(listErr), gin.H{"error": listErr.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// Update order status (admin)
func UpdateOrderStatusHandler(db *gorm.DB, res *adminauth.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		telegramID, phone := middleware.CallerIdentity(c)
		if err := res.EnsureAdmin(db, telegramID, phone); err != nil {
			c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
			return
		}

		orderID, err := strconv.ParseUint(c.Param("orderID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		status, err := mapOrderStatus(req.Status)
		if err != nil {
			c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
			return
		}

		order, err := UpdateOrderStatus(db, uint(orderID), status)
		if err != nil {
			c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
