package productcontroller

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nurilloh-an/telegram-mini-app/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.AdminPhoneNumber{},
	))
	return db
}

func TestRemoveProductsDetachesOrderItems(t *testing.T) {
	db := setupTestDB(t)

	category := models.Category{Name: "Food"}
	require.NoError(t, db.Create(&category).Error)
	price, err := models.MoneyFromString("10.00")
	require.NoError(t, err)
	product := models.Product{CategoryID: category.ID, Name: "Plov", Price: price}
	require.NoError(t, db.Create(&product).Error)

	user := models.User{TelegramID: 1, Name: "U", PhoneNumber: "1", PhoneNumberNormalized: "1"}
	require.NoError(t, db.Create(&user).Error)
	productID := product.ID
	order := models.Order{
		UserID:     user.ID,
		TotalPrice: price,
		Items: []models.OrderItem{{
			ProductID:   &productID,
			ProductName: product.Name,
			Quantity:    1,
			UnitPrice:   price,
			TotalPrice:  price,
		}},
	}
	require.NoError(t, db.Create(&order).Error)

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return removeProducts(tx, []uint{product.ID})
	}))

	var productCount int64
	require.NoError(t, db.Model(&models.Product{}).Count(&productCount).Error)
	assert.Zero(t, productCount)

	// The order line loses its catalog reference but keeps its snapshot.
	var item models.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).First(&item).Error)
	assert.Nil(t, item.ProductID)
	assert.Equal(t, "Plov", item.ProductName)
	assert.Equal(t, "10.00", item.UnitPrice.StringFixed(2))
}
