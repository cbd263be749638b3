package orderControllers

import (
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nurilloh-an/telegram-mini-app/apperr"
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

func seedUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{
		TelegramID:            100,
		Name:                  "Customer",
		PhoneNumber:           "+998 90 123-45-67",
		PhoneNumberNormalized: "998901234567",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, name, price string) models.Product {
	t.Helper()
	var category models.Category
	err := db.First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		category = models.Category{Name: "Food"}
		require.NoError(t, db.Create(&category).Error)
	} else {
		require.NoError(t, err)
	}

	amount, err := models.MoneyFromString(price)
	require.NoError(t, err)
	product := models.Product{
		CategoryID: category.ID,
		Name:       name,
		Price:      amount,
		Detail:     "detail of " + name,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func TestCreateOrderTotals(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	plov := seedProduct(t, db, "Plov", "10.00")
	somsa := seedProduct(t, db, "Somsa", "5.50")

	order, err := CreateOrder(db, CreateOrderRequest{
		UserID:  user.ID,
		Comment: "no onions",
		Items: []OrderItemRequest{
			{ProductID: plov.ID, Quantity: 2},
			{ProductID: somsa.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "25.50", order.TotalPrice.StringFixed(2))
	require.Len(t, order.Items, 2)
	assert.Equal(t, "20.00", order.Items[0].TotalPrice.StringFixed(2))
	assert.Equal(t, "5.50", order.Items[1].TotalPrice.StringFixed(2))
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, user.ID, order.User.ID)

	// The order total is exactly the sum of its line totals.
	sum := decimal.Zero
	for _, item := range order.Items {
		assert.True(t, item.UnitPrice.MulInt(item.Quantity).Equal(item.TotalPrice.Decimal))
		sum = sum.Add(item.TotalPrice.Decimal)
	}
	assert.True(t, order.TotalPrice.Equal(sum))

	var persisted models.Order
	require.NoError(t, db.Preload("Items").First(&persisted, order.ID).Error)
	assert.Len(t, persisted.Items, 2)
}

func TestCreateOrderSnapshotSurvivesCatalogChanges(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	product := seedProduct(t, db, "Lagman", "7.25")

	order, err := CreateOrder(db, CreateOrderRequest{
		UserID: user.ID,
		Items:  []OrderItemRequest{{ProductID: product.ID, Quantity: 3}},
	})
	require.NoError(t, err)

	// Reprice, rename and then drop the product entirely.
	newPrice, err := models.MoneyFromString("99.99")
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{"price": newPrice, "name": "Renamed"}).Error)
	require.NoError(t, db.Delete(&models.Product{}, product.ID).Error)

	var item models.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).First(&item).Error)
	assert.Equal(t, "Lagman", item.ProductName)
	assert.Equal(t, "detail of Lagman", item.ProductDetail)
	assert.Equal(t, "7.25", item.UnitPrice.StringFixed(2))
	assert.Equal(t, "21.75", item.TotalPrice.StringFixed(2))
}

func TestCreateOrderEmptyItems(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)

	_, err := CreateOrder(db, CreateOrderRequest{UserID: user.ID})
	var validation *apperr.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestCreateOrderNonPositiveQuantity(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	product := seedProduct(t, db, "Plov", "10.00")

	_, err := CreateOrder(db, CreateOrderRequest{
		UserID: user.ID,
		Items:  []OrderItemRequest{{ProductID: product.ID, Quantity: 0}},
	})
	var validation *apperr.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestCreateOrderUnknownProductRollsBack(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	product := seedProduct(t, db, "Plov", "10.00")

	_, err := CreateOrder(db, CreateOrderRequest{
		UserID: user.ID,
		Items: []OrderItemRequest{
			{ProductID: product.ID, Quantity: 1},
			{ProductID: 9999, Quantity: 1},
		},
	})
	var notFound *apperr.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "product", notFound.Entity)
	assert.EqualError(t, err, "product 9999 not found")

	// Nothing persisted: the whole unit rolled back.
	var orderCount, itemCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&itemCount).Error)
	assert.Zero(t, orderCount)
	assert.Zero(t, itemCount)
}

func TestCreateOrderUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Plov", "10.00")

	_, err := CreateOrder(db, CreateOrderRequest{
		UserID: 9999,
		Items:  []OrderItemRequest{{ProductID: product.ID, Quantity: 1}},
	})
	var notFound *apperr.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "user", notFound.Entity)
}

func TestListOrdersNewestFirstWithFilter(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	product := seedProduct(t, db, "Plov", "10.00")

	first, err := CreateOrder(db, CreateOrderRequest{
		UserID: user.ID,
		Items:  []OrderItemRequest{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	second, err := CreateOrder(db, CreateOrderRequest{
		UserID: user.ID,
		Items:  []OrderItemRequest{{ProductID: product.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	// Push the first order into the past so ordering is deterministic.
	require.NoError(t, db.Model(&models.Order{}).
		Where("id = ?", first.ID).
		UpdateColumn("created_at", time.Now().Add(-time.Hour)).Error)

	orders, err := ListOrders(db, "")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
	assert.Equal(t, user.Name, orders[0].User.Name)
	assert.Len(t, orders[0].Items, 1)

	_, err = UpdateOrderStatus(db, first.ID, models.OrderStatusCompleted)
	require.NoError(t, err)

	completed, err := ListOrders(db, "completed")
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, first.ID, completed[0].ID)

	_, err = ListOrders(db, "shipped")
	var validation *apperr.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestListUserOrders(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	otherUser := models.User{TelegramID: 200, Name: "Other", PhoneNumber: "555", PhoneNumberNormalized: "555"}
	require.NoError(t, db.Create(&otherUser).Error)
	product := seedProduct(t, db, "Plov", "10.00")

	_, err := CreateOrder(db, CreateOrderRequest{
		UserID: user.ID,
		Items:  []OrderItemRequest{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	_, err = CreateOrder(db, CreateOrderRequest{
		UserID: otherUser.ID,
		Items:  []OrderItemRequest{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	orders, err := ListUserOrders(db, user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, user.ID, orders[0].UserID)
}

func TestUpdateOrderStatus(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	product := seedProduct(t, db, "Plov", "10.00")

	order, err := CreateOrder(db, CreateOrderRequest{
		UserID: user.ID,
		Items:  []OrderItemRequest{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	past := time.Now().Add(-time.Hour)
	require.NoError(t, db.Model(&models.Order{}).
		Where("id = ?", order.ID).
		UpdateColumn("updated_at", past).Error)

	updated, err := UpdateOrderStatus(db, order.ID, models.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, updated.Status)
	assert.True(t, updated.UpdatedAt.After(past))
	// Items stay untouched by a status change.
	assert.Len(t, updated.Items, 1)

	_, err = UpdateOrderStatus(db, 9999, models.OrderStatusCompleted)
	var notFound *apperr.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
