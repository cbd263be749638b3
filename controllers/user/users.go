package userControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nurilloh-an/telegram-mini-app/adminauth"
	"github.com/nurilloh-an/telegram-mini-app/apperr"
	"github.com/nurilloh-an/telegram-mini-app/models"
)

type UpsertUserRequest struct {
	TelegramID  int64  `json:"telegram_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	Language    string `json:"language"`
}

// UpsertUser creates the user on first contact and refreshes name, phone and
// language on every later one. The cached admin flag is recomputed inside
// the same transaction that writes the row.
func UpsertUser(db *gorm.DB, res *adminauth.Resolver, req UpsertUserRequest) (*models.User, error) {
	var user models.User
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("telegram_id = ?", req.TelegramID).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user = models.User{TelegramID: req.TelegramID, Language: "uz"}
		} else if err != nil {
			return err
		}

		user.Name = req.Name
		user.PhoneNumber = req.PhoneNumber
		user.PhoneNumberNormalized = adminauth.NormalizePhone(req.PhoneNumber)
		if req.Language != "" {
			user.Language = req.Language
		}

		if err := res.SyncUser(tx, &user); err != nil {
			return err
		}
		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByTelegramID fetches a user and self-heals the cached admin flag:
// the flag is recomputed on every read and written back only when it
// actually changed.
func GetUserByTelegramID(db *gorm.DB, res *adminauth.Resolver, telegramID int64) (*models.User, error) {
	var user models.User
	if err := db.Where("telegram_id = ?", telegramID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("user", nil)
		}
		return nil, err
	}

	wasAdmin := user.IsAdmin
	if err := res.SyncUser(db, &user); err != nil {
		return nil, err
	}
	if user.IsAdmin != wasAdmin {
		if err := db.Model(&user).Update("is_admin", user.IsAdmin).Error; err != nil {
			return nil, err
		}
	}
	return &user, nil
}

// -------- Handlers --------

// POST /api/users
func UpsertUserHandler(db *gorm.DB, res *adminauth.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpsertUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		user, err := UpsertUser(db, res, req)
		if err != nil {
			c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// GET /api/users/:telegramID
func GetUserHandler(db *gorm.DB, res *adminauth.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		telegramID, err := strconv.ParseInt(c.Param("telegramID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid telegram id"})
			return
		}
		user, getErr := GetUserByTelegramID(db, res, telegramID)
		if getErr != nil {
			c.JSON(apperr.Status(getErr), gin.H{"error": getErr.Error()})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
