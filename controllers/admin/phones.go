package adminController

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/nurilloh-an/telegram-mini-app/adminauth"
	"github.com/nurilloh-an/telegram-mini-app/apperr"
	"github.com/nurilloh-an/telegram-mini-app/middleware"
	"github.com/nurilloh-an/telegram-mini-app/models"
)

type AddPhoneRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
}

// PhoneEntry is one row of the merged admin-phone listing: statically
// configured phones tagged "config", registry rows tagged "database".
type PhoneEntry struct {
	ID          uint       `json:"id,omitempty"`
	PhoneNumber string     `json:"phone_number"`
	Source      string     `json:"source"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// -------- Core Logic --------

// AddPhone registers a new admin phone. The entry and the fan-out sync of
// every matching user commit as one transaction.
func AddPhone(db *gorm.DB, res *adminauth.Resolver, rawPhone string) (*models.AdminPhoneNumber, error) {
	normalized := adminauth.NormalizePhone(rawPhone)
	if normalized == "" {
		return nil, apperr.NewValidation("phone number must contain at least one digit")
	}
	if res.HasStaticPhone(normalized) {
		return nil, apperr.NewConflict("phone number %s is already configured as a static admin phone", normalized)
	}

	var entry models.AdminPhoneNumber
	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.AdminPhoneNumber{}).
			Where("phone_number = ?", normalized).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperr.NewConflict("phone number %s is already registered", normalized)
		}

		entry = models.AdminPhoneNumber{PhoneNumber: normalized}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		return res.SyncUsersByPhone(tx, normalized)
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// RemovePhone deletes a registry entry and re-syncs every user that matched
// it; their admin flag drops unless another source still grants it.
func RemovePhone(db *gorm.DB, res *adminauth.Resolver, entryID uint) error {
	var entry models.AdminPhoneNumber
	if err := db.First(&entry, entryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NewNotFound("admin phone number", entryID)
		}
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entry).Error; err != nil {
			return err
		}
		return res.SyncUsersByPhone(tx, entry.PhoneNumber)
	})
}

// ListPhones merges the static configured phones with the registry rows
// (ordered by creation time), de-duplicated by normalized value with config
// entries taking precedence.
func ListPhones(db *gorm.DB, res *adminauth.Resolver) ([]PhoneEntry, error) {
	entries := make([]PhoneEntry, 0)
	seen := make(map[string]struct{})
	for _, phone := range res.StaticPhones() {
		entries = append(entries, PhoneEntry{PhoneNumber: phone, Source: "config"})
		seen[phone] = struct{}{}
	}

	var rows []models.AdminPhoneNumber
	if err := db.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		if _, ok := seen[row.PhoneNumber]; ok {
			continue
		}
		createdAt := row.CreatedAt
		entries = append(entries, PhoneEntry{
			ID:          row.ID,
			PhoneNumber: row.PhoneNumber,
			Source:      "database",
			CreatedAt:   &createdAt,
		})
	}
	return entries, nil
}

// -------- Handlers --------

// POST /api/admin/phone-numbers
func AddPhoneHandler(db *gorm.DB, res *adminauth.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		telegramID, phone := middleware.CallerIdentity(c)
		if err := res.EnsureAdmin(db, telegramID, phone); err != nil {
			c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
			return
		}

		var req AddPhoneRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		entry, err := AddPhone(db, res, req.PhoneNumber)
		if err != nil {
			c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
			return
		}
		log.Info().Str("phone", entry.PhoneNumber).Msg("Admin phone registered")
		c.JSON(http.StatusCreated, entry)
	}
}

// DELETE /api/admin/phone-numbers/:id
func RemovePhoneHandler(db *gorm.DB, res *adminauth.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		telegramID, phone := middleware.CallerIdentity(c)
		if err := res.EnsureAdmin(db, telegramID, phone); err != nil {
			c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
			return
		}

		entryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid phone number id"})
			return
		}
		if err := RemovePhone(db, res, uint(entryID)); err != nil {
			c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
			return
		}
		log.Info().Uint64("id", entryID).Msg("Admin phone removed")
		c.JSON(http.StatusOK, gin.H{"message": "Admin phone number removed"})
	}
}

// GET /api/admin/phone-numbers
func ListPhonesHandler(db *gorm.DB, res *adminauth.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		telegramID, phone := middleware.CallerIdentity(c)
		if err := res.EnsureAdmin(db, telegramID, phone); err != nil {
			c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
			return
		}

		entries, err := ListPhones(db, res)
		if err != nil {
			c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, entries)
	}
}
