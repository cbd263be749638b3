package models

import "time"

type User struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	TelegramID  int64  `gorm:"uniqueIndex;not null" json:"telegram_id"`
	Name        string `gorm:"size:255;not null" json:"name"`
	PhoneNumber string `gorm:"size:32;not null" json:"phone_number"`
	// Digits-only form of PhoneNumber; the sole key for admin-phone matching.
	PhoneNumberNormalized string `gorm:"size:32;index;not null" json:"-"`
	Language              string `gorm:"size:10;default:uz" json:"language"`
	// Cached result of the admin authority resolution. Recomputed on every
	// write and on fetch-by-id, never edited directly.
	IsAdmin   bool      `gorm:"not null;default:false" json:"is_admin"`
	Orders    []Order   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"orders,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
