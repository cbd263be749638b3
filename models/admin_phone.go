package models

import "time"

// AdminPhoneNumber is one entry in the mutable admin registry. PhoneNumber is
// stored in normalized (digits-only) form. There is no foreign key to User: a
// phone number can grant admin rights before any user with that phone exists.
type AdminPhoneNumber struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PhoneNumber string    `gorm:"size:32;uniqueIndex;not null" json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
}
