package adminauth

import (
	"gorm.io/gorm"

	"github.com/nurilloh-an/telegram-mini-app/models"
)

// SyncUser recomputes the user's cached is_admin flag from the authority
// sources. It only mutates the struct; persisting the row is the caller's
// transaction.
func (r *Resolver) SyncUser(db *gorm.DB, user *models.User) error {
	telegramID := user.TelegramID
	admin, err := r.IsAdmin(db, &telegramID, user.PhoneNumber)
	if err != nil {
		return err
	}
	user.IsAdmin = admin
	return nil
}

// SyncUsersByPhone recomputes and persists the cached flag for every user
// whose normalized phone matches. Called after a registry mutation so all
// affected users are brought back in line with the authority sources.
func (r *Resolver) SyncUsersByPhone(tx *gorm.DB, normalizedPhone string) error {
	if normalizedPhone == "" {
		return nil
	}
	var users []models.User
	if err := tx.Where("phone_number_normalized = ?", normalizedPhone).
		Find(&users).Error; err != nil {
		return err
	}
	for i := range users {
		if err := r.SyncUser(tx, &users[i]); err != nil {
			return err
		}
		if err := tx.Model(&users[i]).
			Update("is_admin", users[i].IsAdmin).Error; err != nil {
			return err
		}
	}
	return nil
}
