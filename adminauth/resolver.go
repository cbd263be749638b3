// Package adminauth decides whether a caller holds admin rights. Authority
// comes from three independent sources: the statically configured Telegram id
// set, the statically configured phone set, and the mutable phone registry in
// the database. Phone numbers are always compared in normalized form.
package adminauth

import (
	"strings"

	"gorm.io/gorm"

	"github.com/nurilloh-an/telegram-mini-app/apperr"
	"github.com/nurilloh-an/telegram-mini-app/config"
	"github.com/nurilloh-an/telegram-mini-app/models"
)

// NormalizePhone strips everything but decimal digits from a phone number.
// An empty result means "no phone".
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// provider is one authority source: a predicate over the caller identity.
type provider func(db *gorm.DB, telegramID *int64, normalizedPhone string) (bool, error)

type Resolver struct {
	adminIDs     map[int64]struct{}
	staticPhones map[string]struct{}
	// static phones in configuration order, deduplicated; used for the
	// merged registry listing
	staticPhoneList []string
	providers       []provider
}

// NewResolver builds a resolver from the process-lifetime static admin sets.
func NewResolver(cfg *config.Config) *Resolver {
	r := &Resolver{
		adminIDs:     make(map[int64]struct{}, len(cfg.AdminTelegramIDs)),
		staticPhones: make(map[string]struct{}, len(cfg.AdminPhoneNumbers)),
	}
	for _, id := range cfg.AdminTelegramIDs {
		r.adminIDs[id] = struct{}{}
	}
	for _, raw := range cfg.AdminPhoneNumbers {
		normalized := NormalizePhone(raw)
		if normalized == "" {
			continue
		}
		if _, ok := r.staticPhones[normalized]; ok {
			continue
		}
		r.staticPhones[normalized] = struct{}{}
		r.staticPhoneList = append(r.staticPhoneList, normalized)
	}
	r.providers = []provider{r.byTelegramID, r.byStaticPhone, r.byRegistry}
	return r
}

func (r *Resolver) byTelegramID(_ *gorm.DB, telegramID *int64, _ string) (bool, error) {
	if telegramID == nil {
		return false, nil
	}
	_, ok := r.adminIDs[*telegramID]
	return ok, nil
}

func (r *Resolver) byStaticPhone(_ *gorm.DB, _ *int64, normalizedPhone string) (bool, error) {
	if normalizedPhone == "" {
		return false, nil
	}
	_, ok := r.staticPhones[normalizedPhone]
	return ok, nil
}

func (r *Resolver) byRegistry(db *gorm.DB, _ *int64, normalizedPhone string) (bool, error) {
	if normalizedPhone == "" {
		return false, nil
	}
	var count int64
	if err := db.Model(&models.AdminPhoneNumber{}).
		Where("phone_number = ?", normalizedPhone).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// IsAdmin reports whether the caller matches any authority source. Every
// source is consulted; the result is the union over all of them.
func (r *Resolver) IsAdmin(db *gorm.DB, telegramID *int64, phone string) (bool, error) {
	normalized := NormalizePhone(phone)
	admin := false
	for _, check := range r.providers {
		ok, err := check(db, telegramID, normalized)
		if err != nil {
			return false, err
		}
		admin = admin || ok
	}
	return admin, nil
}

// EnsureAdmin returns a ForbiddenError when the caller holds no admin rights,
// distinguishing a deployment without any admin source from a caller that
// does not match the configured ones.
func (r *Resolver) EnsureAdmin(db *gorm.DB, telegramID *int64, phone string) error {
	ok, err := r.IsAdmin(db, telegramID, phone)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	configured := len(r.adminIDs) > 0 || len(r.staticPhones) > 0
	if !configured {
		var count int64
		if err := db.Model(&models.AdminPhoneNumber{}).Count(&count).Error; err != nil {
			return err
		}
		configured = count > 0
	}
	if !configured {
		return &apperr.ForbiddenError{Reason: apperr.ReasonNotConfigured}
	}
	return &apperr.ForbiddenError{Reason: apperr.ReasonAccessRequired}
}

// HasStaticPhone reports whether a normalized phone is in the static set.
func (r *Resolver) HasStaticPhone(normalizedPhone string) bool {
	_, ok := r.staticPhones[normalizedPhone]
	return ok
}

// StaticPhones returns the static phone set in configuration order.
func (r *Resolver) StaticPhones() []string {
	return r.staticPhoneList
}
