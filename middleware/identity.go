package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	HeaderTelegramUserID = "X-Telegram-User-Id"
	HeaderAdminPhone     = "X-Admin-Phone-Number"

	telegramIDKey = "telegram_user_id"
	adminPhoneKey = "admin_phone_number"
)

// Identity copies the pre-parsed Telegram caller identity headers into the
// request context. A missing or malformed header leaves the caller anonymous;
// authorization decisions happen downstream.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.GetHeader(HeaderTelegramUserID); raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
				c.Set(telegramIDKey, id)
			}
		}
		if phone := c.GetHeader(HeaderAdminPhone); phone != "" {
			c.Set(adminPhoneKey, phone)
		}
		c.Next()
	}
}

// CallerIdentity returns the caller's Telegram id (nil when absent) and the
// raw admin phone header.
func CallerIdentity(c *gin.Context) (*int64, string) {
	var telegramID *int64
	if v, ok := c.Get(telegramIDKey); ok {
		if id, ok := v.(int64); ok {
			telegramID = &id
		}
	}
	phone := ""
	if v, ok := c.Get(adminPhoneKey); ok {
		phone, _ = v.(string)
	}
	return telegramID, phone
}
