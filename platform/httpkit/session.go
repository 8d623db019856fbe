package httpkit

import (
	"context"
	"net/http"

	"storefront_backend/platform/config"
	"storefront_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextSessionIDKey is the gin context key for the shopper session ID.
const ContextSessionIDKey = "sessionID"

// Session binds every request to a shopper session carried in a cookie.
// Unknown or malformed cookies start a new session. The cookie has no expiry
// so it lives as long as the browser session.
func Session(cfg config.SessionConfig) gin.HandlerFunc {
	name := cfg.GetSessionCookieName()

	return func(c *gin.Context) {
		sessionID := ""
		if raw, err := c.Cookie(name); err == nil {
			if parsed, err := uuid.Parse(raw); err == nil {
				sessionID = parsed.String()
			}
		}

		if sessionID == "" {
			sessionID = uuid.NewString()
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     name,
				Value:    sessionID,
				Path:     "/",
				HttpOnly: true,
				Secure:   cfg.GetSessionCookieSecure(),
				SameSite: cfg.GetSessionCookieSameSite(),
			})
		}

		c.Set(ContextSessionIDKey, sessionID)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), logger.SessionIDKey, sessionID))

		c.Next()
	}
}

// GetSessionID returns the session bound by Session, if any.
func GetSessionID(c *gin.Context) (string, bool) {
	value, ok := c.Get(ContextSessionIDKey)
	if !ok {
		return "", false
	}
	id, ok := value.(string)
	return id, ok && id != ""
}

// MustGetSessionID returns the bound session or panics when Session is not installed.
func MustGetSessionID(c *gin.Context) string {
	id, ok := GetSessionID(c)
	if !ok {
		panic("httpkit: session middleware not installed")
	}
	return id
}
