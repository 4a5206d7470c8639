package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/nevta-digital/nevta-api/i18n"
)

const languageKey = "language"

// PreferenceLookup returns a user's stored language.
type PreferenceLookup func(ctx context.Context, userID string) (string, error)

// Language resolves the response language: ?lang, then the app-language
// cookie, then the signed-in user's preference, then Hindi.
func Language(lookup PreferenceLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(languageKey, resolveLanguage(c, lookup))
		c.Next()
	}
}

func resolveLanguage(c *gin.Context, lookup PreferenceLookup) i18n.Language {
	if q := c.Query("lang"); i18n.IsSupported(q) {
		return i18n.ParseLanguage(q)
	}
	if cookie, err := c.Cookie(i18n.CookieName); err == nil && i18n.IsSupported(cookie) {
		return i18n.ParseLanguage(cookie)
	}
	if userID := GetUserID(c); userID != "" && lookup != nil {
		if pref, err := lookup(c.Request.Context(), userID); err == nil && i18n.IsSupported(pref) {
			return i18n.ParseLanguage(pref)
		}
	}
	return i18n.Default
}

// GetLanguage returns the language chosen by Language, or the default.
func GetLanguage(c *gin.Context) i18n.Language {
	if v, ok := c.Get(languageKey); ok {
		if lang, ok := v.(i18n.Language); ok {
			return lang
		}
	}
	return i18n.Default
}
