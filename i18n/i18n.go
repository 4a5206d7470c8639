// Package i18n maps UI string keys to English or Hindi text.
//
// Lookups fail open: an unknown key comes back unchanged so missing
// translations are visible on screen instead of rendering blank.
package i18n

import "strings"

type Language string

const (
	English Language = "en"
	Hindi   Language = "hi"

	Default = Hindi

	// CookieName is where clients persist the preference.
	CookieName = "app-language"
)

// Supported lists the available languages in display order.
var Supported = []Language{English, Hindi}

// ParseLanguage normalises a stored or requested preference, defaulting to Hindi.
func ParseLanguage(s string) Language {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case English:
		return English
	case Hindi:
		return Hindi
	default:
		return Default
	}
}

// IsSupported reports whether s names a supported language exactly.
func IsSupported(s string) bool {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case English, Hindi:
		return true
	}
	return false
}

type Translator struct {
	tables map[Language]map[string]string
}

func New() *Translator {
	return &Translator{tables: map[Language]map[string]string{
		English: english,
		Hindi:   hindi,
	}}
}

// T returns the text for key in lang, or key itself when there is none.
func (t *Translator) T(lang Language, key string) string {
	if text, ok := t.tables[ParseLanguage(string(lang))][key]; ok && text != "" {
		return text
	}
	return key
}

// Table returns a copy of the full table for lang.
func (t *Translator) Table(lang Language) map[string]string {
	src := t.tables[ParseLanguage(string(lang))]
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
