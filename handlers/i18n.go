package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nevta-digital/nevta-api/i18n"
)

type I18nHandler struct {
	Tr *i18n.Translator
}

// GetTable serves the full string table so clients render the same text.
func (h *I18nHandler) GetTable(c *gin.Context) {
	lang := c.Param("lang")
	if !i18n.IsSupported(lang) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unsupported language"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"language": i18n.ParseLanguage(lang),
		"strings":  h.Tr.Table(i18n.ParseLanguage(lang)),
	})
}
