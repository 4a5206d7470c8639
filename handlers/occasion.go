package handlers

import (
	"bytes"
	"mime"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nevta-digital/nevta-api/i18n"
	"github.com/nevta-digital/nevta-api/middleware"
	"github.com/nevta-digital/nevta-api/models"
	"github.com/nevta-digital/nevta-api/services"
)

type OccasionHandler struct {
	Occasions *services.OccasionService
	Insights  *services.InsightsService
	Tr        *i18n.Translator
}

// ============================================================================
// OCCASIONS
// ============================================================================

func (h *OccasionHandler) ListOccasions(c *gin.Context) {
	occasions, err := h.Occasions.ListOccasions(c.Request.Context(), middleware.GetUserID(c), c.Query("q"))
	if err != nil {
		respondError(c, h.Tr, err)
		return
	}

	c.JSON(http.StatusOK, occasions)
}

func (h *OccasionHandler) CreateOccasion(c *gin.Context) {
	var req models.CreateOccasionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	occasion, err := h.Occasions.CreateOccasion(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		respondError(c, h.Tr, err)
		return
	}

	c.JSON(http.StatusCreated, occasion)
}

// GetOccasion returns the occasion ledger; ?q filters the entries but not the totals.
func (h *OccasionHandler) GetOccasion(c *gin.Context) {
	ledger, err := h.Occasions.Ledger(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), c.Query("q"))
	if err != nil {
		respondError(c, h.Tr, err)
		return
	}

	c.JSON(http.StatusOK, ledger)
}

func (h *OccasionHandler) DeleteOccasion(c *gin.Context) {
	if err := h.Occasions.DeleteOccasion(c.Request.Context(), middleware.GetUserID(c), c.Param("id")); err != nil {
		respondError(c, h.Tr, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *OccasionHandler) Summary(c *gin.Context) {
	entries, err := h.Occasions.Summary(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, h.Tr, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":   h.Tr.T(middleware.GetLanguage(c), "summaryChartTitle"),
		"entries": entries,
	})
}

// ============================================================================
// CONTRIBUTIONS
// ============================================================================

func (h *OccasionHandler) AddContribution(c *gin.Context) {
	var req models.CreateContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contribution, err := h.Occasions.AddContribution(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), req)
	if err != nil {
		respondError(c, h.Tr, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      h.Tr.T(middleware.GetLanguage(c), "entrySaved"),
		"contribution": contribution,
	})
}

func (h *OccasionHandler) DeleteContribution(c *gin.Context) {
	err := h.Occasions.DeleteContribution(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), c.Param("contribution_id"))
	if err != nil {
		respondError(c, h.Tr, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *OccasionHandler) Locations(c *gin.Context) {
	locations, err := h.Occasions.LocationSuggestions(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), c.Query("q"))
	if err != nil {
		respondError(c, h.Tr, err)
		return
	}

	c.JSON(http.StatusOK, locations)
}

// ============================================================================
// EXPORT & REPORT
// ============================================================================

func (h *OccasionHandler) ExportCSV(c *gin.Context) {
	ledger, err := h.Occasions.Ledger(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), "")
	if err != nil {
		respondError(c, h.Tr, err)
		return
	}

	var buf bytes.Buffer
	if err := services.WriteCSV(&buf, ledger.Contributions); err != nil {
		respondError(c, h.Tr, err)
		return
	}

	filename := services.ReportFilename(ledger.Occasion.Name, "csv")
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// Report renders the printable view (?format=html|text).
func (h *OccasionHandler) Report(c *gin.Context) {
	ledger, err := h.Occasions.Ledger(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), "")
	if err != nil {
		respondError(c, h.Tr, err)
		return
	}

	format := c.DefaultQuery("format", services.ReportHTML)
	var buf bytes.Buffer
	err = services.RenderReport(&buf, format, h.Tr, middleware.GetLanguage(c), ledger.Occasion, ledger.Contributions, time.Now())
	if err != nil {
		respondError(c, h.Tr, err)
		return
	}

	contentType := "text/html; charset=utf-8"
	if format == services.ReportText {
		contentType = "text/plain; charset=utf-8"
	}
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// ============================================================================
// INSIGHTS
// ============================================================================

func (h *OccasionHandler) GetInsights(c *gin.Context) {
	lang := middleware.GetLanguage(c)
	if c.Request.ContentLength > 0 {
		var req models.InsightsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if i18n.IsSupported(req.Language) {
			lang = i18n.ParseLanguage(req.Language)
		}
	}

	insights, err := h.Insights.OccasionInsights(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), lang)
	if err != nil {
		respondError(c, h.Tr, err)
		return
	}

	c.JSON(http.StatusOK, insights)
}
