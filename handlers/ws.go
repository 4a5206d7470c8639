package handlers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"

	"github.com/nevta-digital/nevta-api/i18n"
	"github.com/nevta-digital/nevta-api/middleware"
	"github.com/nevta-digital/nevta-api/models"
	"github.com/nevta-digital/nevta-api/services"
	"github.com/nevta-digital/nevta-api/utils"
)

const (
	sessionUserKey     = "user_id"
	sessionOccasionKey = "occasion_id"
)

// WSHandler pushes change events to the owner's open sessions. A session
// opened with ?occasion_id only receives that occasion's events.
type WSHandler struct {
	M         *melody.Melody
	Occasions *services.OccasionService
	Tr        *i18n.Translator
}

func NewWSHandler(occasions *services.OccasionService, tr *i18n.Translator) *WSHandler {
	m := melody.New()

	m.Config.MaxMessageSize = 1024

	// Keep-alive for hosted proxies that drop idle connections
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	m.HandleConnect(func(s *melody.Session) {
		userID, _ := s.Get(sessionUserKey)
		occasionID, _ := s.Get(sessionOccasionKey)
		utils.LogWebSocket("connected", toString(occasionID), toString(userID))
	})

	m.HandleDisconnect(func(s *melody.Session) {
		userID, _ := s.Get(sessionUserKey)
		occasionID, _ := s.Get(sessionOccasionKey)
		utils.LogWebSocket("disconnected", toString(occasionID), toString(userID))
	})

	m.HandleError(func(s *melody.Session, err error) {
		utils.SafeWarn("❌ WebSocket Error: %v", err)
	})

	return &WSHandler{M: m, Occasions: occasions, Tr: tr}
}

func toString(v any) string {
	s, _ := v.(string)
	return s
}

// HandleWS upgrades the request after checking the occasion belongs to the caller.
func (h *WSHandler) HandleWS(c *gin.Context) {
	userID := middleware.GetUserID(c)
	occasionID := c.Query("occasion_id")

	if occasionID != "" {
		if _, err := h.Occasions.GetOccasion(c.Request.Context(), userID, occasionID); err != nil {
			respondError(c, h.Tr, err)
			return
		}
	}

	err := h.M.HandleRequestWithKeys(c.Writer, c.Request, map[string]any{
		sessionUserKey:     userID,
		sessionOccasionKey: occasionID,
	})
	if err != nil {
		utils.SafeWarn("❌ Failed to upgrade websocket: %v", err)
	}
}

// Publish implements services.Notifier.
func (h *WSHandler) Publish(_ context.Context, event models.LiveEvent) {
	msg, err := json.Marshal(event)
	if err != nil {
		utils.SafeError("❌ Cannot encode live event: %v", err)
		return
	}

	err = h.M.BroadcastFilter(msg, func(q *melody.Session) bool {
		userID, _ := q.Get(sessionUserKey)
		if toString(userID) != event.UserID {
			return false
		}
		occasionID, _ := q.Get(sessionOccasionKey)
		id := toString(occasionID)
		return id == "" || id == event.OccasionID
	})
	if err != nil {
		utils.SafeWarn("⚠️ Error broadcasting %s: %v", event.Type, err)
	}
}

func (h *WSHandler) Close() error {
	return h.M.Close()
}
