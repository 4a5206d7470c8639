package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/nevta-digital/nevta-api/models"
)

func TestChangeMessageCarriesOwner(t *testing.T) {
	msg := changeMessage{
		LiveEvent: models.LiveEvent{
			Type:       models.EventContributionCreated,
			UserID:     "user-1",
			OccasionID: "occ-1",
			Totals:     &models.Totals{Count: 2, Total: 1601},
		},
		OwnerID:    "user-1",
		OccurredAt: time.Date(2024, 5, 15, 6, 30, 0, 0, time.UTC),
	}

	body, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["type"] != "contribution.created" || got["occasion_id"] != "occ-1" || got["owner_id"] != "user-1" {
		t.Errorf("message = %s", body)
	}
	if _, ok := got["user_id"]; ok {
		t.Errorf("user id leaked under its websocket name: %s", body)
	}
}

func TestNewChangeFeedRejectsBadURL(t *testing.T) {
	if _, err := NewChangeFeed("http://localhost:5672", "nevta.events"); err == nil {
		t.Fatal("expected dial error for a non-AMQP scheme")
	}
}
