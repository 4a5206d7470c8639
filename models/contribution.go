package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

type Contribution struct {
	ID            string    `json:"id"`
	OccasionID    string    `json:"occasion_id"`
	GuestName     string    `json:"guest_name"`
	Location      string    `json:"location,omitempty"`
	Amount        float64   `json:"amount"`
	ContributedAt time.Time `json:"contributed_at"`
}

type CreateContributionRequest struct {
	GuestName string      `json:"guest_name"`
	Location  string      `json:"location"`
	Amount    AmountInput `json:"amount"`
}

// AmountInput holds the amount exactly as the form sent it. Entry forms post
// either a JSON number or a numeric string, so the raw text is kept and parsed
// by the service layer.
type AmountInput struct {
	Raw     string
	Present bool
}

func (a *AmountInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = AmountInput{}
		return nil
	}
	a.Present = true
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		a.Raw = strings.TrimSpace(s)
		return nil
	}
	a.Raw = string(data)
	return nil
}

func (a AmountInput) MarshalJSON() ([]byte, error) {
	if !a.Present {
		return []byte("null"), nil
	}
	return json.Marshal(a.Raw)
}

// Totals is the aggregate of a contribution set.
type Totals struct {
	Count int     `json:"count"`
	Total float64 `json:"total"`
}
