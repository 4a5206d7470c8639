package models

import (
	"time"
)

type Occasion struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	EventDate string    `json:"event_date"` // YYYY-MM-DD
	CreatedAt time.Time `json:"created_at"`
}

// OccasionWithTotals is the listing shape: the occasion plus its aggregate.
type OccasionWithTotals struct {
	Occasion
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

type CreateOccasionRequest struct {
	Name      string `json:"name"`
	EventDate string `json:"event_date"`
}

// SummaryEntry feeds the dashboard bar chart.
type SummaryEntry struct {
	OccasionID string  `json:"occasion_id"`
	Label      string  `json:"label"`
	Total      float64 `json:"total"`
	Tooltip    string  `json:"tooltip"`
}
