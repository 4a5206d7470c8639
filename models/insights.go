package models

type InsightsRequest struct {
	Language string `json:"language"`
}

// EventInsights is the accountant-style summary of one occasion.
type EventInsights struct {
	Summary  string   `json:"summary"`
	FunFacts []string `json:"fun_facts"`
}

// LiveEvent is pushed to websocket subscribers and the change feed.
type LiveEvent struct {
	Type           string  `json:"type"`
	UserID         string  `json:"-"`
	OccasionID     string  `json:"occasion_id"`
	ContributionID string  `json:"contribution_id,omitempty"`
	Totals         *Totals `json:"totals,omitempty"`
}

const (
	EventOccasionCreated     = "occasion.created"
	EventOccasionDeleted     = "occasion.deleted"
	EventContributionCreated = "contribution.created"
	EventContributionDeleted = "contribution.deleted"
)
