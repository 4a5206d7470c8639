package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nevta-digital/nevta-api/i18n"
	"github.com/nevta-digital/nevta-api/models"
	"github.com/nevta-digital/nevta-api/store"
	"github.com/nevta-digital/nevta-api/utils"
)

// TextGenerator is the language model behind insights.
type TextGenerator interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// InsightsService asks "Munim ji", a traditional Indian accountant persona,
// to summarise an occasion's collection.
type InsightsService struct {
	store store.Store
	ai    TextGenerator
	tr    *i18n.Translator
}

func NewInsightsService(st store.Store, ai TextGenerator, tr *i18n.Translator) *InsightsService {
	return &InsightsService{store: st, ai: ai, tr: tr}
}

const insightsSystemPrompt = `You are "Munim ji", a wise, warm and slightly witty traditional Indian accountant (munim).
You review the gift money (nevta / shagun) collected at a family occasion.
Mention the locations that gave the most, the most common amount, and end the summary with a short blessing for the family.
Respond with ONLY a JSON object of the form:
{"summary": "<two or three sentences>", "fun_facts": ["<fact>", "<fact>", "<fact>"]}
No markdown, no code fences, no other text.`

// OccasionInsights summarises one occasion. An occasion with no
// contributions gets a fixed local message and no model call.
func (s *InsightsService) OccasionInsights(ctx context.Context, ownerID, occasionID string, lang i18n.Language) (*models.EventInsights, error) {
	occasion, err := s.store.GetOccasion(ctx, ownerID, occasionID)
	if err != nil {
		return nil, err
	}
	contributions, err := s.store.ListContributions(ctx, occasionID)
	if err != nil {
		return nil, err
	}

	if len(contributions) == 0 {
		return &models.EventInsights{Summary: s.tr.T(lang, "insightsEmpty"), FunFacts: []string{}}, nil
	}

	utils.LogAIAnalysis("insights", occasionID, string(lang), len(contributions))

	reply, err := s.ai.Complete(ctx, insightsSystemPrompt, buildInsightsPrompt(*occasion, contributions, lang))
	if err != nil {
		utils.SafeError("❌ Insights generation failed for %s: %v", utils.MaskID(occasionID), err)
		return nil, fmt.Errorf("%w: %v", ErrInsightsUnavailable, err)
	}

	insights, err := ParseInsights(reply)
	if err != nil {
		utils.SafeError("❌ Unreadable insights reply for %s: %v", utils.MaskID(occasionID), err)
		return nil, fmt.Errorf("%w: %v", ErrInsightsUnavailable, err)
	}
	return insights, nil
}

func buildInsightsPrompt(occasion models.Occasion, contributions []models.Contribution, lang i18n.Language) string {
	totals := Aggregate(contributions)

	var b strings.Builder
	fmt.Fprintf(&b, "Occasion: %s (%s)\n", occasion.Name, occasion.EventDate)
	fmt.Fprintf(&b, "Guests: %d, Total collected: %s\n", totals.Count, FormatINR(totals.Total))
	b.WriteString("Contributions (guest | location | amount):\n")
	for _, c := range contributions {
		loc := c.Location
		if loc == "" {
			loc = "-"
		}
		fmt.Fprintf(&b, "- %s | %s | %s\n", c.GuestName, loc, FormatINR(c.Amount))
	}
	if lang == i18n.English {
		b.WriteString("\nWrite the summary and fun facts in English.")
	} else {
		b.WriteString("\nWrite the summary and fun facts in Hindi (Devanagari script).")
	}
	return b.String()
}

// ParseInsights extracts the JSON object from a model reply, tolerating code
// fences or chatter around it.
func ParseInsights(reply string) (*models.EventInsights, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("no JSON object in reply")
	}

	var insights models.EventInsights
	if err := json.Unmarshal([]byte(reply[start:end+1]), &insights); err != nil {
		return nil, fmt.Errorf("decode insights: %w", err)
	}
	if strings.TrimSpace(insights.Summary) == "" {
		return nil, fmt.Errorf("empty summary")
	}
	if insights.FunFacts == nil {
		insights.FunFacts = []string{}
	}
	return &insights, nil
}
