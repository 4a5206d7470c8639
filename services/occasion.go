package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/nevta-digital/nevta-api/models"
	"github.com/nevta-digital/nevta-api/store"
	"github.com/nevta-digital/nevta-api/utils"
)

const totalsConcurrency = 8

// Notifier receives change events after every successful write.
type Notifier interface {
	Publish(ctx context.Context, event models.LiveEvent)
}

// Notifiers fans an event out to several notifiers.
type Notifiers []Notifier

func (n Notifiers) Publish(ctx context.Context, event models.LiveEvent) {
	for _, notifier := range n {
		if notifier != nil {
			notifier.Publish(ctx, event)
		}
	}
}

// OccasionService owns occasions and the contributions recorded under them.
// Every call is scoped to the signed-in owner.
type OccasionService struct {
	store    store.Store
	notifier Notifier
	now      func() time.Time
}

func NewOccasionService(st store.Store, notifier Notifier) *OccasionService {
	if notifier == nil {
		notifier = Notifiers{}
	}
	return &OccasionService{store: st, notifier: notifier, now: time.Now}
}

// ============================================================================
// OCCASIONS
// ============================================================================

func (s *OccasionService) CreateOccasion(ctx context.Context, ownerID string, req models.CreateOccasionRequest) (*models.Occasion, error) {
	name := strings.TrimSpace(req.Name)
	date := strings.TrimSpace(req.EventDate)
	if name == "" || date == "" {
		return nil, invalid("occasionNameRequired", "Occasion name and date are required")
	}
	if tooLong(name) {
		return nil, invalid("textTooLong", "Occasion name is too long")
	}
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return nil, invalid("invalidDate", "Event date must be YYYY-MM-DD")
	}

	occasion := &models.Occasion{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Name:      name,
		EventDate: date,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.CreateOccasion(ctx, occasion); err != nil {
		return nil, err
	}

	utils.LogOccasionAction("created", occasion.ID, ownerID)
	s.notifier.Publish(ctx, models.LiveEvent{
		Type:       models.EventOccasionCreated,
		UserID:     ownerID,
		OccasionID: occasion.ID,
		Totals:     &models.Totals{},
	})
	return occasion, nil
}

// ListOccasions returns the owner's occasions, newest first, each with its
// totals. A non-empty query filters by name.
func (s *OccasionService) ListOccasions(ctx context.Context, ownerID, query string) ([]models.OccasionWithTotals, error) {
	occasions, err := s.store.ListOccasions(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.withTotals(ctx, FilterOccasions(occasions, query))
}

func (s *OccasionService) withTotals(ctx context.Context, occasions []models.Occasion) ([]models.OccasionWithTotals, error) {
	out := make([]models.OccasionWithTotals, len(occasions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(totalsConcurrency)
	for i, o := range occasions {
		g.Go(func() error {
			contributions, err := s.store.ListContributions(gctx, o.ID)
			if err != nil {
				return err
			}
			totals := Aggregate(contributions)
			out[i] = models.OccasionWithTotals{Occasion: o, Count: totals.Count, Total: totals.Total}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *OccasionService) GetOccasion(ctx context.Context, ownerID, id string) (*models.OccasionWithTotals, error) {
	occasion, err := s.store.GetOccasion(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	contributions, err := s.store.ListContributions(ctx, id)
	if err != nil {
		return nil, err
	}
	totals := Aggregate(contributions)
	return &models.OccasionWithTotals{Occasion: *occasion, Count: totals.Count, Total: totals.Total}, nil
}

// DeleteOccasion removes the occasion together with all of its contributions.
func (s *OccasionService) DeleteOccasion(ctx context.Context, ownerID, id string) error {
	if err := s.store.DeleteOccasion(ctx, ownerID, id); err != nil {
		return err
	}
	utils.LogOccasionAction("deleted", id, ownerID)
	s.notifier.Publish(ctx, models.LiveEvent{
		Type:       models.EventOccasionDeleted,
		UserID:     ownerID,
		OccasionID: id,
	})
	return nil
}

// Summary feeds the dashboard chart.
func (s *OccasionService) Summary(ctx context.Context, ownerID string) ([]models.SummaryEntry, error) {
	occasions, err := s.ListOccasions(ctx, ownerID, "")
	if err != nil {
		return nil, err
	}
	return BuildSummary(occasions), nil
}

// ============================================================================
// CONTRIBUTIONS
// ============================================================================

// Ledger is an occasion with its contributions, newest first. Totals always
// cover the full set, even when the listing is filtered.
type Ledger struct {
	Occasion      models.Occasion       `json:"occasion"`
	Contributions []models.Contribution `json:"contributions"`
	Totals        models.Totals         `json:"totals"`
}

func (s *OccasionService) Ledger(ctx context.Context, ownerID, occasionID, query string) (*Ledger, error) {
	occasion, err := s.store.GetOccasion(ctx, ownerID, occasionID)
	if err != nil {
		return nil, err
	}
	contributions, err := s.store.ListContributions(ctx, occasionID)
	if err != nil {
		return nil, err
	}
	return &Ledger{
		Occasion:      *occasion,
		Contributions: FilterContributions(contributions, query),
		Totals:        Aggregate(contributions),
	}, nil
}

func (s *OccasionService) AddContribution(ctx context.Context, ownerID, occasionID string, req models.CreateContributionRequest) (*models.Contribution, error) {
	guest := strings.TrimSpace(req.GuestName)
	if guest == "" {
		return nil, invalid("nameAmountRequired", "Name and Amount are required")
	}
	location := strings.TrimSpace(req.Location)
	if tooLong(guest) || tooLong(location) {
		return nil, invalid("textTooLong", "Guest name and location must be under 255 characters")
	}
	amount, err := ParseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.GetOccasion(ctx, ownerID, occasionID); err != nil {
		return nil, err
	}

	contribution := &models.Contribution{
		ID:            uuid.NewString(),
		OccasionID:    occasionID,
		GuestName:     guest,
		Location:      location,
		Amount:        amount,
		ContributedAt: s.now().UTC(),
	}
	if err := s.store.CreateContribution(ctx, contribution); err != nil {
		return nil, err
	}

	s.publishContribution(ctx, models.EventContributionCreated, ownerID, occasionID, contribution.ID)
	return contribution, nil
}

func (s *OccasionService) DeleteContribution(ctx context.Context, ownerID, occasionID, id string) error {
	if _, err := s.store.GetOccasion(ctx, ownerID, occasionID); err != nil {
		return err
	}
	if err := s.store.DeleteContribution(ctx, occasionID, id); err != nil {
		return err
	}
	s.publishContribution(ctx, models.EventContributionDeleted, ownerID, occasionID, id)
	return nil
}

// LocationSuggestions offers previously used locations for the entry form.
func (s *OccasionService) LocationSuggestions(ctx context.Context, ownerID, occasionID, query string) ([]string, error) {
	if _, err := s.store.GetOccasion(ctx, ownerID, occasionID); err != nil {
		return nil, err
	}
	contributions, err := s.store.ListContributions(ctx, occasionID)
	if err != nil {
		return nil, err
	}
	return SuggestLocations(contributions, query), nil
}

func (s *OccasionService) publishContribution(ctx context.Context, eventType, ownerID, occasionID, contributionID string) {
	event := models.LiveEvent{
		Type:           eventType,
		UserID:         ownerID,
		OccasionID:     occasionID,
		ContributionID: contributionID,
	}
	if contributions, err := s.store.ListContributions(ctx, occasionID); err == nil {
		totals := Aggregate(contributions)
		event.Totals = &totals
	}
	s.notifier.Publish(ctx, event)
}
