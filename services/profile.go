package services

import (
	"context"
	"strings"
	"time"

	"github.com/nevta-digital/nevta-api/i18n"
	"github.com/nevta-digital/nevta-api/models"
	"github.com/nevta-digital/nevta-api/store"
	"github.com/nevta-digital/nevta-api/utils"
)

type ProfileService struct {
	store store.Store
}

func NewProfileService(st store.Store) *ProfileService {
	return &ProfileService{store: st}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*models.User, error) {
	return s.store.GetUserByID(ctx, userID)
}

func (s *ProfileService) UpdateName(ctx context.Context, userID, name string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("nameRequired", "Name is required")
	}
	if tooLong(name) {
		return nil, invalid("textTooLong", "Name is too long")
	}
	if err := s.store.UpdateUserName(ctx, userID, name); err != nil {
		return nil, err
	}
	return s.store.GetUserByID(ctx, userID)
}

// UpdateLanguage stores the preference; only supported languages are accepted.
func (s *ProfileService) UpdateLanguage(ctx context.Context, userID, lang string) (i18n.Language, error) {
	if !i18n.IsSupported(lang) {
		return "", invalid("invalidLanguage", "Language must be en or hi")
	}
	parsed := i18n.ParseLanguage(lang)
	if err := s.store.UpdateUserLanguage(ctx, userID, string(parsed)); err != nil {
		return "", err
	}
	return parsed, nil
}

// DeleteAccount removes the user with all occasions, contributions and sessions.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.store.DeleteUser(ctx, userID); err != nil {
		return err
	}
	utils.SafeInfo("🗑️ Account deleted: %s", utils.MaskID(userID))
	return nil
}

// AccountExport is everything stored about a user, for download.
type AccountExport struct {
	User       models.User      `json:"user"`
	Occasions  []OccasionExport `json:"occasions"`
	ExportedAt time.Time        `json:"exported_at"`
}

type OccasionExport struct {
	models.Occasion
	Contributions []models.Contribution `json:"contributions"`
}

func (s *ProfileService) Export(ctx context.Context, userID string) (*AccountExport, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	occasions, err := s.store.ListOccasions(ctx, userID)
	if err != nil {
		return nil, err
	}

	export := &AccountExport{User: *user, Occasions: make([]OccasionExport, 0, len(occasions)), ExportedAt: time.Now().UTC()}
	for _, o := range occasions {
		contributions, err := s.store.ListContributions(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		export.Occasions = append(export.Occasions, OccasionExport{Occasion: o, Contributions: contributions})
	}
	return export, nil
}
