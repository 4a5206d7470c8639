// Package migration imports occasions exported from the legacy hosted
// document store into the current store.
package migration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/nevta-digital/nevta-api/models"
	"github.com/nevta-digital/nevta-api/services"
	"github.com/nevta-digital/nevta-api/store"
	"github.com/nevta-digital/nevta-api/utils"
)

// LegacyExport is the top-level document of a legacy export file.
type LegacyExport struct {
	Occasions []LegacyOccasion `json:"occasions"`
}

// LegacyOccasion accepts both field spellings the old clients wrote.
type LegacyOccasion struct {
	Name          string          `json:"name"`
	Title         string          `json:"title"`
	Date          string          `json:"date"`
	CreatedAt     json.RawMessage `json:"createdAt"`
	Entries       []LegacyEntry   `json:"entries"`
	Contributions []LegacyEntry   `json:"contributions"`
}

// LegacyEntry keeps amount untyped: old records hold numbers, numeric
// strings and the occasional garbage.
type LegacyEntry struct {
	GuestName        string          `json:"guestName"`
	Location         string          `json:"location"`
	Amount           any             `json:"amount"`
	Timestamp        json.RawMessage `json:"timestamp"`
	ContributionDate json.RawMessage `json:"contributionDate"`
}

type ImportReport struct {
	Occasions     int      `json:"occasions"`
	Contributions int      `json:"contributions"`
	Skipped       int      `json:"skipped"`
	Warnings      []string `json:"warnings"`
}

func (r *ImportReport) warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.Warnings = append(r.Warnings, msg)
	utils.SafeWarn("  ⚠️ %s", msg)
}

// ImportLegacyOccasions reads a legacy export and creates its occasions and
// contributions for ownerID. Records that cannot be imported are skipped and
// reported; only read and store failures abort the import.
func ImportLegacyOccasions(ctx context.Context, st store.Store, ownerID string, r io.Reader) (*ImportReport, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var export LegacyExport
	if err := dec.Decode(&export); err != nil {
		return nil, fmt.Errorf("decode legacy export: %w", err)
	}

	utils.SafeInfo("🚀 Importing %d legacy occasions for %s", len(export.Occasions), utils.MaskID(ownerID))
	report := &ImportReport{Warnings: []string{}}

	for i, legacy := range export.Occasions {
		occasion, ok := convertOccasion(legacy, ownerID, report, i)
		if !ok {
			report.Skipped++
			continue
		}
		if err := st.CreateOccasion(ctx, occasion); err != nil {
			return report, fmt.Errorf("create occasion %q: %w", occasion.Name, err)
		}
		report.Occasions++

		entries := legacy.Entries
		if len(entries) == 0 {
			entries = legacy.Contributions
		}
		for j, entry := range entries {
			contribution, ok := convertEntry(entry, occasion, report, j)
			if !ok {
				report.Skipped++
				continue
			}
			if err := st.CreateContribution(ctx, contribution); err != nil {
				return report, fmt.Errorf("create contribution for %q: %w", occasion.Name, err)
			}
			report.Contributions++
		}
		utils.SafeInfo("  ✅ %s: %d contributions", occasion.Name, len(entries))
	}

	utils.SafeInfo("📊 Import done: %d occasions, %d contributions, %d skipped",
		report.Occasions, report.Contributions, report.Skipped)
	return report, nil
}

func convertOccasion(legacy LegacyOccasion, ownerID string, report *ImportReport, index int) (*models.Occasion, bool) {
	name := strings.TrimSpace(legacy.Name)
	if name == "" {
		name = strings.TrimSpace(legacy.Title)
	}
	if name == "" {
		report.warnf("occasion #%d has no name, skipped", index+1)
		return nil, false
	}
	if utf8.RuneCountInString(name) > services.MaxTextLength {
		report.warnf("occasion #%d name is too long, skipped", index+1)
		return nil, false
	}

	createdAt, _ := parseLegacyTime(legacy.CreatedAt)
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	date := strings.TrimSpace(legacy.Date)
	if len(date) > len(time.DateOnly) {
		date = date[:len(time.DateOnly)]
	}
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		report.warnf("occasion %q has date %q, using creation date", name, legacy.Date)
		date = createdAt.In(services.IST).Format(time.DateOnly)
	}

	return &models.Occasion{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Name:      name,
		EventDate: date,
		CreatedAt: createdAt,
	}, true
}

func convertEntry(entry LegacyEntry, occasion *models.Occasion, report *ImportReport, index int) (*models.Contribution, bool) {
	guest := strings.TrimSpace(entry.GuestName)
	if guest == "" {
		report.warnf("%s: entry #%d has no guest name, skipped", occasion.Name, index+1)
		return nil, false
	}

	amount := services.CoerceAmount(entry.Amount)
	if amount < 0 {
		report.warnf("%s: negative amount %v for %s clamped to 0", occasion.Name, entry.Amount, guest)
		amount = 0
	}
	if amount > services.MaxAmount {
		report.warnf("%s: amount %v for %s is out of range, skipped", occasion.Name, entry.Amount, guest)
		return nil, false
	}
	location := strings.TrimSpace(entry.Location)
	if utf8.RuneCountInString(guest) > services.MaxTextLength || utf8.RuneCountInString(location) > services.MaxTextLength {
		report.warnf("%s: entry #%d has an over-long name or location, skipped", occasion.Name, index+1)
		return nil, false
	}

	at, ok := parseLegacyTime(entry.ContributionDate)
	if !ok {
		at, ok = parseLegacyTime(entry.Timestamp)
	}
	if !ok {
		at = occasion.CreatedAt
	}

	return &models.Contribution{
		ID:            uuid.NewString(),
		OccasionID:    occasion.ID,
		GuestName:     guest,
		Location:      location,
		Amount:        amount,
		ContributedAt: at,
	}, true
}

// parseLegacyTime understands the three shapes old exports used: RFC 3339
// strings, epoch milliseconds, and {"_seconds","_nanoseconds"} objects.
func parseLegacyTime(raw json.RawMessage) (time.Time, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return time.Time{}, false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, false
		}
		return t.UTC(), true
	}

	var ms json.Number
	if err := json.Unmarshal(raw, &ms); err == nil {
		n, err := ms.Int64()
		if err != nil || n <= 0 {
			return time.Time{}, false
		}
		return time.UnixMilli(n).UTC(), true
	}

	var ts struct {
		Seconds     int64 `json:"_seconds"`
		Nanoseconds int64 `json:"_nanoseconds"`
	}
	if err := json.Unmarshal(raw, &ts); err == nil && ts.Seconds > 0 {
		return time.Unix(ts.Seconds, ts.Nanoseconds).UTC(), true
	}
	return time.Time{}, false
}
