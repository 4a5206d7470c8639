package services

import (
	"sort"
	"strings"

	"github.com/nevta-digital/nevta-api/models"
)

const maxLocationSuggestions = 5

// SuggestLocations returns the distinct locations already recorded for an
// occasion, sorted. With a query, only locations containing it
// (case-insensitive) and not equal to it are kept, capped at five.
func SuggestLocations(contributions []models.Contribution, query string) []string {
	seen := make(map[string]struct{})
	locations := []string{}
	for _, c := range contributions {
		loc := strings.TrimSpace(c.Location)
		if loc == "" {
			continue
		}
		if _, dup := seen[loc]; dup {
			continue
		}
		seen[loc] = struct{}{}
		locations = append(locations, loc)
	}
	sort.Strings(locations)

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return locations
	}

	matches := []string{}
	for _, loc := range locations {
		lower := strings.ToLower(loc)
		if strings.Contains(lower, q) && lower != q {
			matches = append(matches, loc)
			if len(matches) == maxLocationSuggestions {
				break
			}
		}
	}
	return matches
}

// FilterContributions keeps records whose guest name or location contains q.
func FilterContributions(contributions []models.Contribution, q string) []models.Contribution {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return contributions
	}
	out := []models.Contribution{}
	for _, c := range contributions {
		if strings.Contains(strings.ToLower(c.GuestName), q) || strings.Contains(strings.ToLower(c.Location), q) {
			out = append(out, c)
		}
	}
	return out
}

// FilterOccasions keeps occasions whose name contains q.
func FilterOccasions(occasions []models.Occasion, q string) []models.Occasion {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return occasions
	}
	out := []models.Occasion{}
	for _, o := range occasions {
		if strings.Contains(strings.ToLower(o.Name), q) {
			out = append(out, o)
		}
	}
	return out
}
