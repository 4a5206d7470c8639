package services

import (
	"reflect"
	"testing"

	"github.com/nevta-digital/nevta-api/models"
)

func contributionsAt(locations ...string) []models.Contribution {
	out := make([]models.Contribution, 0, len(locations))
	for _, loc := range locations {
		out = append(out, models.Contribution{GuestName: "Guest", Location: loc})
	}
	return out
}

func TestSuggestLocations(t *testing.T) {
	list := contributionsAt("Jodhpur", "Jaipur", "", "Jodhpur", "Ajmer", "jaisalmer", "Jai", "Bikaner")

	cases := []struct {
		query string
		want  []string
	}{
		{"", []string{"Ajmer", "Bikaner", "Jai", "Jaipur", "Jodhpur", "jaisalmer"}},
		{"jai", []string{"Jaipur", "jaisalmer"}},
		{"JODH", []string{"Jodhpur"}},
		{"jodhpur", []string{}},
		{"delhi", []string{}},
	}
	for _, tc := range cases {
		if got := SuggestLocations(list, tc.query); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("SuggestLocations(%q) = %v, want %v", tc.query, got, tc.want)
		}
	}
}

func TestSuggestLocationsCapsAtFive(t *testing.T) {
	list := contributionsAt("Pur1", "Pur2", "Pur3", "Pur4", "Pur5", "Pur6", "Pur7")
	if got := SuggestLocations(list, "pur"); len(got) != 5 {
		t.Fatalf("got %d suggestions, want 5", len(got))
	}
}

func TestFilterContributions(t *testing.T) {
	list := []models.Contribution{
		{ID: "1", GuestName: "Ramesh Sharma", Location: "Jaipur"},
		{ID: "2", GuestName: "Mukesh Jain", Location: "Jodhpur"},
		{ID: "3", GuestName: "Sita Devi", Location: ""},
	}
	got := FilterContributions(list, "jain")
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("by name: %+v", got)
	}
	got = FilterContributions(list, "JAIPUR")
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("by location: %+v", got)
	}
	if got := FilterContributions(list, "  "); len(got) != 3 {
		t.Fatalf("blank query should keep all, got %d", len(got))
	}
}

func TestFilterOccasions(t *testing.T) {
	list := []models.Occasion{{ID: "1", Name: "Wedding"}, {ID: "2", Name: "Mundan"}}
	got := FilterOccasions(list, "wed")
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("got %+v", got)
	}
}
