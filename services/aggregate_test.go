package services

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/nevta-digital/nevta-api/models"
)

func TestAggregateAmountsCoercesLooseValues(t *testing.T) {
	totals := AggregateAmounts([]any{500.0, "1100", nil, "abc", json.Number("1"), math.NaN(), true})
	if totals.Count != 7 {
		t.Fatalf("count = %d, want 7", totals.Count)
	}
	if totals.Total != 1601 {
		t.Fatalf("total = %v, want 1601", totals.Total)
	}
}

func TestAggregateEmpty(t *testing.T) {
	if got := Aggregate(nil); got != (models.Totals{}) {
		t.Fatalf("got %+v", got)
	}
	if got := AggregateAmounts([]any{}); got != (models.Totals{}) {
		t.Fatalf("got %+v", got)
	}
}

func TestAggregateSumsAmounts(t *testing.T) {
	totals := Aggregate([]models.Contribution{{Amount: 501}, {Amount: 1100}, {Amount: 0}, {Amount: math.Inf(1)}})
	if totals.Count != 4 || totals.Total != 1601 {
		t.Fatalf("got %+v", totals)
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		name    string
		in      models.AmountInput
		want    float64
		wantErr bool
	}{
		{"number", models.AmountInput{Raw: "501", Present: true}, 501, false},
		{"decimal rounds to paise", models.AmountInput{Raw: "10.125", Present: true}, 10.13, false},
		{"largest whole amount", models.AmountInput{Raw: "999999999999", Present: true}, 999999999999, false},
		{"zero", models.AmountInput{Raw: "0", Present: true}, 0, false},
		{"missing", models.AmountInput{}, 0, true},
		{"empty", models.AmountInput{Raw: "", Present: true}, 0, true},
		{"text", models.AmountInput{Raw: "abc", Present: true}, 0, true},
		{"negative", models.AmountInput{Raw: "-5", Present: true}, 0, true},
		{"infinite", models.AmountInput{Raw: "Inf", Present: true}, 0, true},
		{"beyond column precision", models.AmountInput{Raw: "1e20", Present: true}, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseAmount(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Fatalf("got %v, %v; want %v", got, err, tc.want)
			}
		})
	}
}

func TestAmountInputAcceptsNumberOrString(t *testing.T) {
	var req models.CreateContributionRequest
	if err := json.Unmarshal([]byte(`{"guest_name":"A","amount":" 250 "}`), &req); err != nil {
		t.Fatal(err)
	}
	if v, err := ParseAmount(req.Amount); err != nil || v != 250 {
		t.Fatalf("string amount: %v %v", v, err)
	}
	if err := json.Unmarshal([]byte(`{"guest_name":"A","amount":101}`), &req); err != nil {
		t.Fatal(err)
	}
	if v, err := ParseAmount(req.Amount); err != nil || v != 101 {
		t.Fatalf("number amount: %v %v", v, err)
	}
}

func TestBuildSummarySkipsZeroAndCapsAtFive(t *testing.T) {
	// newest first, as listed by the store
	totals := []float64{100, 0, 200, 300, 0, 400, 500, 600, 700}
	var occasions []models.OccasionWithTotals
	for i, total := range totals {
		occasions = append(occasions, models.OccasionWithTotals{
			Occasion: models.Occasion{ID: string(rune('a' + i)), Name: "Occasion"},
			Total:    total,
		})
	}

	entries := BuildSummary(occasions)
	if len(entries) != 5 {
		t.Fatalf("len = %d, want 5", len(entries))
	}
	wantIDs := []string{"a", "c", "d", "f", "g"}
	for i, e := range entries {
		if e.OccasionID != wantIDs[i] {
			t.Fatalf("entry %d = %s, want %s", i, e.OccasionID, wantIDs[i])
		}
		if e.Total == 0 {
			t.Fatalf("zero total in summary")
		}
	}
}

func TestBuildSummaryLabelsAndTooltip(t *testing.T) {
	entries := BuildSummary([]models.OccasionWithTotals{{
		Occasion: models.Occasion{ID: "x", Name: "Sharma Wedding Reception"},
		Total:    2500,
	}})
	if len(entries) != 1 {
		t.Fatalf("len = %d", len(entries))
	}
	if entries[0].Label != "Sharma Weddi…" {
		t.Fatalf("label = %q", entries[0].Label)
	}
	if entries[0].Tooltip != "₹2,500" {
		t.Fatalf("tooltip = %q", entries[0].Tooltip)
	}
}

func TestTruncateLabelCountsRunes(t *testing.T) {
	if got := TruncateLabel("शर्मा जी की शादी", 5); got != "शर्मा…" {
		t.Fatalf("got %q", got)
	}
	if got := TruncateLabel("Tilak", 12); got != "Tilak" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatAmount(t *testing.T) {
	cases := map[float64]string{501: "501", 10.5: "10.5", 0: "0", 1100.25: "1100.25"}
	for in, want := range cases {
		if got := FormatAmount(in); got != want {
			t.Fatalf("FormatAmount(%v) = %q, want %q", in, got, want)
		}
	}
}
