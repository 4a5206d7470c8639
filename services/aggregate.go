package services

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/nevta-digital/nevta-api/models"
)

const (
	summaryLimit      = 5
	summaryLabelRunes = 12
)

var inrPrinter = message.NewPrinter(language.MustParse("en-IN"))

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// CoerceAmount turns a loosely typed amount into a number. Missing,
// non-numeric and non-finite values count as 0.
func CoerceAmount(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		return finite(x)
	case float32:
		return finite(float64(x))
	case int:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint:
		return float64(x)
	case uint32:
		return float64(x)
	case uint64:
		return float64(x)
	case json.Number:
		return CoerceAmount(string(x))
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return finite(f)
	default:
		return 0
	}
}

// Aggregate counts the records and sums their amounts.
func Aggregate(contributions []models.Contribution) models.Totals {
	totals := models.Totals{Count: len(contributions)}
	for _, c := range contributions {
		totals.Total += finite(c.Amount)
	}
	return totals
}

// AggregateAmounts is Aggregate for raw, untyped amounts; every entry counts
// toward Count even when its amount coerces to 0.
func AggregateAmounts(amounts []any) models.Totals {
	totals := models.Totals{Count: len(amounts)}
	for _, a := range amounts {
		totals.Total += CoerceAmount(a)
	}
	return totals
}

// Column limits of the contributions table: NUMERIC(14,2) and VARCHAR(255).
const (
	MaxAmount     = 999999999999.99
	MaxTextLength = 255
)

func tooLong(s string) bool {
	return utf8.RuneCountInString(s) > MaxTextLength
}

// ParseAmount validates an amount typed into the entry form.
func ParseAmount(in models.AmountInput) (float64, error) {
	if !in.Present || in.Raw == "" {
		return 0, invalid("nameAmountRequired", "Name and Amount are required")
	}
	f, err := strconv.ParseFloat(in.Raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, invalid("invalidAmount", "Amount must be a number")
	}
	if f < 0 {
		return 0, invalid("invalidAmount", "Amount cannot be negative")
	}
	f = math.Round(f*100) / 100
	if f > MaxAmount {
		return 0, invalid("amountTooLarge", "Amount is too large")
	}
	return f, nil
}

// BuildSummary picks the chart entries from occasions listed newest first:
// zero totals are skipped and at most five are kept, in listing order.
func BuildSummary(occasions []models.OccasionWithTotals) []models.SummaryEntry {
	entries := []models.SummaryEntry{}
	for _, o := range occasions {
		if o.Total == 0 {
			continue
		}
		entries = append(entries, models.SummaryEntry{
			OccasionID: o.ID,
			Label:      TruncateLabel(o.Name, summaryLabelRunes),
			Total:      o.Total,
			Tooltip:    FormatINR(o.Total),
		})
		if len(entries) == summaryLimit {
			break
		}
	}
	return entries
}

// TruncateLabel shortens s to n runes, marking the cut with an ellipsis.
func TruncateLabel(s string, n int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= n {
		return string(runes)
	}
	return string(runes[:n]) + "…"
}

// FormatINR renders a rupee amount with en-IN digit grouping.
func FormatINR(amount float64) string {
	return inrPrinter.Sprintf("₹%v", number.Decimal(amount, number.MaxFractionDigits(2)))
}

// FormatAmount is the plain export form: shortest decimal, no grouping.
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(finite(amount), 'f', -1, 64)
}
