package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/kr/text"

	"github.com/nevta-digital/nevta-api/i18n"
	"github.com/nevta-digital/nevta-api/models"
)

// IST is the display zone for dates in exports and reports.
var IST = time.FixedZone("IST", 5*60*60+30*60)

var csvHeader = []string{"Guest Name", "Location", "Amount", "Date"}

// ============================================================================
// CSV EXPORT
// ============================================================================

// WriteCSV renders contributions as CSV: a header line, then one line per
// record, no trailing newline. Fields are quoted only when they need it.
func WriteCSV(w io.Writer, contributions []models.Contribution) error {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, c := range contributions {
		row := []string{
			c.GuestName,
			c.Location,
			FormatAmount(c.Amount),
			c.ContributedAt.In(IST).Format(time.DateOnly),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	_, err := w.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
	return err
}

// ReportFilename builds the download name for an occasion export.
func ReportFilename(occasionName, ext string) string {
	safe := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r) {
			return r
		}
		return '_'
	}, strings.TrimSpace(occasionName))
	if safe == "" {
		safe = "Occasion"
	}
	return fmt.Sprintf("Nevta_Report_%s.%s", safe, ext)
}

// ============================================================================
// PRINTABLE REPORT
// ============================================================================

const (
	ReportHTML = "html"
	ReportText = "text"
)

type reportRow struct {
	Index     int
	GuestName string
	Location  string
	Amount    string
	Date      string
}

type reportView struct {
	Lang        string
	Labels      map[string]string
	Occasion    string
	EventDate   string
	Rows        []reportRow
	Count       int
	Total       string
	GeneratedAt string
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<title>{{index .Labels "reportTitle"}} - {{.Occasion}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #222; }
h1 { color: #b45309; margin-bottom: 0; }
table { width: 100%; border-collapse: collapse; margin-top: 1rem; }
th, td { border: 1px solid #ddd; padding: 6px 8px; text-align: left; }
th { background: #fef3c7; }
td.amount { text-align: right; }
.totals { margin-top: 1rem; font-weight: bold; }
footer { margin-top: 2rem; font-size: 0.8rem; color: #666; }
@media print { body { margin: 0; } }
</style>
</head>
<body>
<h1>{{index .Labels "reportTitle"}}</h1>
<h2>{{.Occasion}} ({{.EventDate}})</h2>
<table>
<thead><tr><th>#</th><th>{{index .Labels "guestName"}}</th><th>{{index .Labels "location"}}</th><th>{{index .Labels "amount"}}</th><th>{{index .Labels "date"}}</th></tr></thead>
<tbody>
{{range .Rows}}<tr><td>{{.Index}}</td><td>{{.GuestName}}</td><td>{{.Location}}</td><td class="amount">{{.Amount}}</td><td>{{.Date}}</td></tr>
{{end}}</tbody>
</table>
<p class="totals">{{index .Labels "guestCount"}}: {{.Count}} | {{index .Labels "totalCollection"}}: {{.Total}}</p>
<footer>{{index .Labels "reportGeneratedBy"}} {{index .Labels "appName"}} | {{index .Labels "generatedOn"}} {{.GeneratedAt}}</footer>
</body>
</html>
`))

// RenderReport writes the printable occasion report in the given format,
// labelled in lang.
func RenderReport(w io.Writer, format string, tr *i18n.Translator, lang i18n.Language, occasion models.Occasion, contributions []models.Contribution, generatedAt time.Time) error {
	view := buildReportView(tr, lang, occasion, contributions, generatedAt)
	switch format {
	case ReportHTML, "":
		return reportTemplate.Execute(w, view)
	case ReportText:
		_, err := io.WriteString(w, renderTextReport(view))
		return err
	default:
		return invalid("invalidFormat", "format must be html or text")
	}
}

func buildReportView(tr *i18n.Translator, lang i18n.Language, occasion models.Occasion, contributions []models.Contribution, generatedAt time.Time) reportView {
	totals := Aggregate(contributions)
	rows := make([]reportRow, 0, len(contributions))
	for i, c := range contributions {
		loc := c.Location
		if loc == "" {
			loc = "-"
		}
		rows = append(rows, reportRow{
			Index:     i + 1,
			GuestName: c.GuestName,
			Location:  loc,
			Amount:    FormatINR(c.Amount),
			Date:      c.ContributedAt.In(IST).Format("02 Jan 2006, 15:04"),
		})
	}
	return reportView{
		Lang:        string(lang),
		Labels:      tr.Table(lang),
		Occasion:    occasion.Name,
		EventDate:   occasion.EventDate,
		Rows:        rows,
		Count:       totals.Count,
		Total:       FormatINR(totals.Total),
		GeneratedAt: generatedAt.In(IST).Format("02 Jan 2006, 15:04"),
	}
}

const textReportWidth = 72

func renderTextReport(v reportView) string {
	var b strings.Builder
	title := fmt.Sprintf("%s: %s (%s)", v.Labels["reportTitle"], v.Occasion, v.EventDate)
	b.WriteString(text.Wrap(title, textReportWidth))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", textReportWidth))
	b.WriteString("\n")

	for _, r := range v.Rows {
		line := fmt.Sprintf("%d. %s, %s", r.Index, r.GuestName, r.Location)
		b.WriteString(text.Wrap(line, textReportWidth-16))
		b.WriteString("\n")
		b.WriteString(text.Indent(fmt.Sprintf("%s | %s\n", r.Amount, r.Date), "    "))
	}

	b.WriteString(strings.Repeat("-", textReportWidth))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s: %d\n", v.Labels["guestCount"], v.Count)
	fmt.Fprintf(&b, "%s: %s\n", v.Labels["totalCollection"], v.Total)
	footer := fmt.Sprintf("%s %s | %s %s", v.Labels["reportGeneratedBy"], v.Labels["appName"], v.Labels["generatedOn"], v.GeneratedAt)
	b.WriteString(text.Wrap(footer, textReportWidth))
	b.WriteString("\n")
	return b.String()
}
