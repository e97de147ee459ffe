package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/doeshing/laptopprice/internal/application/estimate"
	"github.com/doeshing/laptopprice/internal/domain"
)

var printer = message.NewPrinter(language.English)

// formatMoney prints m with thousands grouping, e.g. "SGD 1,234.50".
func formatMoney(m domain.Money) string {
	return printer.Sprintf("%s %.2f", m.Currency, m.Float())
}

// RenderResult prints one submission outcome.
func RenderResult(out io.Writer, res estimate.Result) {
	if res.Err != nil {
		fmt.Fprintf(out, "Prediction failed: %v\n", res.Err)
		return
	}
	est := res.Estimate
	fmt.Fprintf(out, "Estimated price: %s\n", formatMoney(est.Price))
	fmt.Fprintf(out, "Tier: %s\n", est.Tier)
	if est.Converted != nil {
		fmt.Fprintf(out, "Approx. %s\n", formatMoney(*est.Converted))
		fmt.Fprintf(out, "Note: %s\n", domain.ConversionDisclaimer)
	}
	if res.Stage != estimate.StageLogged {
		fmt.Fprintln(out, "Warning: estimate was not recorded in the session log.")
	}
}

// resultJSON is the --output json shape of a submission.
type resultJSON struct {
	Stage      estimate.Stage   `json:"stage"`
	Estimate   *domain.Estimate `json:"estimate,omitempty"`
	Disclaimer string           `json:"disclaimer,omitempty"`
	Error      string           `json:"error,omitempty"`
}

// RenderResultJSON prints one submission outcome as indented JSON.
func RenderResultJSON(out io.Writer, res estimate.Result) error {
	doc := resultJSON{Stage: res.Stage}
	if res.Err != nil {
		doc.Error = res.Err.Error()
	} else {
		est := res.Estimate
		doc.Estimate = &est
		if est.Converted != nil {
			doc.Disclaimer = domain.ConversionDisclaimer
		}
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// RenderHistory prints the session log as a table, oldest first.
func RenderHistory(out io.Writer, entries []domain.SessionEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(out, "No estimates recorded yet.")
		return
	}
	converted := false
	for _, e := range entries {
		line := fmt.Sprintf("#%d %-16s %s", e.Seq, humanize.Time(e.Timestamp), formatMoney(e.Price))
		if e.Converted != nil {
			line += fmt.Sprintf("  (~%s)", formatMoney(*e.Converted))
			converted = true
		}
		fmt.Fprintf(out, "%s  %s\n", line, describeRow(e.Row))
	}
	if converted {
		fmt.Fprintf(out, "Note: %s\n", domain.ConversionDisclaimer)
	}
}

// RenderSummary prints count and price statistics of the session log.
func RenderSummary(out io.Writer, entries []domain.SessionEntry) {
	s := domain.Summarize(entries)
	if s.Count == 0 {
		fmt.Fprintln(out, "No estimates recorded yet.")
		return
	}
	currency := entries[0].Price.Currency
	fmt.Fprintf(out, "Estimates: %d\n", s.Count)
	fmt.Fprintf(out, "Lowest:  %s\n", formatMoney(domain.NewMoney(s.Min, currency)))
	fmt.Fprintf(out, "Highest: %s\n", formatMoney(domain.NewMoney(s.Max, currency)))
	fmt.Fprintf(out, "Mean:    %s\n", formatMoney(domain.NewMoney(s.Mean, currency)))
}

// ExportEntries writes the session log as csv or json.
func ExportEntries(out io.Writer, entries []domain.SessionEntry, format string) error {
	switch strings.ToLower(format) {
	case "json":
		doc := exportJSON{Entries: entries}
		if doc.Entries == nil {
			doc.Entries = []domain.SessionEntry{}
		}
		if hasConverted(entries) {
			doc.Disclaimer = domain.ConversionDisclaimer
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "csv":
		return exportCSV(out, entries)
	default:
		return fmt.Errorf("unsupported export format %q (use csv or json)", format)
	}
}

// exportJSON is the document written by "export json".
type exportJSON struct {
	Disclaimer string                `json:"disclaimer,omitempty"`
	Entries    []domain.SessionEntry `json:"entries"`
}

func hasConverted(entries []domain.SessionEntry) bool {
	for _, e := range entries {
		if e.Converted != nil {
			return true
		}
	}
	return false
}

func exportCSV(out io.Writer, entries []domain.SessionEntry) error {
	w := csv.NewWriter(out)
	header := append([]string{"seq", "id", "timestamp"}, domain.FeatureColumns()...)
	header = append(header, "price", "currency", "converted", "converted_currency", "disclaimer")
	if err := w.Write(header); err != nil {
		return err
	}
	for _, e := range entries {
		record := []string{strconv.Itoa(e.Seq), e.ID, e.Timestamp.Format(time.RFC3339)}
		for _, v := range e.Row.Values() {
			record = append(record, strconv.FormatFloat(float64(v), 'f', -1, 32))
		}
		record = append(record, e.Price.Amount.StringFixed(2), e.Price.Currency)
		if e.Converted != nil {
			record = append(record, e.Converted.Amount.StringFixed(2), e.Converted.Currency, domain.ConversionDisclaimer)
		} else {
			record = append(record, "", "", "")
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// RenderOptions lists every category with its codes.
func RenderOptions(out io.Writer) {
	for i, cat := range domain.Categories() {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%s:\n", cat.Name())
		for code, label := range cat.Labels() {
			fmt.Fprintf(out, "  %d  %s\n", code, label)
		}
	}
	fmt.Fprintf(out, "\ngeneration: %d-%d\n", domain.MinGeneration, domain.MaxGeneration)
	fmt.Fprintf(out, "warranty:   %d-%d years\n", domain.MinWarranty, domain.MaxWarranty)
	fmt.Fprintf(out, "rating:     %.1f-%.1f\n", domain.MinRating, domain.MaxRating)
}

// RenderDoctorReport prints one line per health check.
func RenderDoctorReport(out io.Writer, report domain.HealthReport) {
	for _, check := range report.Checks {
		fmt.Fprintf(out, "[%s] %s - %s\n",
			strings.ToUpper(string(check.Status)),
			check.Name,
			check.Details)
	}
}

func describeRow(row domain.FeatureRow) string {
	label := func(cat domain.Category, code int) string {
		if l, ok := cat.Label(code); ok {
			return l
		}
		return fmt.Sprintf("code %d", code)
	}
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, gen %d, warranty %dy, rating %.1f",
		label(domain.CoreCategory, row.Core),
		label(domain.RAMCategory, row.RAM),
		label(domain.SSDCategory, row.SSD),
		label(domain.DisplayCategory, row.Display),
		label(domain.GraphicsCategory, row.Graphics),
		label(domain.OSCategory, row.OS),
		row.Generation,
		row.Warranty,
		domain.UnscaleRating(row.RatingScaled))
}
