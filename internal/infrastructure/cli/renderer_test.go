package cli

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/laptopprice/internal/application/estimate"
	"github.com/doeshing/laptopprice/internal/domain"
)

func TestRenderResultShowsConversionDisclaimer(t *testing.T) {
	converted := domain.NewMoney(740, "USD")
	res := estimate.Result{
		Stage: estimate.StageLogged,
		Estimate: domain.Estimate{
			Price:     domain.NewMoney(1000, "SGD"),
			Converted: &converted,
			Tier:      domain.TierMidRange,
		},
	}

	var buf bytes.Buffer
	RenderResult(&buf, res)
	out := buf.String()
	for _, want := range []string{"SGD 1,000.00", "USD 740.00", domain.ConversionDisclaimer, string(domain.TierMidRange)} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
	if strings.Contains(out, "Warning") {
		t.Errorf("logged result should not warn: %q", out)
	}
}

func TestRenderResultWithoutConversionOmitsDisclaimer(t *testing.T) {
	res := estimate.Result{
		Stage:    estimate.StageLogged,
		Estimate: domain.Estimate{Price: domain.NewMoney(650, "SGD"), Tier: domain.TierEntry},
	}
	var buf bytes.Buffer
	RenderResult(&buf, res)
	if strings.Contains(buf.String(), domain.ConversionDisclaimer) {
		t.Fatalf("disclaimer shown without conversion: %q", buf.String())
	}
}

func TestRenderResultFailure(t *testing.T) {
	var buf bytes.Buffer
	RenderResult(&buf, estimate.Result{
		Stage: estimate.StagePredictionError,
		Err:   errors.New("prediction error: tensor shape"),
	})
	if got := buf.String(); !strings.HasPrefix(got, "Prediction failed: ") {
		t.Fatalf("unexpected failure output %q", got)
	}
}

func TestRenderResultJSON(t *testing.T) {
	converted := domain.NewMoney(740, "USD")
	res := estimate.Result{
		Stage: estimate.StageLogged,
		Estimate: domain.Estimate{
			Row:       domain.FeatureRow{RatingScaled: 0.8, Generation: 12, Core: 3},
			Price:     domain.NewMoney(1000, "SGD"),
			Converted: &converted,
			Tier:      domain.TierMidRange,
		},
	}
	var buf bytes.Buffer
	if err := RenderResultJSON(&buf, res); err != nil {
		t.Fatalf("RenderResultJSON error: %v", err)
	}

	var doc struct {
		Stage      string `json:"stage"`
		Disclaimer string `json:"disclaimer"`
		Estimate   struct {
			Features map[string]float64 `json:"features"`
			Tier     string             `json:"tier"`
		} `json:"estimate"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if doc.Stage != "logged" || doc.Disclaimer == "" || doc.Estimate.Tier != string(domain.TierMidRange) {
		t.Fatalf("unexpected document %+v", doc)
	}
	if doc.Estimate.Features["Generation"] != 12 || doc.Estimate.Features["Rating_scaled"] != 0.8 {
		t.Fatalf("unexpected features %+v", doc.Estimate.Features)
	}
}

func TestExportCSV(t *testing.T) {
	ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	usd := domain.NewMoney(740, "USD")
	row := domain.FeatureRow{RatingScaled: 0.8, Generation: 12, Core: 3, RAM: 2, SSD: 2, Graphics: 1, OS: 1, Warranty: 1}
	entries := []domain.SessionEntry{
		{ID: "a", Seq: 1, Timestamp: ts, Row: row, Price: domain.NewMoney(1000, "SGD")},
		{ID: "b", Seq: 2, Timestamp: ts, Row: row, Price: domain.NewMoney(1000, "SGD"), Converted: &usd},
	}
	var buf bytes.Buffer
	if err := ExportEntries(&buf, entries, "CSV"); err != nil {
		t.Fatalf("ExportEntries error: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("invalid csv: %v", err)
	}
	want := [][]string{
		{"seq", "id", "timestamp", "Rating_scaled", "Generation", "Core", "Ram", "SSD", "Display", "Graphics", "OS", "warranty_int", "price", "currency", "converted", "converted_currency", "disclaimer"},
		{"1", "a", "2024-05-01T10:00:00Z", "0.8", "12", "3", "2", "2", "0", "1", "1", "1", "1000.00", "SGD", "", "", ""},
		{"2", "b", "2024-05-01T10:00:00Z", "0.8", "12", "3", "2", "2", "0", "1", "1", "1", "1000.00", "SGD", "740.00", "USD", domain.ConversionDisclaimer},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Fatalf("csv mismatch (-want +got):\n%s", diff)
	}
}

func TestExportJSONCarriesDisclaimerWhenConverted(t *testing.T) {
	usd := domain.NewMoney(740, "USD")
	tests := []struct {
		name    string
		entries []domain.SessionEntry
		want    string
	}{
		{"converted", []domain.SessionEntry{{Seq: 1, Price: domain.NewMoney(1000, "SGD"), Converted: &usd}}, domain.ConversionDisclaimer},
		{"native only", []domain.SessionEntry{{Seq: 1, Price: domain.NewMoney(1000, "SGD")}}, ""},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := ExportEntries(&buf, tt.entries, "json"); err != nil {
				t.Fatalf("ExportEntries error: %v", err)
			}
			var doc struct {
				Disclaimer string            `json:"disclaimer"`
				Entries    []json.RawMessage `json:"entries"`
			}
			if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
				t.Fatalf("invalid json %q: %v", buf.String(), err)
			}
			if doc.Disclaimer != tt.want {
				t.Errorf("disclaimer = %q, want %q", doc.Disclaimer, tt.want)
			}
			if len(doc.Entries) != len(tt.entries) {
				t.Errorf("entries = %d, want %d", len(doc.Entries), len(tt.entries))
			}
		})
	}
}

func TestRenderHistoryShowsFullRowAndDisclaimer(t *testing.T) {
	usd := domain.NewMoney(740, "USD")
	entries := []domain.SessionEntry{{
		Seq:       1,
		Timestamp: time.Now(),
		Row:       domain.FeatureRow{RatingScaled: 0.8, Generation: 12, Core: 4, RAM: 3, SSD: 3, Display: 2, Graphics: 2, OS: 3, Warranty: 2},
		Price:     domain.NewMoney(1000, "SGD"),
		Converted: &usd,
	}}

	var buf bytes.Buffer
	RenderHistory(&buf, entries)
	out := buf.String()
	for _, want := range []string{
		"8-Core Hybrid (4P+4E)", "8 GB LPDDR5", "1 TB", "OLED", "AMD", "Mac",
		"gen 12", "warranty 2y", "rating 4.2",
		"(~USD 740.00)", domain.ConversionDisclaimer,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("history %q missing %q", out, want)
		}
	}
}

func TestRenderHistoryWithoutConversionOmitsDisclaimer(t *testing.T) {
	var buf bytes.Buffer
	RenderHistory(&buf, []domain.SessionEntry{{Seq: 1, Timestamp: time.Now(), Price: domain.NewMoney(650, "SGD")}})
	if strings.Contains(buf.String(), domain.ConversionDisclaimer) {
		t.Fatalf("disclaimer shown without conversion: %q", buf.String())
	}
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	if err := ExportEntries(&bytes.Buffer{}, nil, "xml"); err == nil {
		t.Fatal("expected error for xml export")
	}
}

func TestRenderSummary(t *testing.T) {
	entries := []domain.SessionEntry{
		{Seq: 1, Price: domain.NewMoney(500, "SGD")},
		{Seq: 2, Price: domain.NewMoney(1500, "SGD")},
	}
	var buf bytes.Buffer
	RenderSummary(&buf, entries)
	out := buf.String()
	for _, want := range []string{"Estimates: 2", "SGD 500.00", "SGD 1,500.00", "Mean:    SGD 1,000.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary %q missing %q", out, want)
		}
	}
}

func TestRenderOptionsListsEveryLabel(t *testing.T) {
	var buf bytes.Buffer
	RenderOptions(&buf)
	out := buf.String()
	for _, cat := range domain.Categories() {
		for _, label := range cat.Labels() {
			if !strings.Contains(out, label) {
				t.Errorf("options output missing %s label %q", cat.Name(), label)
			}
		}
	}
}
