package domain_test

import (
	"testing"

	"github.com/doeshing/laptopprice/internal/domain"
)

func TestSummarize(t *testing.T) {
	if got := domain.Summarize(nil); got != (domain.SessionSummary{}) {
		t.Fatalf("Summarize(nil) = %+v, want zero", got)
	}

	entries := []domain.SessionEntry{
		{Price: domain.NewMoney(1200, "SGD")},
		{Price: domain.NewMoney(600, "SGD")},
		{Price: domain.NewMoney(2400, "SGD")},
	}
	got := domain.Summarize(entries)
	want := domain.SessionSummary{Count: 3, Min: 600, Max: 2400, Mean: 1400}
	if got != want {
		t.Fatalf("Summarize = %+v, want %+v", got, want)
	}
}

func TestHealthReportReady(t *testing.T) {
	report := domain.HealthReport{Checks: []domain.HealthCheck{
		{Name: "a", Status: domain.HealthOK},
		{Name: "b", Status: domain.HealthWarn},
	}}
	if !report.Ready() {
		t.Fatal("warnings alone should not block estimates")
	}
	report.Checks = append(report.Checks, domain.HealthCheck{Name: "c", Status: domain.HealthError})
	if report.Ready() {
		t.Fatal("an error check should block estimates")
	}
}
