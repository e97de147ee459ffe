package estimate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/doeshing/laptopprice/internal/domain"
	"github.com/doeshing/laptopprice/internal/infrastructure/session"
	"github.com/doeshing/laptopprice/internal/pkg/logger"
)

func referenceSelection() domain.Selection {
	return domain.Selection{
		Generation: 12,
		Core:       "8-Core Performance",
		RAM:        "16 GB DDR4",
		SSD:        "512 GB",
		Display:    "FHD",
		Graphics:   "NVIDIA",
		OS:         "Windows 11",
		Warranty:   1,
		Rating:     4.2,
	}
}

func newService(p *stubPredictor, r stubRescaler) *Service {
	conv, _ := domain.NewConverter("SGD", "USD", 0.5)
	return &Service{
		Predictor: p,
		Rescaler:  r,
		Converter: &conv,
		Logger:    logger.NewStd(false),
		Now:       func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) },
		NewID:     func() string { return "entry" },
	}
}

func TestRunPassesExactRowAndLogs(t *testing.T) {
	p := &stubPredictor{value: 0.2}
	svc := newService(p, stubRescaler{min: 500, max: 3000})
	log := session.NewMemoryLog()

	res := svc.Run(context.Background(), log, referenceSelection())
	if res.Err != nil {
		t.Fatalf("Run error: %v", res.Err)
	}
	if res.Stage != StageLogged {
		t.Fatalf("stage = %s, want %s", res.Stage, StageLogged)
	}

	wantRow := domain.FeatureRow{RatingScaled: 0.8, Generation: 12, Core: 3, RAM: 2, SSD: 2, Display: 0, Graphics: 1, OS: 1, Warranty: 1}
	if diff := cmp.Diff(wantRow, p.rows[0], cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Fatalf("row passed to predictor (-want +got):\n%s", diff)
	}

	if got := res.Estimate.Price.String(); got != "SGD 1000.00" {
		t.Errorf("price = %s, want SGD 1000.00", got)
	}
	if res.Estimate.Converted == nil || res.Estimate.Converted.String() != "USD 500.00" {
		t.Errorf("converted = %v, want USD 500.00", res.Estimate.Converted)
	}
	if res.Estimate.Tier != domain.TierMidRange {
		t.Errorf("tier = %q", res.Estimate.Tier)
	}

	entries, _ := log.List()
	if len(entries) != 1 || entries[0].Seq != 1 || entries[0].ID != "entry" {
		t.Fatalf("log entries = %+v", entries)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	svc := newService(&stubPredictor{value: 0.37}, stubRescaler{min: 250, max: 6500})
	log := session.NewMemoryLog()

	first := svc.Run(context.Background(), log, referenceSelection())
	second := svc.Run(context.Background(), log, referenceSelection())
	if !first.Estimate.Price.Amount.Equal(second.Estimate.Price.Amount) {
		t.Fatalf("prices differ: %s vs %s", first.Estimate.Price, second.Estimate.Price)
	}
	entries, _ := log.List()
	if len(entries) != 2 || entries[0].Seq != 1 || entries[1].Seq != 2 {
		t.Fatalf("expected two ordered entries, got %+v", entries)
	}
}

func TestRunPredictionFailureSkipsLog(t *testing.T) {
	svc := newService(&stubPredictor{err: errors.New("shape mismatch")}, stubRescaler{min: 0, max: 1})
	log := session.NewMemoryLog()

	res := svc.Run(context.Background(), log, referenceSelection())
	if res.Stage != StagePredictionError {
		t.Fatalf("stage = %s", res.Stage)
	}
	if !errors.Is(res.Err, domain.ErrPrediction) {
		t.Fatalf("err = %v, want ErrPrediction", res.Err)
	}
	if log.Len() != 0 {
		t.Fatalf("failed prediction appended %d entries", log.Len())
	}
}

func TestRunRescaleFailureSkipsLog(t *testing.T) {
	svc := newService(&stubPredictor{value: 0.5}, stubRescaler{err: errors.New("bad scaler")})
	log := session.NewMemoryLog()

	res := svc.Run(context.Background(), log, referenceSelection())
	if !errors.Is(res.Err, domain.ErrPrediction) || log.Len() != 0 {
		t.Fatalf("res = %+v, log len = %d", res, log.Len())
	}
}

func TestRunRecoversAfterFailure(t *testing.T) {
	p := &stubPredictor{err: errors.New("boom")}
	svc := newService(p, stubRescaler{min: 0, max: 1000})
	log := session.NewMemoryLog()

	_ = svc.Run(context.Background(), log, referenceSelection())
	p.err = nil
	p.value = 0.9
	res := svc.Run(context.Background(), log, referenceSelection())
	if res.Err != nil {
		t.Fatalf("second submission failed: %v", res.Err)
	}
	entries, _ := log.List()
	if len(entries) != 1 || entries[0].Seq != 1 {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestRunWithoutConverter(t *testing.T) {
	svc := newService(&stubPredictor{value: 0.1}, stubRescaler{min: 0, max: 1000})
	svc.Converter = nil
	res := svc.Run(context.Background(), session.NewMemoryLog(), referenceSelection())
	if res.Estimate.Converted != nil {
		t.Fatalf("converted = %v, want nil", res.Estimate.Converted)
	}
}

func TestRunMissingDependencies(t *testing.T) {
	svc := &Service{}
	res := svc.Run(context.Background(), session.NewMemoryLog(), referenceSelection())
	if res.Err == nil {
		t.Fatal("expected dependency error")
	}
}

type stubPredictor struct {
	value float64
	err   error
	rows  []domain.FeatureRow
}

func (s *stubPredictor) Predict(_ context.Context, row domain.FeatureRow) (float64, error) {
	s.rows = append(s.rows, row)
	return s.value, s.err
}

func (s *stubPredictor) Close() error { return nil }

type stubRescaler struct {
	min, max float64
	err      error
}

func (s stubRescaler) Rescale(v float64) (float64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return v*(s.max-s.min) + s.min, nil
}

func (s stubRescaler) Currency() string { return "SGD" }
