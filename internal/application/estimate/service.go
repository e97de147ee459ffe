package estimate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/laptopprice/internal/domain"
	"github.com/doeshing/laptopprice/internal/ports"
)

// Stage names the step a submission reached, for logging and rendering.
type Stage string

const (
	StageInputCollected  Stage = "input_collected"
	StageEncoded         Stage = "encoded"
	StagePredicted       Stage = "predicted"
	StageRescaled        Stage = "rescaled"
	StageLogged          Stage = "logged"
	StagePredictionError Stage = "prediction_failed"
)

// Service runs one submission through encode, predict, rescale and log. It
// holds the two artifacts for the process lifetime and never mutates them.
type Service struct {
	Predictor ports.Predictor
	Rescaler  ports.Rescaler
	Converter *domain.Converter
	Logger    ports.Logger

	// Now and NewID are overridable for tests.
	Now   func() time.Time
	NewID func() string
}

// Result is what the surface displays: either an estimate or a failure.
type Result struct {
	Stage    Stage
	Estimate domain.Estimate
	Entry    *domain.SessionEntry
	Err      error
}

// Run executes the pipeline for sel and appends to log on success only. sel
// must be canonical (see domain.Selection.Canonicalize).
func (s *Service) Run(ctx context.Context, log ports.SessionLog, sel domain.Selection) Result {
	if s.Predictor == nil || s.Rescaler == nil || s.Logger == nil || log == nil {
		return Result{Stage: StageInputCollected, Err: errors.New("estimate.Service dependencies not satisfied")}
	}

	row := domain.BuildFeatureRow(sel)
	s.Logger.Debug("encoded selection", map[string]interface{}{"row": row.Values()})

	normalized, err := s.Predictor.Predict(ctx, row)
	if err != nil {
		return s.fail(row, err)
	}

	price, err := s.Rescaler.Rescale(normalized)
	if err != nil {
		return s.fail(row, err)
	}

	est := domain.Estimate{
		Selection:  sel,
		Row:        row,
		Normalized: normalized,
		Price:      domain.NewMoney(price, s.Rescaler.Currency()),
		Tier:       domain.TierFor(price),
	}
	if s.Converter != nil {
		converted := s.Converter.Convert(est.Price.Float())
		est.Converted = &converted
	}

	entry := domain.SessionEntry{
		ID:        s.newID(),
		Seq:       log.Len() + 1,
		Timestamp: s.now(),
		Row:       row,
		Price:     est.Price,
		Converted: est.Converted,
	}
	if err := log.Append(entry); err != nil {
		s.Logger.Warn("session log append failed", map[string]interface{}{"error": err.Error()})
		return Result{Stage: StageRescaled, Estimate: est}
	}

	s.Logger.Info("estimate served", map[string]interface{}{
		"seq":        entry.Seq,
		"normalized": normalized,
		"price":      est.Price.String(),
	})
	return Result{Stage: StageLogged, Estimate: est, Entry: &entry}
}

func (s *Service) fail(row domain.FeatureRow, err error) Result {
	if !errors.Is(err, domain.ErrPrediction) {
		err = fmt.Errorf("%w: %v", domain.ErrPrediction, err)
	}
	s.Logger.Error("prediction failed", err, map[string]interface{}{"row": row.Values()})
	return Result{Stage: StagePredictionError, Err: err}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}
