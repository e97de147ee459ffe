package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/doeshing/laptopprice/internal/app"
	"github.com/doeshing/laptopprice/internal/domain"
	"github.com/doeshing/laptopprice/internal/infrastructure/session"
	"github.com/doeshing/laptopprice/internal/pkg/logger"
	"github.com/doeshing/laptopprice/internal/ports"
)

func testContainer(pred *stubPredictor) *app.Container {
	artifacts := stubArtifacts{pred: pred}
	return &app.Container{
		ConfigProvider: stubProvider{cfg: testConfig()},
		Logger:         logger.New(io.Discard, slog.LevelError),
		Artifacts:      artifacts,
		OpenSessionLog: session.New,
	}
}

func testPipeline(pred *stubPredictor) *app.Pipeline {
	p, err := testContainer(pred).OpenPipeline(context.Background())
	if err != nil {
		panic(err)
	}
	return p
}

func testConfig() domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		Model:               domain.ModelSettings{Path: "/tmp/model.onnx"},
		Scaler:              domain.ScalerSettings{Path: "/tmp/scaler.yaml"},
		Currency:            domain.CurrencySettings{Native: "SGD", Display: "USD", DisplayRate: 0.74, Convert: true},
		Session:             domain.SessionSettings{Backend: domain.SessionBackendMemory},
	}
}

type stubProvider struct{ cfg domain.Config }

func (s stubProvider) Load(context.Context) (domain.Config, error) { return s.cfg, nil }

type stubArtifacts struct{ pred *stubPredictor }

func (s stubArtifacts) OpenPredictor(domain.Config) (ports.Predictor, error) { return s.pred, nil }

func (s stubArtifacts) OpenRescaler(domain.Config) (ports.Rescaler, error) {
	return linearRescaler{max: 2000}, nil
}

// stubPredictor returns value, or failWith for the calls listed in failOn
// (1-based).
type stubPredictor struct {
	value    float64
	failOn   map[int]bool
	failWith error
	calls    int
}

func (p *stubPredictor) Predict(context.Context, domain.FeatureRow) (float64, error) {
	p.calls++
	if p.failOn[p.calls] {
		return 0, p.failWith
	}
	return p.value, nil
}

func (p *stubPredictor) Close() error { return nil }

type linearRescaler struct{ max float64 }

func (r linearRescaler) Rescale(v float64) (float64, error) { return v * r.max, nil }
func (r linearRescaler) Currency() string                   { return "SGD" }
