package app

import (
	"context"
	"errors"
	"fmt"

	appconfig "github.com/doeshing/laptopprice/internal/application/config"
	"github.com/doeshing/laptopprice/internal/application/doctor"
	"github.com/doeshing/laptopprice/internal/application/estimate"
	"github.com/doeshing/laptopprice/internal/domain"
	"github.com/doeshing/laptopprice/internal/infrastructure/config"
	"github.com/doeshing/laptopprice/internal/infrastructure/model"
	"github.com/doeshing/laptopprice/internal/infrastructure/scaler"
	"github.com/doeshing/laptopprice/internal/infrastructure/session"
	"github.com/doeshing/laptopprice/internal/pkg/logger"
	"github.com/doeshing/laptopprice/internal/ports"
)

// Container wires up application services with infrastructure adapters.
// Artifacts are not loaded here; commands that predict call OpenPipeline.
type Container struct {
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	Logger         ports.Logger
	DoctorService  *doctor.Service
	Artifacts      doctor.ArtifactOpener

	// OpenSessionLog is overridable for tests.
	OpenSessionLog func(backend string) (ports.SessionLog, error)
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	if _, err := cfgLoader.Load(ctx); err != nil {
		return nil, err
	}

	log := logger.NewStd(verbose)
	artifacts := OnnxArtifacts{}

	return &Container{
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		Logger:         log,
		DoctorService: &doctor.Service{
			ConfigProvider: cfgLoader,
			Artifacts:      artifacts,
		},
		Artifacts:      artifacts,
		OpenSessionLog: session.New,
	}, nil
}

// Pipeline is a ready estimate service plus the session log it appends to.
type Pipeline struct {
	Config  domain.Config
	Service *estimate.Service
	Log     ports.SessionLog
}

// Close releases the model session and the session log.
func (p *Pipeline) Close() error {
	var errs []error
	if p.Service != nil && p.Service.Predictor != nil {
		errs = append(errs, p.Service.Predictor.Close())
	}
	if p.Log != nil {
		errs = append(errs, p.Log.Close())
	}
	return errors.Join(errs...)
}

// OpenPipeline loads both artifacts and a fresh session log. Any artifact
// failure is returned wrapped in domain.ErrArtifact before input is accepted.
func (c *Container) OpenPipeline(ctx context.Context) (*Pipeline, error) {
	cfg, err := c.ConfigProvider.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := appconfig.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	rescaler, err := c.Artifacts.OpenRescaler(cfg)
	if err != nil {
		return nil, err
	}
	if rescaler.Currency() != cfg.Currency.Native {
		c.Logger.Warn("scaler currency differs from config", map[string]interface{}{
			"scaler": rescaler.Currency(),
			"config": cfg.Currency.Native,
		})
	}

	var converter *domain.Converter
	if conv, ok, err := cfg.Converter(); err != nil {
		return nil, err
	} else if ok {
		conv.From = rescaler.Currency()
		converter = &conv
	}

	predictor, err := c.Artifacts.OpenPredictor(cfg)
	if err != nil {
		return nil, err
	}

	open := c.OpenSessionLog
	if open == nil {
		open = session.New
	}
	log, err := open(cfg.SessionBackend())
	if err != nil {
		_ = predictor.Close()
		return nil, err
	}

	c.Logger.Debug("pipeline ready", map[string]interface{}{
		"model":   cfg.Model.Path,
		"scaler":  cfg.Scaler.Path,
		"backend": cfg.SessionBackend(),
	})

	return &Pipeline{
		Config: cfg,
		Service: &estimate.Service{
			Predictor: predictor,
			Rescaler:  rescaler,
			Converter: converter,
			Logger:    c.Logger,
		},
		Log: log,
	}, nil
}

// OnnxArtifacts opens the ONNX model and the YAML scaler named by config.
type OnnxArtifacts struct{}

func (OnnxArtifacts) OpenPredictor(cfg domain.Config) (ports.Predictor, error) {
	return model.NewOnnxPredictor(model.Config{
		ModelPath:  cfg.Model.Path,
		ORTLibrary: cfg.Model.ORTLibrary,
		InputName:  cfg.Model.InputName,
		OutputName: cfg.Model.OutputName,
	})
}

func (OnnxArtifacts) OpenRescaler(cfg domain.Config) (ports.Rescaler, error) {
	return scaler.Load(cfg.Scaler.Path)
}

var _ doctor.ArtifactOpener = OnnxArtifacts{}
