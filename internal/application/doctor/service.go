package doctor

import (
	"context"
	"fmt"
	"os"

	appconfig "github.com/doeshing/laptopprice/internal/application/config"
	"github.com/doeshing/laptopprice/internal/domain"
	"github.com/doeshing/laptopprice/internal/ports"
)

// ArtifactOpener loads both artifacts the way a prediction command would.
type ArtifactOpener interface {
	OpenPredictor(domain.Config) (ports.Predictor, error)
	OpenRescaler(domain.Config) (ports.Rescaler, error)
}

// Service runs startup diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Artifacts      ArtifactOpener
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	if err := appconfig.Validate(cfg); err != nil {
		checks = append(checks, fail("Config file", err.Error()))
	} else {
		checks = append(checks, ok("Config file", fmt.Sprintf("format %s", cfg.ConfigFormatVersion)))
	}

	checks = append(checks, fileCheck("Model file", cfg.Model.Path))
	checks = append(checks, fileCheck("Scaler file", cfg.Scaler.Path))

	var rescaler ports.Rescaler
	if s.Artifacts != nil {
		if r, err := s.Artifacts.OpenRescaler(cfg); err != nil {
			checks = append(checks, fail("Scaler artifact", err.Error()))
		} else {
			rescaler = r
			checks = append(checks, ok("Scaler artifact", fmt.Sprintf("native currency %s", r.Currency())))
		}
		if p, err := s.Artifacts.OpenPredictor(cfg); err != nil {
			checks = append(checks, fail("Model artifact", err.Error()))
		} else {
			checks = append(checks, ok("Model artifact", fmt.Sprintf("accepts %d features", domain.FeatureCount)))
			_ = p.Close()
		}
	}

	checks = append(checks, currencyCheck(cfg, rescaler))

	return domain.HealthReport{Checks: checks}, nil
}

func fileCheck(name, path string) domain.HealthCheck {
	info, err := os.Stat(path)
	switch {
	case err != nil:
		return fail(name, err.Error())
	case info.IsDir():
		return fail(name, fmt.Sprintf("%s is a directory", path))
	default:
		return ok(name, path)
	}
}

func currencyCheck(cfg domain.Config, rescaler ports.Rescaler) domain.HealthCheck {
	if rescaler != nil && rescaler.Currency() != cfg.Currency.Native {
		return warn("Currency", fmt.Sprintf("scaler reports %s but config native is %s", rescaler.Currency(), cfg.Currency.Native))
	}
	if !cfg.Currency.Convert {
		return ok("Currency", fmt.Sprintf("%s only", cfg.Currency.Native))
	}
	return warn("Currency", fmt.Sprintf("%s->%s at fixed rate %v (static approximation)", cfg.Currency.Native, cfg.Currency.Display, cfg.Currency.DisplayRate))
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
