package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/doeshing/laptopprice/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if cfg.ConfigFormatVersion != "" && cfg.ConfigFormatVersion != "1" {
		return fmt.Errorf("unsupported config_format_version %q", cfg.ConfigFormatVersion)
	}
	if err := validateArtifacts(cfg); err != nil {
		return err
	}
	if err := validateCurrency(cfg.Currency); err != nil {
		return err
	}
	return validateSession(cfg.Session)
}

func validateArtifacts(cfg domain.Config) error {
	if strings.TrimSpace(cfg.Model.Path) == "" {
		return errors.New("model.path must be set")
	}
	if strings.TrimSpace(cfg.Scaler.Path) == "" {
		return errors.New("scaler.path must be set")
	}
	return nil
}

func validateCurrency(cur domain.CurrencySettings) error {
	if cur.Native == "" {
		return errors.New("currency.native must be set")
	}
	if !cur.Convert {
		return nil
	}
	if cur.Display == "" {
		return errors.New("currency.display must be set when convert is enabled")
	}
	if cur.DisplayRate <= 0 {
		return fmt.Errorf("currency.display_rate must be > 0, got %v", cur.DisplayRate)
	}
	return nil
}

func validateSession(s domain.SessionSettings) error {
	switch s.Backend {
	case "", domain.SessionBackendMemory, domain.SessionBackendSQLite:
		return nil
	default:
		return fmt.Errorf("session.backend must be memory|sqlite, got %s", s.Backend)
	}
}
