package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/laptopprice/assets"
	"github.com/doeshing/laptopprice/internal/domain"
	"github.com/doeshing/laptopprice/internal/pkg/filesystem"
	"github.com/doeshing/laptopprice/internal/ports"
)

// FileLoader loads YAML configuration from ~/.laptopprice/config.yaml
// (overridable via LAPTOPPRICE_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader. An empty path uses the default lookup.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. A missing file is created from the
// embedded defaults.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return domain.Config{}, fmt.Errorf("read config: %w", err)
		}
		cfg, err := DefaultConfig()
		if err != nil {
			return domain.Config{}, err
		}
		if err := writeDefault(path); err != nil {
			return domain.Config{}, err
		}
		return cfg, nil
	}

	// Keys absent from the file keep their embedded default.
	cfg, err := DefaultConfig()
	if err != nil {
		return domain.Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	return expandPaths(cfg), nil
}

// Path returns the resolved config file location.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return filesystem.ExpandPath(l.overridePath)
	}
	if custom := os.Getenv("LAPTOPPRICE_CONFIG"); custom != "" {
		return filesystem.ExpandPath(custom)
	}
	return filepath.Join(filesystem.AppDir(), "config.yaml")
}

// DefaultConfig decodes the embedded default configuration with paths
// expanded.
func DefaultConfig() (domain.Config, error) {
	var cfg domain.Config
	if err := yaml.NewDecoder(bytes.NewReader(assets.DefaultConfigYAML)).Decode(&cfg); err != nil {
		return domain.Config{}, fmt.Errorf("decode embedded defaults: %w", err)
	}
	return expandPaths(cfg), nil
}

func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, assets.DefaultConfigYAML, 0o600)
}

func expandPaths(cfg domain.Config) domain.Config {
	cfg.Model.Path = filesystem.ExpandPath(cfg.Model.Path)
	cfg.Model.ORTLibrary = filesystem.ExpandPath(cfg.Model.ORTLibrary)
	cfg.Scaler.Path = filesystem.ExpandPath(cfg.Scaler.Path)
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
