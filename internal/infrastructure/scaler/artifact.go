package scaler

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/laptopprice/internal/domain"
	"github.com/doeshing/laptopprice/internal/ports"
)

// Supported scaler kinds.
const (
	KindMinMax   = "minmax"
	KindStandard = "standard"
)

const supportedFormatVersion = 1

// File is the on-disk schema of the scaler artifact. It carries the fitted
// parameters of a single-column price scaler.
type File struct {
	FormatVersion int        `yaml:"format_version"`
	Kind          string     `yaml:"kind"`
	FeatureRange  [2]float64 `yaml:"feature_range"`
	DataMin       float64    `yaml:"data_min"`
	DataMax       float64    `yaml:"data_max"`
	Mean          float64    `yaml:"mean"`
	Scale         float64    `yaml:"scale"`
	Currency      string     `yaml:"currency"`
}

// Artifact inverts the normalized model output back to a price.
type Artifact struct {
	file File
}

// Load reads and validates the artifact at path. Every failure wraps
// domain.ErrArtifact.
func Load(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read scaler %s: %v", domain.ErrArtifact, path, err)
	}
	return Parse(data)
}

// Parse decodes and validates artifact bytes.
func Parse(data []byte) (*Artifact, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: decode scaler: %v", domain.ErrArtifact, err)
	}
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrArtifact, err)
	}
	return &Artifact{file: f}, nil
}

func (f *File) validate() error {
	if f.FormatVersion != supportedFormatVersion {
		return fmt.Errorf("scaler format_version %d unsupported (want %d)", f.FormatVersion, supportedFormatVersion)
	}
	switch f.Kind {
	case KindMinMax:
		if f.FeatureRange == [2]float64{} {
			f.FeatureRange = [2]float64{0, 1}
		}
		if f.FeatureRange[1] <= f.FeatureRange[0] {
			return fmt.Errorf("scaler feature_range %v is empty", f.FeatureRange)
		}
		if f.DataMax <= f.DataMin {
			return fmt.Errorf("scaler data range [%v, %v] is empty", f.DataMin, f.DataMax)
		}
	case KindStandard:
		if f.Scale <= 0 {
			return fmt.Errorf("scaler scale must be > 0, got %v", f.Scale)
		}
	default:
		return fmt.Errorf("scaler kind %q unknown", f.Kind)
	}
	if f.Currency == "" {
		return errors.New("scaler currency must be set")
	}
	return nil
}

// Rescale implements ports.Rescaler.
func (a *Artifact) Rescale(normalized float64) (float64, error) {
	if math.IsNaN(normalized) || math.IsInf(normalized, 0) {
		return 0, fmt.Errorf("%w: normalized value %v is not finite", domain.ErrPrediction, normalized)
	}
	f := a.file
	switch f.Kind {
	case KindMinMax:
		std := (normalized - f.FeatureRange[0]) / (f.FeatureRange[1] - f.FeatureRange[0])
		return std*(f.DataMax-f.DataMin) + f.DataMin, nil
	default:
		return normalized*f.Scale + f.Mean, nil
	}
}

// Currency implements ports.Rescaler.
func (a *Artifact) Currency() string {
	return a.file.Currency
}

// Kind reports the scaler kind, for diagnostics.
func (a *Artifact) Kind() string {
	return a.file.Kind
}

var _ ports.Rescaler = (*Artifact)(nil)
