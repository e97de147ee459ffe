// Package ports defines the interfaces between the estimation core and its
// adapters.
//
// The core (internal/application) depends only on these interfaces; the ONNX
// model, the scaler artifact, the session log backends and the config file are
// adapters in internal/infrastructure. Artifacts are opaque here: the core
// never sees how a prediction or an inverse transform is computed.
package ports

import (
	"context"

	"github.com/doeshing/laptopprice/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.laptopprice/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// Predictor wraps the pre-trained regression artifact. It maps a feature row
// to the model's normalized output and holds no per-call state.
type Predictor interface {
	Predict(ctx context.Context, row domain.FeatureRow) (float64, error)
	Close() error
}

// Rescaler wraps the pre-trained scaling artifact and inverts the model's
// normalized output back into a native-currency price.
type Rescaler interface {
	Rescale(normalized float64) (float64, error)
	Currency() string
}

// SessionLog is the append-only record of successful predictions for one
// interactive session. Entries come back in insertion order.
type SessionLog interface {
	Append(domain.SessionEntry) error
	List() ([]domain.SessionEntry, error)
	Len() int
	Close() error
}

// Logger provides structured logging for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
