package domain

// Config mirrors ~/.laptopprice/config.yaml.
type Config struct {
	ConfigFormatVersion string           `yaml:"config_format_version"`
	Model               ModelSettings    `yaml:"model"`
	Scaler              ScalerSettings   `yaml:"scaler"`
	Currency            CurrencySettings `yaml:"currency"`
	Session             SessionSettings  `yaml:"session"`
}

// ModelSettings locates the ONNX regression artifact and its runtime.
type ModelSettings struct {
	Path       string `yaml:"path"`
	ORTLibrary string `yaml:"ort_library"`
	InputName  string `yaml:"input_name"`
	OutputName string `yaml:"output_name"`
}

// ScalerSettings locates the price scaler artifact.
type ScalerSettings struct {
	Path string `yaml:"path"`
}

// CurrencySettings controls the optional fixed-rate display conversion.
type CurrencySettings struct {
	Native      string  `yaml:"native"`
	Display     string  `yaml:"display"`
	DisplayRate float64 `yaml:"display_rate"`
	Convert     bool    `yaml:"convert"`
}

// SessionSettings selects the session log backend.
type SessionSettings struct {
	Backend string `yaml:"backend"`
}

// Session log backends.
const (
	SessionBackendMemory = "memory"
	SessionBackendSQLite = "sqlite"
)

// Converter returns the configured display converter, or false when
// conversion is disabled.
func (c *Config) Converter() (Converter, bool, error) {
	if !c.Currency.Convert {
		return Converter{}, false, nil
	}
	conv, err := NewConverter(c.Currency.Native, c.Currency.Display, c.Currency.DisplayRate)
	if err != nil {
		return Converter{}, false, err
	}
	return conv, true, nil
}

// SessionBackend returns the configured backend, defaulting to memory.
func (c *Config) SessionBackend() string {
	if c.Session.Backend == "" {
		return SessionBackendMemory
	}
	return c.Session.Backend
}
