package assets

import (
	_ "embed"
)

// DefaultConfigYAML contains the embedded default configuration.
//
//go:embed defaults/config.yaml
var DefaultConfigYAML []byte

// ExampleScalerYAML is a documented scaler artifact, written by
// `laptopprice config init-scaler` for operators exporting their own.
//
//go:embed defaults/scaler.example.yaml
var ExampleScalerYAML []byte
