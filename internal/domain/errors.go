package domain

import "errors"

var (
	// ErrArtifact marks a model or scaler artifact that cannot be used. It is
	// fatal: no estimates are served once it is returned at startup.
	ErrArtifact = errors.New("artifact unavailable")

	// ErrPrediction marks a failure inside predict or rescale for a single
	// submission. The session stays usable.
	ErrPrediction = errors.New("prediction failed")

	// ErrInvalidSelection marks form input outside the enumerated domains.
	ErrInvalidSelection = errors.New("invalid selection")
)
