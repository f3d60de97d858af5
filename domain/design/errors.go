package design

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	ErrNoEndpoints          = errors.New("design has no endpoints")
	ErrNonPositiveGroupSize = errors.New("group size must be positive")
	ErrNonPositiveIteration = errors.New("iteration count must be positive")
	ErrTooFewDoseLevels     = errors.New("at least two dose levels required")
	ErrMissingControlGroup  = errors.New("dose levels must start at control (dose 0)")
	ErrMissingDoseMapping   = errors.New("scenario missing multiplier for dose level")
	ErrControlNotIdentity   = errors.New("control multipliers must both be 1.0")
	ErrInvalidEndpoint      = errors.New("endpoint has invalid pilot statistics")
	ErrInvalidDirection     = errors.New("unknown trend direction")
	ErrInvalidMultiplier    = errors.New("multiplier must be positive")
)

// NewMissingDoseMappingError identifies the scenario and dose level that lack
// an effect or variance multiplier.
func NewMissingDoseMappingError(label string, dose int) error {
	return fmt.Errorf("%w: scenario %q, dose %d", ErrMissingDoseMapping, label, dose)
}

// NewInvalidEndpointError identifies the endpoint whose pilot statistics are unusable.
func NewInvalidEndpointError(name string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidEndpoint, name, reason)
}

// IsConfigurationError reports whether err is any design-validation failure.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrNoEndpoints) ||
		errors.Is(err, ErrNonPositiveGroupSize) ||
		errors.Is(err, ErrNonPositiveIteration) ||
		errors.Is(err, ErrTooFewDoseLevels) ||
		errors.Is(err, ErrMissingControlGroup) ||
		errors.Is(err, ErrMissingDoseMapping) ||
		errors.Is(err, ErrControlNotIdentity) ||
		errors.Is(err, ErrInvalidEndpoint) ||
		errors.Is(err, ErrInvalidDirection) ||
		errors.Is(err, ErrInvalidMultiplier)
}
