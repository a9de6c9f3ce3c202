package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidConfig indicates a run configuration rejected before the first step.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")

	// ErrInvalidBody indicates a body with a non-positive or non-finite mass.
	ErrInvalidBody = errors.New("dynamo: invalid body")

	// ErrContextCanceled indicates the simulation was interrupted.
	ErrContextCanceled = errors.New("dynamo: simulation canceled by context")
)

// ConfigError describes which configuration field was rejected.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s=%v: %s", ErrInvalidConfig, e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// InvalidConfig is shorthand for building a *ConfigError.
func InvalidConfig(field string, value any, reason string) error {
	return &ConfigError{Field: field, Value: value, Reason: reason}
}

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%g s): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
