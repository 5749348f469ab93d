package forecaster

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingDependency matches any error returned for a backend that was
	// never registered, typically because its package was not imported.
	ErrMissingDependency = errors.New("forecaster: missing model dependency")

	// ErrNotFitted is returned by predict calls made before a successful Fit.
	ErrNotFitted = errors.New("forecaster: model must be fitted before prediction")

	// ErrCapability is returned when a call needs a capability the estimator's tags deny.
	ErrCapability = errors.New("forecaster: capability not supported")

	// ErrInvalidArgument is returned for bad horizons, coverages, or input shapes.
	ErrInvalidArgument = errors.New("forecaster: invalid argument")

	// ErrBackendContract is returned when a backend model returns output that
	// does not match what was requested.
	ErrBackendContract = errors.New("forecaster: backend returned malformed output")

	// ErrParam is returned when a hyperparameter set cannot be decoded.
	ErrParam = errors.New("forecaster: invalid hyperparameter")
)

// MissingDependencyError reports a backend name with no registered factory.
type MissingDependencyError struct {
	Name string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("forecaster: model backend %q is not registered (import its package to register it)", e.Name)
}

// Is reports whether target is ErrMissingDependency.
func (e *MissingDependencyError) Is(target error) bool {
	return target == ErrMissingDependency
}
