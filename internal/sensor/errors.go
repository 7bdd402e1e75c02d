package sensor

import (
	"errors"
	"fmt"
)

// Domain errors for the sensor package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, sensor.ErrChildNotFound) {
//	    // handle unknown child id
//	}
var (
	// ErrChildNotFound is returned when an operation references a child
	// id that does not exist on the node. It indicates a protocol or
	// logic inconsistency upstream, not a recoverable disagreement.
	ErrChildNotFound = errors.New("sensor: child not found")

	// ErrSensorNotFound is returned when a node id does not exist in
	// the repository or registry.
	ErrSensorNotFound = errors.New("sensor: not found")
)

// ValidationError reports a scalar field assignment rejected by its
// domain check. The prior value of the field is always retained.
type ValidationError struct {
	Field string
	Value any
	Cause string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("sensor: invalid %s %v: %s", e.Field, e.Value, e.Cause)
}
