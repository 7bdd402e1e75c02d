package protocol

import "errors"

// Domain errors for the protocol package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, protocol.ErrUnknownVersion) {
//	    // handle unsupported protocol version
//	}
var (
	// ErrUnknownVersion is returned when no constant table exists for a
	// protocol version. Callers must not guess a fallback table.
	ErrUnknownVersion = errors.New("protocol: unknown version")

	// ErrUnknownPresentation is returned when a presentation type is not
	// registered for the requested protocol version.
	ErrUnknownPresentation = errors.New("protocol: unknown presentation type")

	// ErrUnknownValueType is returned when a set/req value type is not
	// registered for the requested protocol version.
	ErrUnknownValueType = errors.New("protocol: unknown value type")

	// ErrInvalidValue is returned when a payload fails its value-type
	// validator.
	ErrInvalidValue = errors.New("protocol: invalid value")
)
