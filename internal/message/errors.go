package message

import "errors"

// Domain errors for the message package.
var (
	// ErrInvalidNode is returned when a node id is outside the
	// addressable range.
	ErrInvalidNode = errors.New("message: invalid node id")

	// ErrInvalidChild is returned when a child id is outside the
	// addressable range.
	ErrInvalidChild = errors.New("message: invalid child id")

	// ErrInvalidCommand is returned when a command is not recognised.
	ErrInvalidCommand = errors.New("message: invalid command")

	// ErrInvalidSubType is returned when a subtype cannot be expressed
	// for the message's command under the given protocol version.
	ErrInvalidSubType = errors.New("message: invalid subtype")

	// ErrInvalidPayload is returned when a payload cannot be encoded.
	ErrInvalidPayload = errors.New("message: invalid payload")

	// ErrMalformedLine is returned when an inbound gateway line cannot
	// be parsed.
	ErrMalformedLine = errors.New("message: malformed line")
)
