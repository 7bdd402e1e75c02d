package gateway

import "errors"

// Sentinel errors for gateway construction and operation.
var (
	// ErrNoRegistry indicates the gateway was built without a sensor registry.
	ErrNoRegistry = errors.New("gateway: sensor registry is required")

	// ErrNoMQTT indicates the gateway was built without an MQTT client.
	ErrNoMQTT = errors.New("gateway: mqtt client is required")

	// ErrAlreadyStarted indicates Start was called twice.
	ErrAlreadyStarted = errors.New("gateway: already started")
)
