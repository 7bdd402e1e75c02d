package sensor

import "regexp"

// Scalar validation constants.
const (
	// minBatteryLevel and maxBatteryLevel bound the reported battery
	// percentage. Out-of-range values are rejected, never clamped.
	minBatteryLevel = 0
	maxBatteryLevel = 100

	// maxHeartbeat bounds the heartbeat counter to what nodes can
	// physically report (an unsigned 32-bit millisecond counter).
	maxHeartbeat = int64(1)<<32 - 1
)

// versionRegex accepts dotted numeric version tokens such as "1.4"
// or "2.2.0".
var versionRegex = regexp.MustCompile(`^\d+(\.\d+)+$`)

// ValidateBatteryLevel checks a battery percentage.
func ValidateBatteryLevel(value int) error {
	if value < minBatteryLevel || value > maxBatteryLevel {
		return &ValidationError{
			Field: "battery_level",
			Value: value,
			Cause: "must be a percentage between 0 and 100",
		}
	}
	return nil
}

// ValidateHeartbeat checks a heartbeat counter value.
func ValidateHeartbeat(value int64) error {
	if value < 0 || value > maxHeartbeat {
		return &ValidationError{
			Field: "heartbeat",
			Value: value,
			Cause: "must be a non-negative 32-bit counter",
		}
	}
	return nil
}

// ValidateProtocolVersion checks a protocol version token against the
// accepted grammar. Whether a constant table exists for the version is
// decided later, at lookup time, where unknown versions are a hard
// failure.
func ValidateProtocolVersion(value string) error {
	if !versionRegex.MatchString(value) {
		return &ValidationError{
			Field: "protocol_version",
			Value: value,
			Cause: "must be a dotted numeric version token",
		}
	}
	return nil
}
