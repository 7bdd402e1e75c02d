package protocol

import (
	"fmt"
	"strconv"
	"strings"
)

// Payload size limit, dictated by the radio frame format shared by all
// protocol versions.
const maxPayloadLength = 25

// Validator checks whether a raw payload string is acceptable for a
// value type. Validators are pure functions; they never mutate state.
type Validator func(value string) error

// text accepts any payload that fits in a radio frame.
func text(value string) error {
	if len(value) > maxPayloadLength {
		return fmt.Errorf("%w: payload exceeds %d bytes", ErrInvalidValue, maxPayloadLength)
	}
	return nil
}

// numeric accepts integer or decimal payloads, e.g. "21.5" or "-3".
func numeric(value string) error {
	if err := text(value); err != nil {
		return err
	}
	if _, err := strconv.ParseFloat(value, 64); err != nil {
		return fmt.Errorf("%w: %q is not numeric", ErrInvalidValue, value)
	}
	return nil
}

// binary accepts "0" or "1".
func binary(value string) error {
	if value != "0" && value != "1" {
		return fmt.Errorf("%w: %q must be 0 or 1", ErrInvalidValue, value)
	}
	return nil
}

// percent accepts an integer in the range 0-100.
func percent(value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%w: %q is not an integer", ErrInvalidValue, value)
	}
	if n < 0 || n > 100 {
		return fmt.Errorf("%w: %d is outside 0-100", ErrInvalidValue, n)
	}
	return nil
}

// hexColor returns a validator for a hex colour payload of the given
// digit count (6 for RGB, 8 for RGBW).
func hexColor(digits int) Validator {
	return func(value string) error {
		if len(value) != digits {
			return fmt.Errorf("%w: %q must be %d hex digits", ErrInvalidValue, value, digits)
		}
		if _, err := strconv.ParseUint(value, 16, 64); err != nil {
			return fmt.Errorf("%w: %q is not hexadecimal", ErrInvalidValue, value)
		}
		return nil
	}
}

// oneOf returns a validator accepting only the listed payloads.
func oneOf(allowed ...string) Validator {
	return func(value string) error {
		for _, a := range allowed {
			if value == a {
				return nil
			}
		}
		return fmt.Errorf("%w: %q must be one of %s", ErrInvalidValue, value, strings.Join(allowed, ", "))
	}
}

// position accepts a "latitude;longitude;altitude" GPS payload.
// The protocol separates the components with semicolons on the wire,
// but payloads themselves use commas to stay encodable.
func position(value string) error {
	if err := text(value); err != nil {
		return err
	}
	parts := strings.Split(value, ",")
	if len(parts) != 3 {
		return fmt.Errorf("%w: %q must be lat,lng,alt", ErrInvalidValue, value)
	}
	for _, p := range parts {
		if _, err := strconv.ParseFloat(p, 64); err != nil {
			return fmt.Errorf("%w: %q is not numeric", ErrInvalidValue, p)
		}
	}
	return nil
}
