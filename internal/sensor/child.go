package sensor

import (
	"fmt"

	"github.com/calewin/sensornet/internal/protocol"
)

// ChildSensor is one addressable sub-sensor of a node: identity,
// declared presentation type, free-text description, and the current
// map of value-type to value.
type ChildSensor struct {
	ID          int                        `json:"id"`
	Type        protocol.Presentation      `json:"type"`
	Description string                     `json:"description"`
	Values      map[protocol.SetReq]string `json:"values"`
}

// NewChildSensor creates a child sensor with an empty value map.
func NewChildSensor(id int, childType protocol.Presentation, description string) *ChildSensor {
	return &ChildSensor{
		ID:          id,
		Type:        childType,
		Description: description,
		Values:      make(map[protocol.SetReq]string),
	}
}

// GetSchema returns the validation schema applicable to this child
// under a protocol version: the generic custom-sensor entries extended
// by the entries for the child's own type, type-specific winning on
// collision.
func (c *ChildSensor) GetSchema(protocolVersion string) (protocol.Schema, error) {
	return protocol.SchemaFor(protocolVersion, c.Type)
}

// Validate checks a value map against the child's schema for the given
// protocol version. A nil values map validates the child's current
// values. The error identifies the offending key or value.
func (c *ChildSensor) Validate(protocolVersion string, values map[protocol.SetReq]string) error {
	if values == nil {
		values = c.Values
	}
	schema, err := c.GetSchema(protocolVersion)
	if err != nil {
		return fmt.Errorf("child %d: %w", c.ID, err)
	}
	if err := schema.Validate(values); err != nil {
		return fmt.Errorf("child %d: %w", c.ID, err)
	}
	return nil
}

// clone returns an independent copy of the child, including its value
// map.
func (c *ChildSensor) clone() *ChildSensor {
	cp := NewChildSensor(c.ID, c.Type, c.Description)
	for vt, v := range c.Values {
		cp.Values[vt] = v
	}
	return cp
}
