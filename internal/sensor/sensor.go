package sensor

import (
	"fmt"

	"github.com/calewin/sensornet/internal/message"
	"github.com/calewin/sensornet/internal/protocol"
)

// DefaultProtocolVersion is assumed for nodes that have not yet
// reported their version.
const DefaultProtocolVersion = "1.4"

// Logger defines the logging interface used by the sensor package.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Sensor is one network node: its children, sketch metadata, validated
// scalar state, and the desired-state shadow used for smart-sleep
// nodes.
//
// Queue, Reboot and NewState are transient: they are never persisted
// and start empty/false after a load.
type Sensor struct {
	ID       int
	Children map[int]*ChildSensor

	// Type is the node's presentation type as reported by the node
	// itself (node or repeater). Unvalidated metadata.
	Type          protocol.Presentation
	SketchName    string
	SketchVersion string

	// NewState is the desired-state shadow: one mirrored child per
	// smart-sleep-tracked child. Its keys are always a subset of
	// Children's keys.
	NewState map[int]*ChildSensor

	// Queue holds encoded messages pending delivery to the node the
	// next time it listens. FIFO, transient.
	Queue []string

	// Reboot marks a pending reboot request. Transient.
	Reboot bool

	batteryLevel    int
	heartbeat       int64
	protocolVersion string

	logger Logger
}

// New creates a sensor for a node id with no children and the default
// protocol version.
func New(id int) *Sensor {
	return &Sensor{
		ID:              id,
		Children:        make(map[int]*ChildSensor),
		NewState:        make(map[int]*ChildSensor),
		protocolVersion: DefaultProtocolVersion,
		logger:          noopLogger{},
	}
}

// SetLogger sets the logger for the sensor.
func (s *Sensor) SetLogger(logger Logger) {
	if logger == nil {
		logger = noopLogger{}
	}
	s.logger = logger
}

// BatteryLevel returns the last accepted battery percentage.
func (s *Sensor) BatteryLevel() int { return s.batteryLevel }

// SetBatteryLevel validates and stores a battery percentage. On
// failure the previous value is retained and a *ValidationError is
// returned.
func (s *Sensor) SetBatteryLevel(value int) error {
	if err := ValidateBatteryLevel(value); err != nil {
		return err
	}
	s.batteryLevel = value
	return nil
}

// Heartbeat returns the last accepted heartbeat counter.
func (s *Sensor) Heartbeat() int64 { return s.heartbeat }

// SetHeartbeat validates and stores a heartbeat counter. On failure
// the previous value is retained and a *ValidationError is returned.
func (s *Sensor) SetHeartbeat(value int64) error {
	if err := ValidateHeartbeat(value); err != nil {
		return err
	}
	s.heartbeat = value
	return nil
}

// ProtocolVersion returns the node's protocol version token.
func (s *Sensor) ProtocolVersion() string { return s.protocolVersion }

// SetProtocolVersion validates and stores a protocol version token.
// On failure the previous value is retained and a *ValidationError is
// returned.
func (s *Sensor) SetProtocolVersion(value string) error {
	if err := ValidateProtocolVersion(value); err != nil {
		return err
	}
	s.protocolVersion = value
	return nil
}

// IsSmartSleepNode reports whether the node is under smart-sleep
// tracking, which holds exactly when the desired-state shadow is
// non-empty.
func (s *Sensor) IsSmartSleepNode() bool {
	return len(s.NewState) > 0
}

// AddChildSensor creates and registers a child sensor. Registering an
// id that already exists is a no-op: the existing child is never
// overwritten, a warning is logged, and ok is false.
func (s *Sensor) AddChildSensor(childID int, childType protocol.Presentation, description string) (int, bool) {
	if _, exists := s.Children[childID]; exists {
		s.logger.Warn("child id already exists, cannot add child",
			"node", s.ID,
			"child", childID,
		)
		return 0, false
	}
	s.Children[childID] = NewChildSensor(childID, childType, description)
	return childID, true
}

// InitSmartSleepMode creates a desired-state shadow for every child
// that does not have one yet: same id, type and description, empty
// values. Existing shadows are untouched, so the call is idempotent.
func (s *Sensor) InitSmartSleepMode() {
	for id, child := range s.Children {
		if _, exists := s.NewState[id]; exists {
			continue
		}
		s.NewState[id] = NewChildSensor(child.ID, child.Type, child.Description)
	}
}

// GetDesiredValue resolves the value a consumer should see for a
// child's value type: for smart-sleep nodes a non-empty desired value
// wins; otherwise the child's last actual value is returned, with ok
// false when it has never been set.
//
// An empty desired value is indistinguishable from "no desire" and
// falls through to the actual value. This mirrors the node protocol's
// established behaviour and is relied upon by the shadow-clearing in
// UpdateChildValue.
func (s *Sensor) GetDesiredValue(childID int, valueType protocol.SetReq) (string, bool, error) {
	child, exists := s.Children[childID]
	if !exists {
		return "", false, fmt.Errorf("%w: node %d child %d", ErrChildNotFound, s.ID, childID)
	}

	if s.IsSmartSleepNode() {
		if shadow, ok := s.NewState[childID]; ok {
			if value := shadow.Values[valueType]; value != "" {
				return value, true, nil
			}
		}
	}

	value, ok := child.Values[valueType]
	return value, ok, nil
}

// SetChildDesiredState records a desired value for a smart-sleep
// child. The request is rejected, with a warning log and no state
// change, when the child has no shadow entry or when the value fails
// validation. Returns whether the value was stored.
func (s *Sensor) SetChildDesiredState(childID int, valueType protocol.SetReq, value string) bool {
	shadow, exists := s.NewState[childID]
	if !exists {
		s.logger.Warn("attempt to set a desired state value on non-smart-sleep node",
			"node", s.ID,
			"child", childID,
			"type", valueType.String(),
			"value", value,
		)
		return false
	}

	if !s.ValidateChildState(childID, valueType, value) {
		s.logger.Warn("unable to set desired child state",
			"node", s.ID,
			"child", childID,
			"type", valueType.String(),
			"value", value,
		)
		return false
	}

	shadow.Values[valueType] = value
	return true
}

// UpdateChildValue overwrites a child's actual value. If the child has
// a desired-state shadow, the matching shadow entry is cleared to
// unset: receipt of an actual value is treated as satisfaction of any
// pending desired request for that type.
func (s *Sensor) UpdateChildValue(childID int, valueType protocol.SetReq, value string) error {
	child, exists := s.Children[childID]
	if !exists {
		return fmt.Errorf("%w: node %d child %d", ErrChildNotFound, s.ID, childID)
	}
	child.Values[valueType] = value

	if shadow, ok := s.NewState[childID]; ok {
		if _, pending := shadow.Values[valueType]; pending {
			shadow.Values[valueType] = ""
		}
	}
	return nil
}

// ValidateChildState reports whether a set message carrying the value
// could legally be sent to the child: the tuple must shape into a
// well-formed outbound message and the value must pass the child's
// per-type schema for the node's protocol version. Both failure points
// are diagnostics, not errors; the method never mutates state.
func (s *Sensor) ValidateChildState(childID int, valueType protocol.SetReq, value string) bool {
	child, exists := s.Children[childID]
	if !exists {
		s.logger.Error("cannot validate state for unknown child",
			"node", s.ID,
			"child", childID,
		)
		return false
	}

	msg := message.NewSet(s.ID, childID, valueType, value)

	if _, err := msg.Encode(); err != nil {
		s.logger.Error("not a valid state",
			"node", s.ID,
			"child", childID,
			"type", valueType.String(),
			"value", value,
			"error", err,
		)
		return false
	}

	if err := msg.Validate(s.protocolVersion); err != nil {
		s.logger.Error("invalid set message",
			"node", s.ID,
			"child", childID,
			"error", err,
		)
		return false
	}

	if err := child.Validate(s.protocolVersion, map[protocol.SetReq]string{valueType: value}); err != nil {
		s.logger.Error("value rejected by child schema",
			"node", s.ID,
			"child", childID,
			"error", err,
		)
		return false
	}

	return true
}
