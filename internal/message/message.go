package message

import (
	"fmt"
	"strings"

	"github.com/calewin/sensornet/internal/protocol"
)

// Addressing and framing limits shared by all protocol versions.
const (
	// MaxNodeID is the highest addressable node id; 255 is reserved
	// for broadcast.
	MaxNodeID = 255

	// MaxChildID is the highest addressable child id; 255 addresses
	// the node itself for internal messages.
	MaxChildID = 255

	// MaxPayloadLength is the payload capacity of one radio frame.
	MaxPayloadLength = 25
)

// Message is one protocol message addressed to a child of a node.
type Message struct {
	NodeID  int
	ChildID int
	Command protocol.Command
	Ack     bool
	SubType uint8
	Payload string
}

// NewSet shapes a set-value message for a child sensor.
func NewSet(nodeID, childID int, vt protocol.SetReq, payload string) Message {
	return Message{
		NodeID:  nodeID,
		ChildID: childID,
		Command: protocol.CommandSet,
		SubType: uint8(vt),
		Payload: payload,
	}
}

// NewInternal shapes an internal message addressed to a node.
func NewInternal(nodeID int, sub protocol.Internal, payload string) Message {
	return Message{
		NodeID:  nodeID,
		ChildID: MaxChildID,
		Command: protocol.CommandInternal,
		SubType: uint8(sub),
		Payload: payload,
	}
}

// Encode renders the message in the gateway line form
// "node;child;command;ack;type;payload\n".
//
// Encoding fails when the tuple cannot be legally expressed: an id out
// of range, an unknown command, or a payload that is too long or would
// corrupt the field framing. An encoding failure means the candidate
// state is not representable on the wire at all, regardless of the
// per-type schema.
func (m Message) Encode() (string, error) {
	if m.NodeID < 0 || m.NodeID > MaxNodeID {
		return "", fmt.Errorf("%w: %d", ErrInvalidNode, m.NodeID)
	}
	if m.ChildID < 0 || m.ChildID > MaxChildID {
		return "", fmt.Errorf("%w: %d", ErrInvalidChild, m.ChildID)
	}
	if m.Command > protocol.CommandStream {
		return "", fmt.Errorf("%w: %d", ErrInvalidCommand, uint8(m.Command))
	}
	if len(m.Payload) > MaxPayloadLength {
		return "", fmt.Errorf("%w: %d bytes exceeds %d", ErrInvalidPayload, len(m.Payload), MaxPayloadLength)
	}
	if strings.ContainsAny(m.Payload, ";\n") {
		return "", fmt.Errorf("%w: payload contains framing characters", ErrInvalidPayload)
	}

	ack := 0
	if m.Ack {
		ack = 1
	}
	return fmt.Sprintf("%d;%d;%d;%d;%d;%s\n",
		m.NodeID, m.ChildID, uint8(m.Command), ack, m.SubType, m.Payload), nil
}

// Validate checks the message against a protocol version's constant
// tables: the subtype must exist for the command under that version,
// and set/req payloads must pass the value type's validator.
//
// An unknown protocol version is a hard failure, propagated unchanged.
func (m Message) Validate(protocolVersion string) error {
	c, err := protocol.GetConst(protocolVersion)
	if err != nil {
		return err
	}

	if m.NodeID < 0 || m.NodeID > MaxNodeID {
		return fmt.Errorf("%w: %d", ErrInvalidNode, m.NodeID)
	}
	if m.ChildID < 0 || m.ChildID > MaxChildID {
		return fmt.Errorf("%w: %d", ErrInvalidChild, m.ChildID)
	}

	switch m.Command {
	case protocol.CommandPresentation:
		if !c.HasPresentation(protocol.Presentation(m.SubType)) {
			return fmt.Errorf("%w: %s for %s", ErrInvalidSubType,
				protocol.Presentation(m.SubType), m.Command)
		}
	case protocol.CommandSet, protocol.CommandReq:
		vt := protocol.SetReq(m.SubType)
		if !c.HasSetReq(vt) {
			return fmt.Errorf("%w: %s for %s", ErrInvalidSubType, vt, m.Command)
		}
		if m.Command == protocol.CommandSet {
			if err := c.ValidatePayload(vt, m.Payload); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidPayload, err)
			}
		}
	case protocol.CommandInternal, protocol.CommandStream:
		// Internal and stream subtypes are not schema-gated here.
	default:
		return fmt.Errorf("%w: %d", ErrInvalidCommand, uint8(m.Command))
	}

	return nil
}
