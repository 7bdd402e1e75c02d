package message

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/calewin/sensornet/internal/protocol"
)

// Decode parses one gateway line of the form
// "node;child;command;ack;type;payload". A trailing newline is
// tolerated. The payload is taken verbatim, including any further
// semicolons, so custom payloads survive the round trip.
func Decode(line string) (Message, error) {
	line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")

	parts := strings.SplitN(line, ";", 6)
	if len(parts) < 5 {
		return Message{}, fmt.Errorf("%w: %d fields", ErrMalformedLine, len(parts))
	}

	nodeID, err := strconv.Atoi(parts[0])
	if err != nil {
		return Message{}, fmt.Errorf("%w: node id %q", ErrMalformedLine, parts[0])
	}
	childID, err := strconv.Atoi(parts[1])
	if err != nil {
		return Message{}, fmt.Errorf("%w: child id %q", ErrMalformedLine, parts[1])
	}
	command, err := strconv.Atoi(parts[2])
	if err != nil {
		return Message{}, fmt.Errorf("%w: command %q", ErrMalformedLine, parts[2])
	}
	ack, err := strconv.Atoi(parts[3])
	if err != nil || (ack != 0 && ack != 1) {
		return Message{}, fmt.Errorf("%w: ack %q", ErrMalformedLine, parts[3])
	}
	subType, err := strconv.Atoi(parts[4])
	if err != nil {
		return Message{}, fmt.Errorf("%w: sub type %q", ErrMalformedLine, parts[4])
	}

	if nodeID < 0 || nodeID > MaxNodeID {
		return Message{}, fmt.Errorf("%w: %d", ErrInvalidNode, nodeID)
	}
	if childID < 0 || childID > MaxChildID {
		return Message{}, fmt.Errorf("%w: %d", ErrInvalidChild, childID)
	}
	if command < 0 || command > int(protocol.CommandStream) {
		return Message{}, fmt.Errorf("%w: %d", ErrInvalidCommand, command)
	}
	if subType < 0 || subType > 255 {
		return Message{}, fmt.Errorf("%w: %d out of range", ErrInvalidSubType, subType)
	}

	var payload string
	if len(parts) == 6 {
		payload = parts[5]
	}

	return Message{
		NodeID:  nodeID,
		ChildID: childID,
		Command: protocol.Command(command),
		Ack:     ack == 1,
		SubType: uint8(subType),
		Payload: payload,
	}, nil
}
