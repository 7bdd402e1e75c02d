package mqtt

import (
	"fmt"
	"strconv"
	"strings"
)

// The gateway topic scheme mirrors the serial frame fields:
//
//	{prefix}/{node}/{child}/{command}/{ack}/{type}
//
// with the payload carried as the MQTT message body. Inbound traffic
// from the radio gateway and outbound traffic to it share the same
// shape under different prefixes, which keeps the bridge stateless.

// Topics builds and parses gateway topics under a configured prefix.
//
//	topics := mqtt.NewTopics("sensornet")
//	topic := topics.Outbound(10, 1, 1, false, 2)
//	// Returns: "sensornet-out/10/1/1/0/2"
type Topics struct {
	inPrefix  string
	outPrefix string
	setPrefix string
	cmdPrefix string
}

// NewTopics creates topic builders rooted at the given prefix.
// Inbound frames (radio to core) arrive under "{prefix}-in", outbound
// frames (core to radio) are published under "{prefix}-out",
// controller set commands are accepted under "{prefix}-set", and
// node-level commands such as reboot under "{prefix}-cmd".
func NewTopics(prefix string) Topics {
	return Topics{
		inPrefix:  prefix + "-in",
		outPrefix: prefix + "-out",
		setPrefix: prefix + "-set",
		cmdPrefix: prefix + "-cmd",
	}
}

// Outbound returns the topic for one frame addressed to the network.
//
// Example: sensornet-out/10/1/1/0/2
func (t Topics) Outbound(nodeID, childID int, command uint8, ack bool, subType uint8) string {
	a := 0
	if ack {
		a = 1
	}
	return fmt.Sprintf("%s/%d/%d/%d/%d/%d", t.outPrefix, nodeID, childID, command, a, subType)
}

// AllInbound returns a pattern matching every frame from the network.
//
// Pattern: sensornet-in/+/+/+/+/+
func (t Topics) AllInbound() string {
	return t.inPrefix + "/+/+/+/+/+"
}

// AllCommands returns a pattern matching every controller set command.
//
// Pattern: sensornet-set/+/+/+
func (t Topics) AllCommands() string {
	return t.setPrefix + "/+/+/+"
}

// AllNodeCommands returns a pattern matching every node-level command.
//
// Pattern: sensornet-cmd/+/+
func (t Topics) AllNodeCommands() string {
	return t.cmdPrefix + "/+/+"
}

// NodeCommand holds the fields parsed from a node-command topic
// "{prefix}-cmd/{node}/{action}". The action names the operation,
// for example "reboot".
type NodeCommand struct {
	NodeID int
	Action string
}

// ParseNodeCommand extracts the node id and action from a node-command
// topic.
func (t Topics) ParseNodeCommand(topic string) (NodeCommand, error) {
	parts := strings.Split(topic, "/")
	if len(parts) < 3 {
		return NodeCommand{}, fmt.Errorf("%w: %q", ErrMalformedTopic, topic)
	}
	fields := parts[len(parts)-2:]

	nodeID, err := strconv.Atoi(fields[0])
	if err != nil || nodeID < 0 || nodeID > 255 {
		return NodeCommand{}, fmt.Errorf("%w: node %q in %q", ErrMalformedTopic, fields[0], topic)
	}
	if fields[1] == "" {
		return NodeCommand{}, fmt.Errorf("%w: empty action in %q", ErrMalformedTopic, topic)
	}

	return NodeCommand{NodeID: nodeID, Action: fields[1]}, nil
}

// Command holds the addressing fields parsed from a set-command topic
// "{prefix}-set/{node}/{child}/{type}". The payload carries the value.
type Command struct {
	NodeID  int
	ChildID int
	SubType int
}

// ParseCommand extracts the addressing fields from a set-command topic.
func (t Topics) ParseCommand(topic string) (Command, error) {
	parts := strings.Split(topic, "/")
	if len(parts) < 4 {
		return Command{}, fmt.Errorf("%w: %q", ErrMalformedTopic, topic)
	}
	fields := parts[len(parts)-3:]

	var nums [3]int
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return Command{}, fmt.Errorf("%w: field %q in %q", ErrMalformedTopic, f, topic)
		}
		nums[i] = n
	}

	return Command{
		NodeID:  nums[0],
		ChildID: nums[1],
		SubType: nums[2],
	}, nil
}

// Frame holds the addressing fields parsed from an inbound topic.
type Frame struct {
	NodeID  int
	ChildID int
	Command int
	Ack     bool
	SubType int
}

// ParseInbound extracts the frame fields from an inbound topic. The
// prefix is not re-checked here; subscriptions already scope delivery.
func (t Topics) ParseInbound(topic string) (Frame, error) {
	parts := strings.Split(topic, "/")
	if len(parts) < 6 {
		return Frame{}, fmt.Errorf("%w: %q", ErrMalformedTopic, topic)
	}
	// Addressing fields are the last five segments; the prefix itself
	// may contain slashes.
	fields := parts[len(parts)-5:]

	var nums [5]int
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return Frame{}, fmt.Errorf("%w: field %q in %q", ErrMalformedTopic, f, topic)
		}
		nums[i] = n
	}

	if nums[0] < 0 || nums[0] > 255 || nums[1] < 0 || nums[1] > 255 {
		return Frame{}, fmt.Errorf("%w: address out of range in %q", ErrMalformedTopic, topic)
	}
	if nums[2] < 0 || nums[2] > 4 {
		return Frame{}, fmt.Errorf("%w: command %d in %q", ErrMalformedTopic, nums[2], topic)
	}
	if nums[3] != 0 && nums[3] != 1 {
		return Frame{}, fmt.Errorf("%w: ack field %d in %q", ErrMalformedTopic, nums[3], topic)
	}
	if nums[4] < 0 || nums[4] > 255 {
		return Frame{}, fmt.Errorf("%w: subtype %d in %q", ErrMalformedTopic, nums[4], topic)
	}

	return Frame{
		NodeID:  nums[0],
		ChildID: nums[1],
		Command: nums[2],
		Ack:     nums[3] == 1,
		SubType: nums[4],
	}, nil
}
