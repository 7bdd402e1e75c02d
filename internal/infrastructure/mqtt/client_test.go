package mqtt

import (
	"context"
	"errors"
	"testing"
)

// Connection-dependent behaviour is covered by the integration tests
// (go test -tags=integration); these tests exercise everything that
// works without a broker.

func TestCloseNil(t *testing.T) {
	client := &Client{}
	err := client.Close()
	if err != nil {
		t.Errorf("Close() on uninitialised client error = %v, want nil", err)
	}
}

func TestIsConnected_InitialState(t *testing.T) {
	client := &Client{}

	// The paho check must be short-circuited when connected is false,
	// otherwise this would dereference a nil paho client.
	if client.IsConnected() {
		t.Error("IsConnected() should be false for uninitialised client")
	}
}

func TestHealthCheck_Cancelled(t *testing.T) {
	client := &Client{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.HealthCheck(ctx)
	if err == nil {
		t.Error("HealthCheck() expected error for cancelled context")
	}
}

func TestTopics_Outbound(t *testing.T) {
	topics := NewTopics("sensornet")

	tests := []struct {
		name     string
		build    func() string
		expected string
	}{
		{
			name:     "set without ack",
			build:    func() string { return topics.Outbound(10, 1, 1, false, 2) },
			expected: "sensornet-out/10/1/1/0/2",
		},
		{
			name:     "internal with ack",
			build:    func() string { return topics.Outbound(255, 255, 3, true, 22) },
			expected: "sensornet-out/255/255/3/1/22",
		},
		{
			name:     "inbound wildcard",
			build:    topics.AllInbound,
			expected: "sensornet-in/+/+/+/+/+",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.build(); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestTopics_ParseInbound(t *testing.T) {
	topics := NewTopics("sensornet")

	t.Run("full frame", func(t *testing.T) {
		frame, err := topics.ParseInbound("sensornet-in/10/1/1/0/2")
		if err != nil {
			t.Fatalf("ParseInbound() error = %v", err)
		}
		want := Frame{NodeID: 10, ChildID: 1, Command: 1, Ack: false, SubType: 2}
		if frame != want {
			t.Errorf("ParseInbound() = %+v, want %+v", frame, want)
		}
	})

	t.Run("ack set", func(t *testing.T) {
		frame, err := topics.ParseInbound("sensornet-in/10/1/1/1/2")
		if err != nil {
			t.Fatalf("ParseInbound() error = %v", err)
		}
		if !frame.Ack {
			t.Error("Ack = false, want true")
		}
	})

	t.Run("prefix with slashes", func(t *testing.T) {
		nested := NewTopics("home/sensors")
		frame, err := nested.ParseInbound("home/sensors-in/12/0/3/0/32")
		if err != nil {
			t.Fatalf("ParseInbound() error = %v", err)
		}
		if frame.NodeID != 12 || frame.SubType != 32 {
			t.Errorf("ParseInbound() = %+v, want node 12 subtype 32", frame)
		}
	})

	tests := []struct {
		name  string
		topic string
	}{
		{"too few segments", "sensornet-in/10/1"},
		{"non-numeric field", "sensornet-in/10/x/1/0/2"},
		{"bad ack field", "sensornet-in/10/1/1/2/2"},
		{"node out of range", "sensornet-in/300/1/1/0/2"},
		{"command out of range", "sensornet-in/10/1/7/0/2"},
		{"subtype out of range", "sensornet-in/10/1/1/0/999"},
		{"empty topic", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := topics.ParseInbound(tt.topic); !errors.Is(err, ErrMalformedTopic) {
				t.Errorf("ParseInbound(%q) error = %v, want ErrMalformedTopic", tt.topic, err)
			}
		})
	}
}

func TestTopics_ParseCommand(t *testing.T) {
	topics := NewTopics("sensornet")

	t.Run("valid command topic", func(t *testing.T) {
		cmd, err := topics.ParseCommand("sensornet-set/10/1/2")
		if err != nil {
			t.Fatalf("ParseCommand() error = %v", err)
		}
		want := Command{NodeID: 10, ChildID: 1, SubType: 2}
		if cmd != want {
			t.Errorf("ParseCommand() = %+v, want %+v", cmd, want)
		}
	})

	t.Run("subscription pattern", func(t *testing.T) {
		if got := topics.AllCommands(); got != "sensornet-set/+/+/+" {
			t.Errorf("AllCommands() = %q", got)
		}
	})

	tests := []struct {
		name  string
		topic string
	}{
		{"too few segments", "sensornet-set/10"},
		{"non-numeric field", "sensornet-set/10/x/2"},
		{"empty topic", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := topics.ParseCommand(tt.topic); !errors.Is(err, ErrMalformedTopic) {
				t.Errorf("ParseCommand(%q) error = %v, want ErrMalformedTopic", tt.topic, err)
			}
		})
	}
}

func TestTopics_ParseNodeCommand(t *testing.T) {
	topics := NewTopics("sensornet")

	t.Run("valid reboot topic", func(t *testing.T) {
		cmd, err := topics.ParseNodeCommand("sensornet-cmd/10/reboot")
		if err != nil {
			t.Fatalf("ParseNodeCommand() error = %v", err)
		}
		want := NodeCommand{NodeID: 10, Action: "reboot"}
		if cmd != want {
			t.Errorf("ParseNodeCommand() = %+v, want %+v", cmd, want)
		}
	})

	t.Run("subscription pattern", func(t *testing.T) {
		if got := topics.AllNodeCommands(); got != "sensornet-cmd/+/+" {
			t.Errorf("AllNodeCommands() = %q", got)
		}
	})

	tests := []struct {
		name  string
		topic string
	}{
		{"too few segments", "sensornet-cmd/10"},
		{"non-numeric node", "sensornet-cmd/x/reboot"},
		{"node out of range", "sensornet-cmd/300/reboot"},
		{"empty action", "sensornet-cmd/10/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := topics.ParseNodeCommand(tt.topic); !errors.Is(err, ErrMalformedTopic) {
				t.Errorf("ParseNodeCommand(%q) error = %v, want ErrMalformedTopic", tt.topic, err)
			}
		})
	}
}
