package message

import (
	"errors"
	"strings"
	"testing"

	"github.com/calewin/sensornet/internal/protocol"
)

func TestMessage_Encode(t *testing.T) {
	t.Run("set message line form", func(t *testing.T) {
		m := NewSet(10, 1, protocol.SetReqStatus, "1")
		got, err := m.Encode()
		if err != nil {
			t.Fatalf("Encode() error = %v", err)
		}
		if got != "10;1;1;0;2;1\n" {
			t.Errorf("Encode() = %q, want %q", got, "10;1;1;0;2;1\n")
		}
	})

	t.Run("ack flag", func(t *testing.T) {
		m := NewSet(10, 1, protocol.SetReqStatus, "1")
		m.Ack = true
		got, err := m.Encode()
		if err != nil {
			t.Fatalf("Encode() error = %v", err)
		}
		if got != "10;1;1;1;2;1\n" {
			t.Errorf("Encode() = %q, want ack field set", got)
		}
	})

	t.Run("internal message addresses the node", func(t *testing.T) {
		m := NewInternal(10, protocol.InternalHeartbeatResponse, "123")
		got, err := m.Encode()
		if err != nil {
			t.Fatalf("Encode() error = %v", err)
		}
		if got != "10;255;3;0;22;123\n" {
			t.Errorf("Encode() = %q, want %q", got, "10;255;3;0;22;123\n")
		}
	})

	tests := []struct {
		name    string
		m       Message
		wantErr error
	}{
		{"node id too large", Message{NodeID: 256}, ErrInvalidNode},
		{"node id negative", Message{NodeID: -1}, ErrInvalidNode},
		{"child id too large", Message{ChildID: 256}, ErrInvalidChild},
		{"command unknown", Message{Command: 5}, ErrInvalidCommand},
		{"payload too long", NewSet(1, 1, protocol.SetReqText, strings.Repeat("a", 26)), ErrInvalidPayload},
		{"payload with separator", NewSet(1, 1, protocol.SetReqText, "a;b"), ErrInvalidPayload},
		{"payload with newline", NewSet(1, 1, protocol.SetReqText, "a\nb"), ErrInvalidPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.m.Encode(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Encode() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("payload at the limit encodes", func(t *testing.T) {
		m := NewSet(1, 1, protocol.SetReqText, strings.Repeat("a", 25))
		if _, err := m.Encode(); err != nil {
			t.Errorf("Encode() error = %v, want nil", err)
		}
	})
}

func TestMessage_Validate(t *testing.T) {
	t.Run("unknown protocol version is a hard failure", func(t *testing.T) {
		m := NewSet(1, 1, protocol.SetReqStatus, "1")
		if err := m.Validate("9.9"); !errors.Is(err, protocol.ErrUnknownVersion) {
			t.Errorf("Validate() error = %v, want ErrUnknownVersion", err)
		}
	})

	t.Run("set payload is schema checked", func(t *testing.T) {
		m := NewSet(1, 1, protocol.SetReqStatus, "1")
		if err := m.Validate("1.4"); err != nil {
			t.Errorf("Validate() error = %v, want nil", err)
		}

		m.Payload = "on"
		if err := m.Validate("1.4"); !errors.Is(err, ErrInvalidPayload) {
			t.Errorf("Validate() error = %v, want ErrInvalidPayload", err)
		}
	})

	t.Run("req skips payload validation", func(t *testing.T) {
		m := NewSet(1, 1, protocol.SetReqStatus, "")
		m.Command = protocol.CommandReq
		if err := m.Validate("1.4"); err != nil {
			t.Errorf("Validate() error = %v, want nil", err)
		}
	})

	t.Run("subtype must exist in the version", func(t *testing.T) {
		// V_TEXT was introduced in 2.0.
		m := NewSet(1, 1, protocol.SetReqText, "hi")
		if err := m.Validate("1.4"); !errors.Is(err, ErrInvalidSubType) {
			t.Errorf("Validate() under 1.4 error = %v, want ErrInvalidSubType", err)
		}
		if err := m.Validate("2.0"); err != nil {
			t.Errorf("Validate() under 2.0 error = %v, want nil", err)
		}
	})

	t.Run("presentation subtype is version gated", func(t *testing.T) {
		m := Message{
			NodeID:  1,
			ChildID: 0,
			Command: protocol.CommandPresentation,
			SubType: uint8(protocol.PresentationWaterQuality),
		}
		if err := m.Validate("1.5"); !errors.Is(err, ErrInvalidSubType) {
			t.Errorf("Validate() under 1.5 error = %v, want ErrInvalidSubType", err)
		}
		if err := m.Validate("2.2"); err != nil {
			t.Errorf("Validate() under 2.2 error = %v, want nil", err)
		}
	})
}

func TestDecode(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		want := NewSet(10, 1, protocol.SetReqPercentage, "75")
		line, err := want.Encode()
		if err != nil {
			t.Fatal(err)
		}
		got, err := Decode(line)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if got != want {
			t.Errorf("Decode() = %+v, want %+v", got, want)
		}
	})

	t.Run("payload keeps embedded semicolons", func(t *testing.T) {
		got, err := Decode("1;2;1;0;48;a;b;c")
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if got.Payload != "a;b;c" {
			t.Errorf("Payload = %q, want %q", got.Payload, "a;b;c")
		}
	})

	t.Run("empty payload", func(t *testing.T) {
		got, err := Decode("255;255;3;0;3;")
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if got.NodeID != 255 || got.Payload != "" {
			t.Errorf("Decode() = %+v, want broadcast id request", got)
		}
	})

	tests := []struct {
		name string
		line string
	}{
		{"too few fields", "1;2;3"},
		{"non-numeric node", "a;2;1;0;2;1"},
		{"node out of range", "300;2;1;0;2;1"},
		{"bad ack", "1;2;1;2;2;1"},
		{"unknown command", "1;2;7;0;2;1"},
		{"empty line", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.line); err == nil {
				t.Errorf("Decode(%q) error = nil, want error", tt.line)
			}
		})
	}
}
