package sensor

import (
	"time"

	"github.com/calewin/sensornet/internal/protocol"
)

// Record is the persisted form of a sensor. It is a separate type from
// Sensor so the storage schema can evolve independently of the live
// one; transient fields (queue, reboot flag, desired-state shadow) are
// deliberately absent.
type Record struct {
	ID              int                   `json:"id"`
	Type            protocol.Presentation `json:"type"`
	SketchName      string                `json:"sketch_name"`
	SketchVersion   string                `json:"sketch_version"`
	BatteryLevel    int                   `json:"battery_level"`
	Heartbeat       int64                 `json:"heartbeat"`
	ProtocolVersion string                `json:"protocol_version"`
	Children        []ChildRecord         `json:"children"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// ChildRecord is the persisted form of a child sensor.
type ChildRecord struct {
	ID          int                        `json:"id"`
	Type        protocol.Presentation      `json:"type"`
	Description string                     `json:"description,omitempty"`
	Values      map[protocol.SetReq]string `json:"values"`
}

// Snapshot captures the sensor's durable state as a record. Children
// and their values are deep-copied so later mutations of the live
// sensor do not leak into the record.
func (s *Sensor) Snapshot() *Record {
	rec := &Record{
		ID:              s.ID,
		Type:            s.Type,
		SketchName:      s.SketchName,
		SketchVersion:   s.SketchVersion,
		BatteryLevel:    s.batteryLevel,
		Heartbeat:       s.heartbeat,
		ProtocolVersion: s.protocolVersion,
		Children:        make([]ChildRecord, 0, len(s.Children)),
	}
	for _, child := range s.Children {
		cr := ChildRecord{
			ID:          child.ID,
			Type:        child.Type,
			Description: child.Description,
			Values:      make(map[protocol.SetReq]string, len(child.Values)),
		}
		for vt, v := range child.Values {
			cr.Values[vt] = v
		}
		rec.Children = append(rec.Children, cr)
	}
	return rec
}

// FromRecord rebuilds a live sensor from its persisted record.
// Transient state starts fresh: the queue is empty, no reboot is
// pending, and the node is not in smart-sleep mode until a tracker
// re-enables it. Fields absent from older records get safe defaults:
// zero heartbeat, empty description, the default protocol version.
func FromRecord(rec *Record) *Sensor {
	s := New(rec.ID)
	s.Type = rec.Type
	s.SketchName = rec.SketchName
	s.SketchVersion = rec.SketchVersion
	s.batteryLevel = rec.BatteryLevel
	s.heartbeat = rec.Heartbeat
	if rec.ProtocolVersion != "" {
		s.protocolVersion = rec.ProtocolVersion
	}
	for _, cr := range rec.Children {
		child := NewChildSensor(cr.ID, cr.Type, cr.Description)
		for vt, v := range cr.Values {
			child.Values[vt] = v
		}
		s.Children[cr.ID] = child
	}
	return s
}
