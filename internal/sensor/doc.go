// Package sensor tracks the authoritative and desired state of sensor
// network nodes and their child sensors.
//
// A Sensor is one network node: identity, sketch metadata, validated
// battery/heartbeat/protocol-version scalars, and a map of child
// sensors each holding a value map keyed by protocol value type.
//
// Smart-sleep nodes communicate only intermittently, so wanted state
// cannot be pushed to them immediately. For those nodes the package
// keeps a desired-state shadow per child: SetChildDesiredState records
// what a consumer wants, GetDesiredValue resolves shadow-first with
// fallback to the last actual value, and UpdateChildValue clears a
// shadow entry when the node reports the value, treating receipt as
// satisfaction of the pending request.
//
// Every candidate value is gated through the protocol package's
// per-version, per-type schemas before it is accepted as desired
// state. Schema rejections and duplicate registrations are expected
// protocol disagreements and are reported as negative results, never
// as errors; unknown child ids and out-of-range scalars are errors.
//
// The package performs no internal locking. A Sensor assumes a single
// logical owner (the Registry serializes access per registry); only
// operations on distinct sensors may run concurrently.
package sensor
