// Package protocol holds the per-version constant tables of the sensor
// network protocol: command identifiers, presentation (sensor) types,
// set/req value types, and the payload validators that gate outbound
// state changes.
//
// Each protocol version ships its own tables. Later versions extend the
// tables of the version they are based on, so a value type introduced in
// 1.5 is rejected for a node still speaking 1.4.
//
// The package also assembles validation schemas: SchemaFor resolves the
// applicable validators for a (version, presentation type) pair once and
// caches the result, with type-specific entries overriding the generic
// custom-sensor entries.
package protocol
