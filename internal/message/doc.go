// Package message shapes outbound protocol messages and validates them
// against a protocol version's constant tables.
//
// A message is the five-field tuple (node, child, command, subtype,
// payload) plus an ack flag. Encode renders the gateway line form used
// on the wire; it fails when the tuple cannot be legally expressed,
// which callers use as a cheap pre-flight check before committing a
// state change. Parsing inbound wire frames is deliberately not
// provided here; the transport layer delivers structured fields.
package message
