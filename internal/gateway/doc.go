// Package gateway implements the message-processing core of sensornet.
//
// The gateway subscribes to inbound frames from the radio bridge and
// to controller commands (value sets and node-level actions such as
// reboot), applies them to the sensor registry, and publishes outbound
// frames when nodes request values or wake from smart sleep. All
// inbound traffic is funnelled through a single processing goroutine
// so that per-node state transitions are serialized.
//
// # Message Flow
//
//	Radio bridge ──MQTT──▶ Gateway ──▶ sensor.Registry ──▶ SQLite
//	                         │
//	                         ├──▶ InfluxDB (telemetry, optional)
//	                         └──MQTT──▶ Radio bridge (replies, flushes)
//
// Smart-sleep nodes only listen briefly after they report in. The
// gateway holds their desired state and queued messages, and flushes
// both when the node signals a heartbeat or a pre-sleep notification.
package gateway
