package influxdb

import (
	"strconv"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteChildValue writes a single child sensor reading to InfluxDB.
//
// This is the primary method for recording sensor telemetry. The write
// is non-blocking; data is batched and sent asynchronously.
//
// Numeric payloads are stored as a float "value" field so they can be
// graphed and aggregated. Non-numeric payloads (e.g. V_TEXT, RGB hex)
// are stored as a string "value_str" field instead.
//
// Parameters:
//   - nodeID: Sensor node id (0-254)
//   - childID: Child sensor id on the node
//   - valueType: Value type name (e.g., "V_TEMP", "V_HUM")
//   - value: The raw payload as received from the node
//
// Example:
//
//	client.WriteChildValue(10, 1, "V_TEMP", "21.5")
func (c *Client) WriteChildValue(nodeID int, childID int, valueType string, value string) {
	if !c.IsConnected() {
		return
	}

	tags := map[string]string{
		"node_id":  strconv.Itoa(nodeID),
		"child_id": strconv.Itoa(childID),
		"type":     valueType,
	}

	fields := map[string]interface{}{}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		fields["value"] = f
	} else {
		fields["value_str"] = value
	}

	point := write.NewPoint("child_value", tags, fields, time.Now())
	c.writeAPI.WritePoint(point)
}

// WriteBatteryLevel records a node's reported battery percentage.
func (c *Client) WriteBatteryLevel(nodeID int, level int) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"battery",
		map[string]string{
			"node_id": strconv.Itoa(nodeID),
		},
		map[string]interface{}{
			"level": level,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteHeartbeat records a heartbeat response from a node.
//
// The uptime payload reported by the node is stored alongside the
// wall-clock receive time, so gaps in this series indicate nodes
// that have gone quiet.
func (c *Client) WriteHeartbeat(nodeID int, uptime int64) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"heartbeat",
		map[string]string{
			"node_id": strconv.Itoa(nodeID),
		},
		map[string]interface{}{
			"uptime": uptime,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WritePoint writes a custom point with full control over tags and fields.
//
// Use this for measurements that don't fit the helper methods.
//
// Parameters:
//   - measurement: The measurement name (table)
//   - tags: Key-value pairs for indexing (low cardinality)
//   - fields: Key-value pairs for the actual data
//
// Example:
//
//	client.WritePoint("gateway_stats",
//	    map[string]string{"instance": "core-01"},
//	    map[string]interface{}{"nodes": 12, "smart_sleep": 3})
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, time.Now())
	c.writeAPI.WritePoint(point)
}

// WritePointWithTime writes a custom point with a specific timestamp.
//
// Use this when the timestamp is not "now" (e.g., readings flushed
// from a smart-sleep node's buffered queue).
func (c *Client) WritePointWithTime(measurement string, tags map[string]string, fields map[string]interface{}, timestamp time.Time) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, timestamp)
	c.writeAPI.WritePoint(point)
}
