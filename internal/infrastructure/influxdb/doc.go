// Package influxdb provides InfluxDB connectivity for sensornet.
//
// It wraps the official influxdb-client-go v2 library with patterns for
// connection management, metric writing, and health monitoring.
//
// # Purpose
//
// This package handles time-series storage for:
//   - Child sensor value reports
//   - Node battery levels and heartbeats
//
// # Usage
//
//	client, err := influxdb.Connect(cfg.InfluxDB)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	client.WriteChildValue(10, 1, "V_TEMP", "21.5")
//
// # Thread Safety
//
// All methods are safe for concurrent use from multiple goroutines.
// The underlying write API uses non-blocking batched writes.
//
// # Error Handling
//
// Write operations are non-blocking and batch errors are logged via a
// callback. Connection and health check errors are returned directly.
package influxdb
