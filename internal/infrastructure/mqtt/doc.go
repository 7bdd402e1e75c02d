// Package mqtt provides MQTT client connectivity for sensornet.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Topic subscriptions with wildcard support
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// # Architecture
//
// The radio gateway publishes every frame it receives from the sensor
// network as one MQTT message, and subscribes for frames to transmit.
// The topic carries the addressing fields; the payload is the value:
//
//	{prefix}-in/{node}/{child}/{command}/{ack}/{type}   radio to core
//	{prefix}-out/{node}/{child}/{command}/{ack}/{type}  core to radio
//	{prefix}-set/{node}/{child}/{type}                  controller value sets
//	{prefix}-cmd/{node}/{action}                        node-level commands
//
// # Security Considerations
//
//   - TLS is required for production deployments (cfg.Broker.TLS=true)
//   - Credentials are validated against broker ACL
//   - Anonymous access is only for local development
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	topics := mqtt.NewTopics("sensornet")
//	err = client.Subscribe(topics.AllInbound(), 1,
//	    func(topic string, payload []byte) error {
//	        // handle one sensor frame
//	        return nil
//	    })
package mqtt
