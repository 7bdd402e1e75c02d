package mqtt

import (
	"fmt"
)

// maxPayloadSize caps publishes at 1MB. Sensor frames are tiny; this
// guards against a bug flooding the broker rather than any real need.
const maxPayloadSize = 1 << 20

// Publish sends one message and waits for the broker to acknowledge
// it, bounded by the publish timeout. QoS 0 is fire and forget, 1
// guarantees delivery with possible duplicates, 2 exactly once.
// Retained messages are stored by the broker and handed to new
// subscribers; frame traffic is never retained, only status topics.
//
//	topic := topics.Outbound(10, 1, 1, false, 2)
//	err := client.Publish(topic, []byte("1"), 1, false)
func (c *Client) Publish(topic string, payload []byte, qos byte, retained bool) error {
	if topic == "" {
		return ErrInvalidTopic
	}
	if qos > maxQoS {
		return ErrInvalidQoS
	}
	if len(payload) > maxPayloadSize {
		return fmt.Errorf("%w: payload size %d exceeds maximum %d bytes", ErrPublishFailed, len(payload), maxPayloadSize)
	}
	if !c.IsConnected() {
		return ErrNotConnected
	}

	token := c.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(defaultPublishTimeout) {
		return fmt.Errorf("%w: timeout after %v", ErrPublishFailed, defaultPublishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	return nil
}

// PublishString publishes a string payload.
func (c *Client) PublishString(topic string, payload string, qos byte, retained bool) error {
	return c.Publish(topic, []byte(payload), qos, retained)
}

// PublishRetained publishes a retained message at the configured
// default QoS. Meant for state topics, not frames.
func (c *Client) PublishRetained(topic string, payload []byte) error {
	return c.Publish(topic, payload, byte(c.cfg.QoS), true)
}
