package mqtt

import (
	"context"
	"encoding/json"
	"fmt"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/nerrad567/calc-core/internal/history"
)

// Maximum payload size for MQTT messages (1MB).
const maxPayloadSize = 1 << 20

// Publish sends a message to the specified MQTT topic.
//
// QoS must be 0, 1 or 2. Returns ErrNotConnected while the client is
// reconnecting; nothing is queued.
//
// Example:
//
//	topic := mqtt.Topics{}.Operation("add")
//	err := client.Publish(topic, payload, 1, false)
func (c *Client) Publish(topic string, payload []byte, qos byte, retained bool) error {
	token, err := c.startPublish(topic, payload, qos, retained)
	if err != nil {
		return err
	}
	if !token.WaitTimeout(defaultPublishTimeout) {
		return fmt.Errorf("%w: timeout after %v", ErrPublishFailed, defaultPublishTimeout)
	}
	return publishResult(token)
}

// PublishOperation publishes a stored record as JSON to
// calccore/operations/{operation}, not retained, at the configured QoS.
// It implements history.Publisher.
//
// The wait for the broker's acknowledgement ends when ctx does, so a stalled
// broker costs the caller no more than its own deadline. Without a deadline
// the default publish timeout applies.
func (c *Client) PublishOperation(ctx context.Context, rec history.Record) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultPublishTimeout)
		defer cancel()
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: encoding record %s: %w", ErrPublishFailed, rec.ID, err)
	}

	token, err := c.startPublish(Topics{}.Operation(string(rec.Operation)), payload, byte(c.cfg.QoS), false)
	if err != nil {
		return err
	}

	select {
	case <-token.Done():
		return publishResult(token)
	case <-ctx.Done():
		return fmt.Errorf("%w: waiting for broker: %w", ErrPublishFailed, ctx.Err())
	}
}

// startPublish validates the message and hands it to paho.
func (c *Client) startPublish(topic string, payload []byte, qos byte, retained bool) (pahomqtt.Token, error) {
	if topic == "" {
		return nil, ErrInvalidTopic
	}
	if qos > maxQoS {
		return nil, ErrInvalidQoS
	}
	if len(payload) > maxPayloadSize {
		return nil, fmt.Errorf("%w: payload size %d exceeds maximum %d bytes", ErrPublishFailed, len(payload), maxPayloadSize)
	}

	if !c.IsConnected() {
		return nil, ErrNotConnected
	}

	return c.client.Publish(topic, qos, retained, payload), nil
}

func publishResult(token pahomqtt.Token) error {
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}
	return nil
}
