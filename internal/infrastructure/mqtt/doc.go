// Package mqtt publishes calc-core operation events to an MQTT broker.
//
// It manages:
//   - Connection with auto-reconnect and exponential backoff
//   - Publishing each recorded operation to calccore/operations/{operation}
//   - Retained service status on calccore/system/status, with a Last Will
//     so subscribers see "offline" if the process dies
//
// MQTT is optional. When mqtt.enabled is false nothing connects, and when the
// broker is down at startup calc-core logs a warning and runs without it.
//
// Usage:
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	recorder := history.NewRecorder(repo, history.WithPublisher("mqtt", client))
package mqtt
