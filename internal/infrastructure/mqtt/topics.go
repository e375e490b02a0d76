package mqtt

// Topic prefixes for calc-core MQTT traffic.
const (
	// TopicPrefix is the root of every calc-core topic.
	TopicPrefix = "calccore"

	// TopicPrefixOperations is the base for completed-operation events.
	TopicPrefixOperations = TopicPrefix + "/operations"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = TopicPrefix + "/system"
)

// Topics provides builders for calc-core MQTT topics.
//
//	topic := mqtt.Topics{}.Operation("divide")
//	// Returns: "calccore/operations/divide"
type Topics struct{}

// Operation returns the event topic for one operation.
//
// Example: calccore/operations/sqrt
func (Topics) Operation(op string) string {
	return TopicPrefixOperations + "/" + op
}

// SystemStatus returns the retained service status topic.
//
// Example: calccore/system/status
func (Topics) SystemStatus() string {
	return TopicPrefixSystem + "/status"
}
