// internal/bridge/messages.go
package bridge

// MessageType names an outbound message. Simulation events use their own
// event type as the message type.
type MessageType string

const (
	MessageTypeWelcome MessageType = "welcome"
	MessageTypeError   MessageType = "error"
)

// OutboundMessage is every message sent to a client.
type OutboundMessage struct {
	Type MessageType `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

type WelcomeMessage struct {
	ClientID string `json:"client_id"`
}

type ErrorMessage struct {
	Reason  string `json:"reason"`
	Command string `json:"command,omitempty"`
}
