package dto

import "encoding/json"

const (
	CommandSubscribe   = "SUBSCRIBE"
	CommandUnsubscribe = "UNSUBSCRIBE"
	CommandSend        = "SEND"
	CommandMessage     = "MESSAGE"
	CommandError       = "ERROR"
)

// Frame is one websocket message in either direction.
type Frame struct {
	Command     string          `json:"command"`
	Destination string          `json:"destination,omitempty"`
	Body        json.RawMessage `json:"body,omitempty"`
	Message     string          `json:"message,omitempty"`
}
