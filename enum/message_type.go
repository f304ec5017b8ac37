package enum

type MessageType string

const (
	MessageTypeChat  MessageType = "CHAT"
	MessageTypeJoin  MessageType = "JOIN"
	MessageTypeLeave MessageType = "LEAVE"
)
