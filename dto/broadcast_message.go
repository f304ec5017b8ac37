package dto

// TimeLayout is the timestamp format used in every outbound record.
const TimeLayout = "2006-01-02 15:04:05"

// BroadcastMessage is the persisted chat message enriched with the resolved
// sender, recipient and room, as published to topic subscribers.
type BroadcastMessage struct {
	MessageID     uint   `json:"id"`
	RoomID        *uint  `json:"roomId,omitempty"`
	RoomName      string `json:"roomName,omitempty"`
	SenderID      uint   `json:"senderId"`
	SenderName    string `json:"senderName"`
	SenderEmail   string `json:"senderEmail,omitempty"`
	RecipientID   *uint  `json:"recipientId,omitempty"`
	RecipientName string `json:"recipientName,omitempty"`
	Content       string `json:"content"`
	Type          string `json:"type"`
	Timestamp     string `json:"timestamp"`
}
