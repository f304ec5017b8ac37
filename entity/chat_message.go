package entity

import (
	"time"

	"campus-chat-app/enum"
)

// ChatMessage is either room scoped (ChatRoomID set, RecipientID nil) or
// private (ChatRoomID nil, RecipientID set).
type ChatMessage struct {
	BaseEntity
	ChatRoomID  *uint            `json:"chatRoomId" gorm:"index"`
	SenderID    uint             `json:"senderId" gorm:"not null;index"`
	RecipientID *uint            `json:"recipientId" gorm:"index"`
	Content     string           `json:"content" gorm:"type:TEXT"`
	Timestamp   time.Time        `json:"timestamp" gorm:"index"`
	Type        enum.MessageType `json:"type" gorm:"type:varchar(10)"`

	ChatRoom  *ChatRoom `json:"-" gorm:"foreignKey:ChatRoomID;references:ID;constraint:OnDelete:CASCADE;"`
	Sender    User      `json:"-" gorm:"foreignKey:SenderID;references:ID"`
	Recipient *User     `json:"-" gorm:"foreignKey:RecipientID;references:ID"`
}

func (m *ChatMessage) IsPrivate() bool {
	return m.ChatRoomID == nil && m.RecipientID != nil
}
