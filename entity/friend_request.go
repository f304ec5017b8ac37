package entity

import (
	"time"

	"campus-chat-app/enum"
)

type FriendRequest struct {
	BaseEntity
	SenderID   uint                     `json:"senderId" gorm:"not null;index"`
	ReceiverID uint                     `json:"receiverId" gorm:"not null;index"`
	Status     enum.FriendRequestStatus `json:"status" gorm:"type:varchar(10);not null"`
	Timestamp  time.Time                `json:"timestamp"`

	Sender   User `json:"sender" gorm:"foreignKey:SenderID;references:ID;constraint:OnDelete:CASCADE;"`
	Receiver User `json:"receiver" gorm:"foreignKey:ReceiverID;references:ID;constraint:OnDelete:CASCADE;"`
}
