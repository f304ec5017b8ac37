package entity

import (
	"time"

	"campus-chat-app/enum"
)

type ChatRoom struct {
	BaseEntity
	Name        string        `json:"name" gorm:"type:varchar(100);not null;index"`
	Description string        `json:"description" gorm:"type:TEXT"`
	Type        enum.RoomType `json:"type" gorm:"type:varchar(10)"`
	CreatorID   *uint         `json:"creatorId"`
	IsActive    bool          `json:"isActive"`

	Creator *User         `json:"-" gorm:"foreignKey:CreatorID;references:ID"`
	Members []GroupMember `json:"-" gorm:"foreignKey:ChatRoomID;constraint:OnDelete:CASCADE;"`
}

// GroupMember exists only while the membership is active; leaving deletes it.
type GroupMember struct {
	ID         uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	ChatRoomID uint            `json:"chatRoomId" gorm:"not null;index"`
	UserID     uint            `json:"userId" gorm:"not null;index"`
	Role       enum.MemberRole `json:"role" gorm:"type:varchar(10);not null"`
	JoinedAt   time.Time       `json:"joinedAt"`

	ChatRoom ChatRoom `json:"-" gorm:"foreignKey:ChatRoomID;references:ID;constraint:OnDelete:CASCADE;"`
	User     User     `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE;"`
}
