package entity

import "campus-chat-app/enum"

type User struct {
	BaseEntity
	Username string          `json:"username" gorm:"uniqueIndex;type:varchar(50);not null"`
	Email    string          `json:"email" gorm:"index;type:varchar(100)"`
	Password string          `json:"-" gorm:"type:varchar(255)"`
	Status   enum.UserStatus `json:"status" gorm:"type:varchar(10)"`
}

// Friendship is one direction of a friend link. Two rows, (a,b) and (b,a),
// always exist together.
type Friendship struct {
	ID       uint `gorm:"primaryKey;autoIncrement"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_friendship_pair"`
	FriendID uint `gorm:"not null;uniqueIndex:idx_friendship_pair"`

	User   User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE;"`
	Friend User `gorm:"foreignKey:FriendID;references:ID;constraint:OnDelete:CASCADE;"`
}
