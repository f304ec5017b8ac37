package usecase

import (
	"context"

	"campus-chat-app/entity"
	"campus-chat-app/enum"
)

// Storage contracts used by the usecases. Find* methods return (nil, nil)
// when the row does not exist.

type UserRepository interface {
	Save(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindById(ctx context.Context, id uint) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindAllByIDs(ctx context.Context, ids []uint) ([]entity.User, error)
	FindAll(ctx context.Context) ([]entity.User, error)
}

type FriendshipRepository interface {
	// Link stores both directions of the friendship atomically. Existing
	// links are kept as they are.
	Link(ctx context.Context, userID, friendID uint) error
	// Unlink removes both directions.
	Unlink(ctx context.Context, userID, friendID uint) error
	FindFriends(ctx context.Context, userID uint) ([]entity.User, error)
}

type FriendRequestRepository interface {
	Save(ctx context.Context, request *entity.FriendRequest) error
	Update(ctx context.Context, request *entity.FriendRequest) error
	FindById(ctx context.Context, id uint) (*entity.FriendRequest, error)
	FindByReceiverAndStatus(ctx context.Context, receiverID uint, status enum.FriendRequestStatus) ([]entity.FriendRequest, error)
	FindBySenderAndStatus(ctx context.Context, senderID uint, status enum.FriendRequestStatus) ([]entity.FriendRequest, error)
}

type ChatRoomRepository interface {
	Save(ctx context.Context, room *entity.ChatRoom) error
	// CreateWithMembers stores the room and its initial members in one
	// transaction and fills in the generated ids.
	CreateWithMembers(ctx context.Context, room *entity.ChatRoom, members []entity.GroupMember) error
	FindById(ctx context.Context, id uint) (*entity.ChatRoom, error)
	FindByName(ctx context.Context, name string) (*entity.ChatRoom, error)
}

type GroupMemberRepository interface {
	Save(ctx context.Context, member *entity.GroupMember) error
	Delete(ctx context.Context, member *entity.GroupMember) error
	FindByRoomAndUser(ctx context.Context, roomID, userID uint) (*entity.GroupMember, error)
	// FindByRoom returns members in join order with User loaded.
	FindByRoom(ctx context.Context, roomID uint) ([]entity.GroupMember, error)
	// FindRoomsByUser returns the rooms the user holds a membership row for.
	FindRoomsByUser(ctx context.Context, userID uint) ([]entity.ChatRoom, error)
}

type ChatMessageRepository interface {
	Save(ctx context.Context, message *entity.ChatMessage) error
	// FindByRoom returns the latest limit room messages, oldest first.
	FindByRoom(ctx context.Context, roomID uint, limit int) ([]entity.ChatMessage, error)
	// FindConversation returns the latest limit private messages exchanged
	// between two users, oldest first.
	FindConversation(ctx context.Context, userID, otherID uint, limit int) ([]entity.ChatMessage, error)
}
