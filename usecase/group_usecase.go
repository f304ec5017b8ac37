package usecase

import (
	"context"
	"strings"

	"campus-chat-app/dto/req"
	"campus-chat-app/dto/res"
)

const (
	// MasterGroupName is the campus wide room every user belongs to.
	MasterGroupName        = "Default College"
	masterGroupAlias       = "Master Group"
	masterGroupDescription = "Official Campus Wide Group"
)

// IsMasterGroup reports whether a room name is reserved for the master group.
func IsMasterGroup(name string) bool {
	return strings.EqualFold(name, MasterGroupName) || strings.EqualFold(name, masterGroupAlias)
}

type GroupUsecase interface {
	CreateGroup(ctx context.Context, request *req.CreateGroupRequest) (res.RoomResponse, error)
	AddMember(ctx context.Context, roomID, userID uint) error
	RemoveMember(ctx context.Context, roomID, userID uint) error
	GetMembers(ctx context.Context, roomID uint) ([]res.MemberResponse, error)
	GetUserGroups(ctx context.Context, userID uint) ([]res.RoomResponse, error)
	GetGroup(ctx context.Context, roomID uint) (res.RoomResponse, error)
	EnsureMasterGroup(ctx context.Context) (res.RoomResponse, error)
}
