package usecase

import (
	"context"

	"campus-chat-app/dto/req"
	"campus-chat-app/dto/res"
)

// FriendUsecase runs the friend-request workflow. Requests are never
// deduplicated and accepting twice does not fail.
type FriendUsecase interface {
	SendFriendRequest(ctx context.Context, request *req.FriendRequestRequest) (res.FriendRequestResponse, error)
	AcceptFriendRequest(ctx context.Context, requestID uint) (res.FriendRequestResponse, error)
	RemoveFriend(ctx context.Context, userID, friendID uint) error
	GetFriends(ctx context.Context, userID uint) ([]res.UserResponse, error)
	GetPendingRequests(ctx context.Context, userID uint) ([]res.FriendRequestResponse, error)
	GetSentRequests(ctx context.Context, userID uint) ([]res.FriendRequestResponse, error)
}
