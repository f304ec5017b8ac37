package usecase

import (
	"context"

	"campus-chat-app/dto"
	"campus-chat-app/dto/req"
	"campus-chat-app/dto/res"
)

// MessageUsecase is the broadcast gateway: it persists a submission and then
// publishes the enriched record. A failed publish does not undo the write.
type MessageUsecase interface {
	SendRoomMessage(ctx context.Context, roomID uint, request *req.RoomMessageRequest) (dto.BroadcastMessage, error)
	SendPrivateMessage(ctx context.Context, request *req.PrivateMessageRequest) (dto.BroadcastMessage, error)
	AnnouncePresence(ctx context.Context, request *req.PresenceRequest) (res.UserResponse, error)
	GetRoomMessages(ctx context.Context, roomID uint, limit int) ([]dto.BroadcastMessage, error)
	GetConversation(ctx context.Context, userID, otherID uint, limit int) ([]dto.BroadcastMessage, error)
}
