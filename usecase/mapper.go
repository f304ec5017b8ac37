package usecase

import (
	"campus-chat-app/dto"
	"campus-chat-app/dto/res"
	"campus-chat-app/entity"
)

func toUserResponse(user entity.User) res.UserResponse {
	return res.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Status:    string(user.Status),
		CreatedAt: user.CreatedAt.Format(dto.TimeLayout),
	}
}

func toUserResponses(users []entity.User) []res.UserResponse {
	responses := make([]res.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, toUserResponse(user))
	}
	return responses
}

func toFriendRequestResponse(request entity.FriendRequest) res.FriendRequestResponse {
	return res.FriendRequestResponse{
		ID:           request.ID,
		SenderID:     request.SenderID,
		SenderName:   request.Sender.Username,
		ReceiverID:   request.ReceiverID,
		ReceiverName: request.Receiver.Username,
		Status:       string(request.Status),
		Timestamp:    request.Timestamp.Format(dto.TimeLayout),
	}
}

func toFriendRequestResponses(requests []entity.FriendRequest) []res.FriendRequestResponse {
	responses := make([]res.FriendRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, toFriendRequestResponse(request))
	}
	return responses
}

func toRoomResponse(room entity.ChatRoom) res.RoomResponse {
	return res.RoomResponse{
		ID:          room.ID,
		Name:        room.Name,
		Description: room.Description,
		Type:        string(room.Type),
		CreatorID:   room.CreatorID,
		IsActive:    room.IsActive,
		CreatedAt:   room.CreatedAt.Format(dto.TimeLayout),
	}
}

func toMemberResponse(member entity.GroupMember) res.MemberResponse {
	return res.MemberResponse{
		UserID:   member.UserID,
		Username: member.User.Username,
		Email:    member.User.Email,
		Status:   string(member.User.Status),
		Role:     string(member.Role),
		JoinedAt: member.JoinedAt.Format(dto.TimeLayout),
	}
}

// toBroadcastMessage expects Sender, and Recipient or ChatRoom, to be loaded.
func toBroadcastMessage(message entity.ChatMessage) dto.BroadcastMessage {
	broadcast := dto.BroadcastMessage{
		MessageID:   message.ID,
		RoomID:      message.ChatRoomID,
		SenderID:    message.SenderID,
		SenderName:  message.Sender.Username,
		SenderEmail: message.Sender.Email,
		RecipientID: message.RecipientID,
		Content:     message.Content,
		Type:        string(message.Type),
		Timestamp:   message.Timestamp.Format(dto.TimeLayout),
	}
	switch {
	case message.IsPrivate():
		if message.Recipient != nil {
			broadcast.RecipientName = message.Recipient.Username
		}
	case message.ChatRoom != nil:
		broadcast.RoomName = message.ChatRoom.Name
	}
	return broadcast
}

func toBroadcastMessages(messages []entity.ChatMessage) []dto.BroadcastMessage {
	broadcasts := make([]dto.BroadcastMessage, 0, len(messages))
	for _, message := range messages {
		broadcasts = append(broadcasts, toBroadcastMessage(message))
	}
	return broadcasts
}
