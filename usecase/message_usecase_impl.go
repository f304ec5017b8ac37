package usecase

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"campus-chat-app/apperror"
	"campus-chat-app/config/logger"
	"campus-chat-app/dto"
	"campus-chat-app/dto/req"
	"campus-chat-app/dto/res"
	"campus-chat-app/entity"
	"campus-chat-app/enum"
	"campus-chat-app/pubsub"
	"campus-chat-app/security"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
)

type messageUsecase struct {
	messages ChatMessageRepository
	rooms    ChatRoomRepository
	users    UserRepository
	broker   pubsub.Broker
	validate *validator.Validate
	log      *logger.AppLogger
}

func NewMessageUsecase(messages ChatMessageRepository, rooms ChatRoomRepository, users UserRepository, broker pubsub.Broker, validate *validator.Validate, log *logger.AppLogger) MessageUsecase {
	return &messageUsecase{
		messages: messages,
		rooms:    rooms,
		users:    users,
		broker:   broker,
		validate: validate,
		log:      log,
	}
}

func (uc *messageUsecase) SendRoomMessage(ctx context.Context, roomID uint, request *req.RoomMessageRequest) (dto.BroadcastMessage, error) {
	if err := uc.validate.Struct(request); err != nil {
		return dto.BroadcastMessage{}, err
	}

	room, err := uc.rooms.FindById(ctx, roomID)
	if err != nil {
		return dto.BroadcastMessage{}, err
	}
	if room == nil {
		return dto.BroadcastMessage{}, apperror.NotFound("room %d not found", roomID)
	}
	sender, err := uc.findUser(ctx, request.SenderID, "sender")
	if err != nil {
		return dto.BroadcastMessage{}, err
	}

	message := &entity.ChatMessage{
		ChatRoomID: &room.ID,
		SenderID:   sender.ID,
		Content:    request.Content,
		Timestamp:  time.Now(),
		Type:       messageType(request.Type),
	}
	if err := uc.messages.Save(ctx, message); err != nil {
		uc.log.WS.Error.Error().Err(err).Uint("roomId", roomID).Msg("Failed to save room message")
		return dto.BroadcastMessage{}, err
	}
	message.ChatRoom = room
	message.Sender = *sender

	broadcast := toBroadcastMessage(*message)
	uc.publish(ctx, pubsub.RoomTopic(room.ID), broadcast)
	return broadcast, nil
}

// SendPrivateMessage publishes to the recipient and echoes to the sender.
func (uc *messageUsecase) SendPrivateMessage(ctx context.Context, request *req.PrivateMessageRequest) (dto.BroadcastMessage, error) {
	if err := uc.validate.Struct(request); err != nil {
		return dto.BroadcastMessage{}, err
	}

	sender, err := uc.findUser(ctx, request.SenderID, "sender")
	if err != nil {
		return dto.BroadcastMessage{}, err
	}
	recipient, err := uc.findUser(ctx, request.RecipientID, "recipient")
	if err != nil {
		return dto.BroadcastMessage{}, err
	}

	message := &entity.ChatMessage{
		SenderID:    sender.ID,
		RecipientID: &recipient.ID,
		Content:     request.Content,
		Timestamp:   time.Now(),
		Type:        messageType(request.Type),
	}
	if err := uc.messages.Save(ctx, message); err != nil {
		uc.log.WS.Error.Error().Err(err).Uint("senderId", sender.ID).Msg("Failed to save private message")
		return dto.BroadcastMessage{}, err
	}
	message.Sender = *sender
	message.Recipient = recipient

	broadcast := toBroadcastMessage(*message)
	uc.publish(ctx, pubsub.PrivateTopic(recipient.ID), broadcast)
	uc.publish(ctx, pubsub.PrivateTopic(sender.ID), broadcast)
	return broadcast, nil
}

// AnnouncePresence marks a known user ONLINE or stores the announced profile
// as a new ONLINE user. Nothing is published.
func (uc *messageUsecase) AnnouncePresence(ctx context.Context, request *req.PresenceRequest) (res.UserResponse, error) {
	if err := uc.validate.Struct(request); err != nil {
		return res.UserResponse{}, err
	}

	user, err := uc.users.FindByUsername(ctx, request.Username)
	if err != nil {
		return res.UserResponse{}, err
	}
	if user != nil {
		user.Status = enum.UserStatusOnline
		if err := uc.users.Update(ctx, user); err != nil {
			return res.UserResponse{}, err
		}
		uc.log.WS.Info.Info().Str("username", user.Username).Msg("User online")
		return toUserResponse(*user), nil
	}

	user = &entity.User{
		Username: request.Username,
		Email:    request.Email,
		Status:   enum.UserStatusOnline,
	}
	if request.Password != "" {
		if user.Password, err = security.HashPassword(request.Password); err != nil {
			return res.UserResponse{}, err
		}
	}
	if err := uc.users.Save(ctx, user); err != nil {
		uc.log.WS.Error.Error().Err(err).Str("username", request.Username).Msg("Failed to save announced user")
		return res.UserResponse{}, err
	}
	uc.log.WS.Info.Info().Str("username", user.Username).Uint("userId", user.ID).Msg("New user online")
	return toUserResponse(*user), nil
}

func (uc *messageUsecase) GetRoomMessages(ctx context.Context, roomID uint, limit int) ([]dto.BroadcastMessage, error) {
	room, err := uc.rooms.FindById(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, apperror.NotFound("room %d not found", roomID)
	}

	messages, err := uc.messages.FindByRoom(ctx, roomID, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	return toBroadcastMessages(messages), nil
}

func (uc *messageUsecase) GetConversation(ctx context.Context, userID, otherID uint, limit int) ([]dto.BroadcastMessage, error) {
	if _, err := uc.findUser(ctx, userID, "user"); err != nil {
		return nil, err
	}
	if _, err := uc.findUser(ctx, otherID, "user"); err != nil {
		return nil, err
	}

	messages, err := uc.messages.FindConversation(ctx, userID, otherID, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	return toBroadcastMessages(messages), nil
}

func (uc *messageUsecase) publish(ctx context.Context, topic string, broadcast dto.BroadcastMessage) {
	if err := uc.broker.Publish(ctx, topic, broadcast); err != nil {
		uc.log.WS.Error.Error().Err(err).Str("topic", topic).Uint("messageId", broadcast.MessageID).Msg("Failed to publish message")
		return
	}
	uc.log.WS.Stream.Info().Str("topic", topic).Uint("messageId", broadcast.MessageID).Msg("Message published")
}

func (uc *messageUsecase) findUser(ctx context.Context, userID uint, role string) (*entity.User, error) {
	user, err := uc.users.FindById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("%s %d not found", role, userID)
	}
	return user, nil
}

func messageType(value string) enum.MessageType {
	if value == "" {
		return enum.MessageTypeChat
	}
	return enum.MessageType(value)
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		return MaxHistoryLimit
	}
	return limit
}
