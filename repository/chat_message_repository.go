package repository

import (
	"context"

	"gorm.io/gorm"

	"campus-chat-app/entity"
)

type ChatMessageRepository struct {
	Repository[entity.ChatMessage]
}

func NewChatMessageRepository(db *gorm.DB) *ChatMessageRepository {
	return &ChatMessageRepository{Repository[entity.ChatMessage]{DB: db}}
}

func (repository ChatMessageRepository) FindByRoom(ctx context.Context, roomID uint, limit int) ([]entity.ChatMessage, error) {
	var messages []entity.ChatMessage
	err := repository.withRelations(ctx).
		Where("chat_room_id = ?", roomID).
		Order("timestamp DESC, id DESC").
		Limit(limit).
		Find(&messages).Error
	reverse(messages)
	return messages, err
}

func (repository ChatMessageRepository) FindConversation(ctx context.Context, userID, otherID uint, limit int) ([]entity.ChatMessage, error) {
	var messages []entity.ChatMessage
	err := repository.withRelations(ctx).
		Where("chat_room_id IS NULL").
		Where("((sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?))", userID, otherID, otherID, userID).
		Order("timestamp DESC, id DESC").
		Limit(limit).
		Find(&messages).Error
	reverse(messages)
	return messages, err
}

func (repository ChatMessageRepository) withRelations(ctx context.Context) *gorm.DB {
	return repository.DB.WithContext(ctx).
		Preload("Sender").
		Preload("Recipient").
		Preload("ChatRoom")
}

func reverse(messages []entity.ChatMessage) {
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
}
