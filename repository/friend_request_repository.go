package repository

import (
	"context"

	"gorm.io/gorm"

	"campus-chat-app/entity"
	"campus-chat-app/enum"
)

type FriendRequestRepository struct {
	Repository[entity.FriendRequest]
}

func NewFriendRequestRepository(db *gorm.DB) *FriendRequestRepository {
	return &FriendRequestRepository{Repository[entity.FriendRequest]{DB: db}}
}

func (repository FriendRequestRepository) FindById(ctx context.Context, id uint) (*entity.FriendRequest, error) {
	return first[entity.FriendRequest](repository.withParties(ctx).Where("id = ?", id))
}

func (repository FriendRequestRepository) FindByReceiverAndStatus(ctx context.Context, receiverID uint, status enum.FriendRequestStatus) ([]entity.FriendRequest, error) {
	var requests []entity.FriendRequest
	err := repository.withParties(ctx).
		Where("receiver_id = ? AND status = ?", receiverID, status).
		Order("timestamp ASC, id ASC").
		Find(&requests).Error
	return requests, err
}

func (repository FriendRequestRepository) FindBySenderAndStatus(ctx context.Context, senderID uint, status enum.FriendRequestStatus) ([]entity.FriendRequest, error) {
	var requests []entity.FriendRequest
	err := repository.withParties(ctx).
		Where("sender_id = ? AND status = ?", senderID, status).
		Order("timestamp ASC, id ASC").
		Find(&requests).Error
	return requests, err
}

func (repository FriendRequestRepository) withParties(ctx context.Context) *gorm.DB {
	return repository.DB.WithContext(ctx).Preload("Sender").Preload("Receiver")
}
