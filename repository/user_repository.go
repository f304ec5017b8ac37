package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"campus-chat-app/entity"
)

type UserRepository struct {
	Repository[entity.User]
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{Repository[entity.User]{DB: db}}
}

func (repository UserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return first[entity.User](repository.DB.WithContext(ctx).Where("username = ?", username))
}

func (repository UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return first[entity.User](repository.DB.WithContext(ctx).Where("email = ?", email).Order("id ASC"))
}

func (repository UserRepository) FindAllByIDs(ctx context.Context, ids []uint) ([]entity.User, error) {
	var users []entity.User
	if len(ids) == 0 {
		return users, nil
	}
	err := repository.DB.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&users).Error
	return users, err
}

type FriendshipRepository struct {
	Repository[entity.Friendship]
}

func NewFriendshipRepository(db *gorm.DB) *FriendshipRepository {
	return &FriendshipRepository{Repository[entity.Friendship]{DB: db}}
}

func (repository FriendshipRepository) Link(ctx context.Context, userID, friendID uint) error {
	return repository.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		links := []entity.Friendship{
			{UserID: userID, FriendID: friendID},
			{UserID: friendID, FriendID: userID},
		}
		return tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&links).Error
	})
}

func (repository FriendshipRepository) Unlink(ctx context.Context, userID, friendID uint) error {
	return repository.DB.WithContext(ctx).
		Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)", userID, friendID, friendID, userID).
		Delete(&entity.Friendship{}).Error
}

func (repository FriendshipRepository) FindFriends(ctx context.Context, userID uint) ([]entity.User, error) {
	var friends []entity.User
	err := repository.DB.WithContext(ctx).
		Model(&entity.User{}).
		Joins("JOIN t_friendship f ON f.friend_id = t_user.id").
		Where("f.user_id = ?", userID).
		Order("f.id ASC").
		Find(&friends).Error
	return friends, err
}
