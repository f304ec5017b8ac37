package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"campus-chat-app/entity"
)

type ChatRoomRepository struct {
	Repository[entity.ChatRoom]
}

func NewChatRoomRepository(db *gorm.DB) *ChatRoomRepository {
	return &ChatRoomRepository{Repository[entity.ChatRoom]{DB: db}}
}

func (repository ChatRoomRepository) FindByName(ctx context.Context, name string) (*entity.ChatRoom, error) {
	return first[entity.ChatRoom](repository.DB.WithContext(ctx).Where("name = ?", name).Order("id ASC"))
}

func (repository ChatRoomRepository) CreateWithMembers(ctx context.Context, room *entity.ChatRoom, members []entity.GroupMember) error {
	return repository.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(room).Error; err != nil {
			return err
		}
		if len(members) == 0 {
			return nil
		}
		for i := range members {
			members[i].ChatRoomID = room.ID
		}
		return tx.Omit(clause.Associations).Create(&members).Error
	})
}

type GroupMemberRepository struct {
	Repository[entity.GroupMember]
}

func NewGroupMemberRepository(db *gorm.DB) *GroupMemberRepository {
	return &GroupMemberRepository{Repository[entity.GroupMember]{DB: db}}
}

func (repository GroupMemberRepository) FindByRoomAndUser(ctx context.Context, roomID, userID uint) (*entity.GroupMember, error) {
	return first[entity.GroupMember](repository.DB.WithContext(ctx).
		Where("chat_room_id = ? AND user_id = ?", roomID, userID).
		Order("id ASC"))
}

func (repository GroupMemberRepository) FindByRoom(ctx context.Context, roomID uint) ([]entity.GroupMember, error) {
	var members []entity.GroupMember
	err := repository.DB.WithContext(ctx).
		Preload("User").
		Where("chat_room_id = ?", roomID).
		Order("joined_at ASC, id ASC").
		Find(&members).Error
	return members, err
}

func (repository GroupMemberRepository) FindRoomsByUser(ctx context.Context, userID uint) ([]entity.ChatRoom, error) {
	var rooms []entity.ChatRoom
	err := repository.DB.WithContext(ctx).
		Model(&entity.ChatRoom{}).
		Joins("JOIN t_group_member gm ON gm.chat_room_id = t_chat_room.id").
		Where("gm.user_id = ?", userID).
		Order("gm.joined_at ASC, gm.id ASC").
		Find(&rooms).Error
	return rooms, err
}
