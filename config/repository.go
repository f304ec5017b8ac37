package config

import (
	"fmt"

	"campus-chat-app/config/common"
	"campus-chat-app/config/logger"
	"campus-chat-app/repository"
	"campus-chat-app/repository/memory"
	"campus-chat-app/usecase"
)

type Repositories struct {
	Users          usecase.UserRepository
	Friendships    usecase.FriendshipRepository
	FriendRequests usecase.FriendRequestRepository
	Rooms          usecase.ChatRoomRepository
	Members        usecase.GroupMemberRepository
	Messages       usecase.ChatMessageRepository
	close          func() error
}

func (r *Repositories) Close() error {
	if r.close == nil {
		return nil
	}
	return r.close()
}

// NewRepositories opens the store selected by DB_DRIVER.
func NewRepositories(cfg *common.Config, log *logger.AppLogger) (*Repositories, error) {
	switch driver := cfg.GetDatabaseDriver(); driver {
	case "memory":
		log.Http.Warning.Warn().Msg("Using in-memory store, data is lost on restart")
		store := memory.NewStore()
		return &Repositories{
			Users:          memory.NewUserRepository(store),
			Friendships:    memory.NewFriendshipRepository(store),
			FriendRequests: memory.NewFriendRequestRepository(store),
			Rooms:          memory.NewChatRoomRepository(store),
			Members:        memory.NewGroupMemberRepository(store),
			Messages:       memory.NewChatMessageRepository(store),
		}, nil
	case "postgres":
		dbConfig, err := NewDB(cfg, log)
		if err != nil {
			return nil, err
		}
		db := dbConfig.GetDB()
		return &Repositories{
			Users:          repository.NewUserRepository(db),
			Friendships:    repository.NewFriendshipRepository(db),
			FriendRequests: repository.NewFriendRequestRepository(db),
			Rooms:          repository.NewChatRoomRepository(db),
			Members:        repository.NewGroupMemberRepository(db),
			Messages:       repository.NewChatMessageRepository(db),
			close:          dbConfig.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", driver)
	}
}
