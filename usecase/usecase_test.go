package usecase

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"campus-chat-app/config/common"
	"campus-chat-app/config/logger"
	"campus-chat-app/dto/req"
	"campus-chat-app/dto/res"
	"campus-chat-app/pubsub"
	"campus-chat-app/repository/memory"
	"campus-chat-app/security"
)

type testEnv struct {
	store    *memory.Store
	hub      *pubsub.Hub
	users    UserUsecase
	friends  FriendUsecase
	groups   GroupUsecase
	messages MessageUsecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := logger.NewNopLogger()
	validate := validator.New()
	v := viper.New()
	v.Set("JWT_SECRET", "usecase-test")
	jwt := security.NewJWT(common.NewConfig(v))

	store := memory.NewStore()
	userRepo := memory.NewUserRepository(store)
	roomRepo := memory.NewChatRoomRepository(store)
	hub := pubsub.NewHub(log)

	return &testEnv{
		store:    store,
		hub:      hub,
		users:    NewUserUsecase(userRepo, validate, log, jwt),
		friends:  NewFriendUsecase(userRepo, memory.NewFriendshipRepository(store), memory.NewFriendRequestRepository(store), validate, log),
		groups:   NewGroupUsecase(roomRepo, memory.NewGroupMemberRepository(store), userRepo, validate, log),
		messages: NewMessageUsecase(memory.NewChatMessageRepository(store), roomRepo, userRepo, hub, validate, log),
	}
}

func (env *testEnv) register(t *testing.T, username, email, password string) res.UserResponse {
	t.Helper()
	user, err := env.users.Register(context.Background(), &req.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return user
}
