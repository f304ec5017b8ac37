package handler

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-chat-app/apperror"
	"campus-chat-app/config/common"
	"campus-chat-app/config/logger"
	"campus-chat-app/dto"
	"campus-chat-app/dto/req"
	"campus-chat-app/pubsub"
	"campus-chat-app/repository/memory"
	"campus-chat-app/security"
	"campus-chat-app/usecase"
)

type gateway struct {
	*WebSocketHandler
	hub   *pubsub.Hub
	users usecase.UserUsecase
}

func newGateway(t *testing.T) *gateway {
	t.Helper()

	v := viper.New()
	v.Set("JWT_SECRET", "ws-test")
	log := logger.NewNopLogger()
	validate := validator.New()

	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	rooms := memory.NewChatRoomRepository(store)
	hub := pubsub.NewHub(log)

	userUsecase := usecase.NewUserUsecase(users, validate, log, security.NewJWT(common.NewConfig(v)))
	groupUsecase := usecase.NewGroupUsecase(rooms, memory.NewGroupMemberRepository(store), users, validate, log)
	messageUsecase := usecase.NewMessageUsecase(memory.NewChatMessageRepository(store), rooms, users, hub, validate, log)
	require.NoError(t, usecase.NewBootstrap(userUsecase, groupUsecase, log).Run(context.Background()))

	return &gateway{
		WebSocketHandler: NewWebSocketHandler(messageUsecase, userUsecase, hub, log, 8),
		hub:              hub,
		users:            userUsecase,
	}
}

func frame(t *testing.T, command, destination string, body interface{}) dto.Frame {
	t.Helper()
	f := dto.Frame{Command: command, Destination: destination}
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		f.Body = data
	}
	return f
}

func TestSubscribeAndReceiveRoomMessage(t *testing.T) {
	g := newGateway(t)
	ctx := context.Background()
	listener := g.newSession()
	sender := g.newSession()

	require.NoError(t, g.route(ctx, listener, frame(t, dto.CommandSubscribe, "/topic/room/1", nil)))
	assert.Equal(t, 1, g.hub.Subscribers("/topic/room/1"))

	err := g.route(ctx, sender, frame(t, dto.CommandSend, "/app/chat.sendMessage/1", req.RoomMessageRequest{SenderID: 1, Content: "hello"}))
	require.NoError(t, err)

	require.Len(t, listener.sub.C, 1)
	out := messageFrame(<-listener.sub.C)
	assert.Equal(t, dto.CommandMessage, out.Command)
	assert.Equal(t, "/topic/room/1", out.Destination)

	var message dto.BroadcastMessage
	require.NoError(t, json.Unmarshal(out.Body, &message))
	assert.Equal(t, "hello", message.Content)
	assert.Equal(t, "Aditya", message.SenderName)
	assert.Empty(t, sender.sub.C)

	require.NoError(t, g.route(ctx, listener, frame(t, dto.CommandUnsubscribe, "/topic/room/1", nil)))
	assert.Zero(t, g.hub.Subscribers("/topic/room/1"))
}

func TestPrivateMessageReachesBothSessions(t *testing.T) {
	g := newGateway(t)
	ctx := context.Background()
	aditya := g.newSession()
	megha := g.newSession()

	require.NoError(t, g.route(ctx, aditya, frame(t, dto.CommandSubscribe, pubsub.PrivateTopic(1), nil)))
	require.NoError(t, g.route(ctx, megha, frame(t, dto.CommandSubscribe, pubsub.PrivateTopic(2), nil)))

	err := g.route(ctx, aditya, frame(t, dto.CommandSend, "/app/chat.sendPrivateMessage",
		req.PrivateMessageRequest{SenderID: 1, RecipientID: 2, Content: "psst"}))
	require.NoError(t, err)

	assert.Len(t, aditya.sub.C, 1)
	assert.Len(t, megha.sub.C, 1)
}

func TestRejectedFrames(t *testing.T) {
	g := newGateway(t)
	ctx := context.Background()
	s := g.newSession()

	assert.Error(t, g.route(ctx, s, frame(t, dto.CommandSubscribe, "/topic/lobby", nil)))
	assert.Error(t, g.route(ctx, s, frame(t, dto.CommandSubscribe, "/topic/room/abc", nil)))
	assert.Error(t, g.route(ctx, s, frame(t, "CONNECT", "", nil)))
	assert.Error(t, g.route(ctx, s, frame(t, dto.CommandSend, "/app/chat.unknown", nil)))
	assert.Error(t, g.route(ctx, s, frame(t, dto.CommandSend, "/app/chat.sendMessage/x", nil)))
	assert.ErrorIs(t, g.route(ctx, s, frame(t, dto.CommandSend, "/app/chat.sendPrivateMessage", nil)), errMissingBody)

	err := g.route(ctx, s, frame(t, dto.CommandSend, "/app/chat.sendMessage/404", req.RoomMessageRequest{SenderID: 1, Content: "?"}))
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	reply := errorFrame(err)
	assert.Equal(t, dto.CommandError, reply.Command)
	assert.Contains(t, reply.Message, "room 404 not found")
}

func TestAddUserAndCloseSession(t *testing.T) {
	g := newGateway(t)
	ctx := context.Background()
	s := g.newSession()

	err := g.route(ctx, s, frame(t, dto.CommandSend, "/app/chat.addUser", req.PresenceRequest{Username: "Rahul", Email: "rahul@gmail.com"}))
	require.NoError(t, err)
	assert.Equal(t, "Rahul", s.username)
	require.NoError(t, g.route(ctx, s, frame(t, dto.CommandSubscribe, "/topic/room/1", nil)))
	require.NoError(t, g.route(ctx, s, frame(t, dto.CommandSubscribe, pubsub.PrivateTopic(3), nil)))

	all, err := g.users.GetAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "ONLINE", all[2].Status)

	g.closeSession(ctx, s)

	assert.Zero(t, g.hub.Subscribers("/topic/room/1"))
	assert.Zero(t, g.hub.Subscribers(pubsub.PrivateTopic(3)))
	rahul, err := g.users.GetUserByID(ctx, all[2].ID)
	require.NoError(t, err)
	assert.Equal(t, "OFFLINE", rahul.Status)
}

func TestAnonymousSessionCloseLeavesUsersOnline(t *testing.T) {
	g := newGateway(t)
	ctx := context.Background()
	_, err := g.users.Login(ctx, &req.LoginRequest{Email: "aditya@gmail.com", Password: "aaa"})
	require.NoError(t, err)

	s := g.newSession()
	require.NoError(t, g.route(ctx, s, frame(t, dto.CommandSubscribe, "/topic/room/1", nil)))
	g.closeSession(ctx, s)

	aditya, err := g.users.GetUserByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "ONLINE", aditya.Status)
	assert.Zero(t, g.hub.Subscribers("/topic/room/1"))
}
