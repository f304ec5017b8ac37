package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-chat-app/apperror"
	"campus-chat-app/dto"
	"campus-chat-app/dto/req"
	"campus-chat-app/enum"
	"campus-chat-app/pubsub"
)

func receive(t *testing.T, sub *pubsub.Subscription) pubsub.Envelope {
	t.Helper()
	select {
	case envelope := <-sub.C:
		return envelope
	case <-time.After(time.Second):
		t.Fatal("no envelope delivered")
		return pubsub.Envelope{}
	}
}

func assertIdle(t *testing.T, sub *pubsub.Subscription) {
	t.Helper()
	select {
	case envelope := <-sub.C:
		t.Fatalf("unexpected envelope on %s", envelope.Topic)
	default:
	}
}

func decode(t *testing.T, envelope pubsub.Envelope) dto.BroadcastMessage {
	t.Helper()
	var message dto.BroadcastMessage
	require.NoError(t, json.Unmarshal(envelope.Payload, &message))
	return message
}

func TestSendRoomMessagePersistsAndPublishesOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "Aditya", "aditya@gmail.com", "aaa")
	room, err := env.groups.CreateGroup(ctx, &req.CreateGroupRequest{Name: "Study", CreatorID: a.ID})
	require.NoError(t, err)

	sub := pubsub.NewSubscription(4)
	env.hub.Subscribe(pubsub.RoomTopic(room.ID), sub)

	sent, err := env.messages.SendRoomMessage(ctx, room.ID, &req.RoomMessageRequest{SenderID: a.ID, Content: "hi"})
	require.NoError(t, err)
	require.NotNil(t, sent.RoomID)
	assert.Equal(t, room.ID, *sent.RoomID)
	assert.Nil(t, sent.RecipientID)
	assert.Equal(t, "Study", sent.RoomName)
	assert.Equal(t, "Aditya", sent.SenderName)
	assert.Equal(t, string(enum.MessageTypeChat), sent.Type)

	envelope := receive(t, sub)
	assert.Equal(t, fmt.Sprintf("/topic/room/%d", room.ID), envelope.Topic)
	assert.Equal(t, sent, decode(t, envelope))
	assertIdle(t, sub)

	history, err := env.messages.GetRoomMessages(ctx, room.ID, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, sent.MessageID, history[0].MessageID)
	assert.Equal(t, "hi", history[0].Content)
}

func TestSendRoomMessageUnknownRoomOrSender(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "Aditya", "aditya@gmail.com", "aaa")
	room, err := env.groups.CreateGroup(ctx, &req.CreateGroupRequest{Name: "Study", CreatorID: a.ID})
	require.NoError(t, err)

	sub := pubsub.NewSubscription(4)
	env.hub.Subscribe(pubsub.RoomTopic(room.ID), sub)

	_, err = env.messages.SendRoomMessage(ctx, 404, &req.RoomMessageRequest{SenderID: a.ID, Content: "hi"})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
	_, err = env.messages.SendRoomMessage(ctx, room.ID, &req.RoomMessageRequest{SenderID: 404, Content: "hi"})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	assertIdle(t, sub)
	history, err := env.messages.GetRoomMessages(ctx, room.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, history)

	_, err = env.messages.GetRoomMessages(ctx, 404, 0)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestSendPrivateMessageDeliversToBothParties(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "Aditya", "aditya@gmail.com", "aaa")
	b := env.register(t, "Megha", "megha@gmail.com", "mmm")

	toA := pubsub.NewSubscription(4)
	toB := pubsub.NewSubscription(4)
	env.hub.Subscribe(pubsub.PrivateTopic(a.ID), toA)
	env.hub.Subscribe(pubsub.PrivateTopic(b.ID), toB)

	sent, err := env.messages.SendPrivateMessage(ctx, &req.PrivateMessageRequest{
		SenderID:    a.ID,
		RecipientID: b.ID,
		Content:     "psst",
	})
	require.NoError(t, err)
	assert.Nil(t, sent.RoomID)
	require.NotNil(t, sent.RecipientID)
	assert.Equal(t, b.ID, *sent.RecipientID)
	assert.Equal(t, "Megha", sent.RecipientName)

	atB := receive(t, toB)
	atA := receive(t, toA)
	assert.Equal(t, pubsub.PrivateTopic(b.ID), atB.Topic)
	assert.Equal(t, pubsub.PrivateTopic(a.ID), atA.Topic)
	assert.JSONEq(t, string(atB.Payload), string(atA.Payload))
	assert.Equal(t, sent, decode(t, atB))
	assertIdle(t, toA)
	assertIdle(t, toB)

	fromA, err := env.messages.GetConversation(ctx, a.ID, b.ID, 10)
	require.NoError(t, err)
	fromB, err := env.messages.GetConversation(ctx, b.ID, a.ID, 10)
	require.NoError(t, err)
	require.Len(t, fromA, 1)
	assert.Equal(t, fromA, fromB)
}

func TestSendPrivateMessageUnknownRecipient(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "Aditya", "aditya@gmail.com", "aaa")

	toA := pubsub.NewSubscription(4)
	env.hub.Subscribe(pubsub.PrivateTopic(a.ID), toA)

	_, err := env.messages.SendPrivateMessage(ctx, &req.PrivateMessageRequest{SenderID: a.ID, RecipientID: 404, Content: "?"})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
	assertIdle(t, toA)

	_, err = env.messages.GetConversation(ctx, a.ID, 404, 10)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestConversationHistoryIsChronologicalAndLimited(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "Aditya", "aditya@gmail.com", "aaa")
	b := env.register(t, "Megha", "megha@gmail.com", "mmm")

	for _, content := range []string{"one", "two", "three"} {
		_, err := env.messages.SendPrivateMessage(ctx, &req.PrivateMessageRequest{SenderID: a.ID, RecipientID: b.ID, Content: content})
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	history, err := env.messages.GetConversation(ctx, b.ID, a.ID, 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "two", history[0].Content)
	assert.Equal(t, "three", history[1].Content)
}

func TestAnnouncePresence(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "Aditya", "aditya@gmail.com", "aaa")

	online, err := env.messages.AnnouncePresence(ctx, &req.PresenceRequest{Username: "Aditya"})
	require.NoError(t, err)
	assert.Equal(t, a.ID, online.ID)
	assert.Equal(t, string(enum.UserStatusOnline), online.Status)

	fresh, err := env.messages.AnnouncePresence(ctx, &req.PresenceRequest{Username: "Rahul", Email: "rahul@gmail.com", Password: "rrr"})
	require.NoError(t, err)
	assert.NotZero(t, fresh.ID)
	assert.Equal(t, string(enum.UserStatusOnline), fresh.Status)

	login, err := env.users.Login(ctx, &req.LoginRequest{Email: "rahul@gmail.com", Password: "rrr"})
	require.NoError(t, err)
	assert.Equal(t, fresh.ID, login.User.ID)

	all, err := env.users.GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultHistoryLimit, clampLimit(0))
	assert.Equal(t, DefaultHistoryLimit, clampLimit(-3))
	assert.Equal(t, 7, clampLimit(7))
	assert.Equal(t, MaxHistoryLimit, clampLimit(MaxHistoryLimit+1))
}
