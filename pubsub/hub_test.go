package pubsub

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-chat-app/config/logger"
)

func newTestHub() *Hub {
	return NewHub(logger.NewNopLogger())
}

func TestHubPublishReachesEverySubscriberOfTopic(t *testing.T) {
	hub := newTestHub()
	first := NewSubscription(4)
	second := NewSubscription(4)
	other := NewSubscription(4)

	hub.Subscribe(RoomTopic(1), first)
	hub.Subscribe(RoomTopic(1), second)
	hub.Subscribe(RoomTopic(2), other)

	require.NoError(t, hub.Publish(context.Background(), RoomTopic(1), map[string]string{"content": "hi"}))

	for _, sub := range []*Subscription{first, second} {
		require.Len(t, sub.C, 1)
		envelope := <-sub.C
		assert.Equal(t, "/topic/room/1", envelope.Topic)
		assert.JSONEq(t, `{"content":"hi"}`, string(envelope.Payload))
	}
	assert.Len(t, other.C, 0)
}

func TestHubUnsubscribe(t *testing.T) {
	hub := newTestHub()
	sub := NewSubscription(4)
	hub.Subscribe(RoomTopic(1), sub)
	hub.Subscribe(PrivateTopic(7), sub)
	assert.Equal(t, 1, hub.Subscribers(RoomTopic(1)))

	hub.Unsubscribe(RoomTopic(1), sub)
	assert.Equal(t, 0, hub.Subscribers(RoomTopic(1)))
	assert.Equal(t, 1, hub.Subscribers(PrivateTopic(7)))

	hub.UnsubscribeAll(sub)
	assert.Equal(t, 0, hub.Subscribers(PrivateTopic(7)))
	assert.Equal(t, 0, hub.Dispatch(PrivateTopic(7), []byte(`{}`)))
}

func TestHubDispatchDropsWhenBufferFull(t *testing.T) {
	hub := newTestHub()
	sub := NewSubscription(1)
	hub.Subscribe(PrivateTopic(3), sub)

	assert.Equal(t, 1, hub.Dispatch(PrivateTopic(3), []byte(`1`)))
	assert.Equal(t, 0, hub.Dispatch(PrivateTopic(3), []byte(`2`)))

	envelope := <-sub.C
	assert.Equal(t, json.RawMessage(`1`), envelope.Payload)
}

func TestHubPublishWithoutSubscribers(t *testing.T) {
	hub := newTestHub()
	assert.NoError(t, hub.Publish(context.Background(), RoomTopic(9), "nobody"))
}

func TestTopics(t *testing.T) {
	assert.Equal(t, "/topic/room/12", RoomTopic(12))
	assert.Equal(t, "/topic/private/5", PrivateTopic(5))

	assert.NoError(t, ValidTopic("/topic/room/12"))
	assert.NoError(t, ValidTopic("/topic/private/5"))
	assert.Error(t, ValidTopic("/topic/room/abc"))
	assert.Error(t, ValidTopic("/queue/other"))

	subj := subject("campus-chat", RoomTopic(4))
	assert.Equal(t, "campus-chat.topic.room.4", subj)
	assert.Equal(t, "/topic/room/4", topicFromSubject("campus-chat", subj))
}
