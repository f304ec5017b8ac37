// Package pubsub routes published payloads to topic subscribers.
//
// A Hub is the in-process topic registry: topic key -> set of subscription
// channels. Relays (NATS, Redis) put an external broker in front of a Hub so
// several server instances share the same topics.
package pubsub

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"campus-chat-app/config/logger"
)

// Broker is what the gateway publishes through.
type Broker interface {
	Publish(ctx context.Context, topic string, payload any) error
	Subscribe(topic string, sub *Subscription)
	Unsubscribe(topic string, sub *Subscription)
	UnsubscribeAll(sub *Subscription)
	Close() error
}

// Envelope is what a subscriber receives.
type Envelope struct {
	Topic   string          `json:"topic"`
	Payload json.RawMessage `json:"payload"`
}

// Subscription is one subscriber channel. The same subscription may be
// attached to many topics.
type Subscription struct {
	ID string
	C  chan Envelope
}

func NewSubscription(buffer int) *Subscription {
	if buffer <= 0 {
		buffer = 1
	}
	return &Subscription{ID: uuid.NewString(), C: make(chan Envelope, buffer)}
}

type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[string]*Subscription
	Log    *logger.AppLogger
}

func NewHub(log *logger.AppLogger) *Hub {
	return &Hub{topics: make(map[string]map[string]*Subscription), Log: log}
}

func (h *Hub) Subscribe(topic string, sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.topics[topic] == nil {
		h.topics[topic] = make(map[string]*Subscription)
	}
	h.topics[topic][sub.ID] = sub
	h.Log.WS.Trace.Trace().Str("topic", topic).Str("subscription", sub.ID).
		Int("subscribers", len(h.topics[topic])).Msg("Subscribed")
}

func (h *Hub) Unsubscribe(topic string, sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remove(topic, sub.ID)
}

func (h *Hub) UnsubscribeAll(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for topic := range h.topics {
		h.remove(topic, sub.ID)
	}
}

func (h *Hub) remove(topic, id string) {
	if subs, ok := h.topics[topic]; ok {
		delete(subs, id)
		if len(subs) == 0 {
			delete(h.topics, topic)
		}
	}
}

// Subscribers reports how many subscriptions a topic has.
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

// Publish encodes payload once and hands it to every subscriber of topic.
func (h *Hub) Publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	h.Dispatch(topic, data)
	return nil
}

// Dispatch delivers already encoded data and returns the number of
// subscribers that took it. A subscriber whose buffer is full misses the
// envelope; publishing never blocks.
func (h *Hub) Dispatch(topic string, data []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for id, sub := range h.topics[topic] {
		select {
		case sub.C <- Envelope{Topic: topic, Payload: data}:
			delivered++
		default:
			h.Log.WS.Warning.Warn().Str("topic", topic).Str("subscription", id).Msg("Subscriber buffer full, dropping message")
		}
	}
	return delivered
}

func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.topics = make(map[string]map[string]*Subscription)
	return nil
}
