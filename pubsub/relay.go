package pubsub

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/nats-io/nats.go"
)

// NatsRelay publishes through NATS and feeds every message received on the
// prefix wildcard back into the local hub.
type NatsRelay struct {
	*Hub
	conn   *nats.Conn
	sub    *nats.Subscription
	prefix string
}

func NewNatsRelay(hub *Hub, conn *nats.Conn, prefix string) (*NatsRelay, error) {
	relay := &NatsRelay{Hub: hub, conn: conn, prefix: prefix}
	sub, err := conn.Subscribe(prefix+".>", func(msg *nats.Msg) {
		topic := topicFromSubject(prefix, msg.Subject)
		delivered := hub.Dispatch(topic, msg.Data)
		hub.Log.WS.Trace.Trace().Str("topic", topic).Int("delivered", delivered).Msg("Relayed from NATS")
	})
	if err != nil {
		return nil, err
	}
	relay.sub = sub
	return relay, nil
}

func (r *NatsRelay) Publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return r.conn.Publish(subject(r.prefix, topic), data)
}

func (r *NatsRelay) Close() error {
	if err := r.sub.Unsubscribe(); err != nil {
		r.Hub.Log.WS.Warning.Warn().Err(err).Msg("Failed to unsubscribe NATS relay")
	}
	r.conn.Close()
	return r.Hub.Close()
}

// RedisRelay does the same over Redis pub/sub channels named
// "<prefix>:<topic>".
type RedisRelay struct {
	*Hub
	client *redis.Client
	pubsub *redis.PubSub
	prefix string
	done   chan struct{}
}

func NewRedisRelay(ctx context.Context, hub *Hub, client *redis.Client, prefix string) (*RedisRelay, error) {
	ps := client.PSubscribe(ctx, prefix+":*")
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, err
	}
	relay := &RedisRelay{Hub: hub, client: client, pubsub: ps, prefix: prefix, done: make(chan struct{})}
	go relay.run()
	return relay, nil
}

func (r *RedisRelay) run() {
	defer close(r.done)
	for msg := range r.pubsub.Channel() {
		topic := strings.TrimPrefix(msg.Channel, r.prefix+":")
		delivered := r.Hub.Dispatch(topic, []byte(msg.Payload))
		r.Hub.Log.WS.Trace.Trace().Str("topic", topic).Int("delivered", delivered).Msg("Relayed from Redis")
	}
}

func (r *RedisRelay) Publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return r.client.Publish(ctx, r.prefix+":"+topic, data).Err()
}

func (r *RedisRelay) Close() error {
	err := r.pubsub.Close()
	<-r.done
	if cerr := r.client.Close(); err == nil {
		err = cerr
	}
	_ = r.Hub.Close()
	return err
}
