package config

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/nats-io/nats.go"

	"campus-chat-app/config/common"
	"campus-chat-app/config/logger"
	"campus-chat-app/pubsub"
)

// NewBroker builds the topic registry selected by BROKER_DRIVER. The relay
// drivers still deliver through a local hub.
func NewBroker(ctx context.Context, cfg *common.Config, log *logger.AppLogger) (pubsub.Broker, error) {
	hub := pubsub.NewHub(log)
	driver, prefix := cfg.GetBrokerConfig()

	switch driver {
	case "", "memory":
		log.WS.Info.Info().Msg("Using in-process broker")
		return hub, nil
	case "nats":
		url := cfg.GetNatsURL()
		conn, err := nats.Connect(url,
			nats.Name(cfg.GetAppConfig()),
			nats.MaxReconnects(-1),
			nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
				log.WS.Warning.Warn().Err(err).Msg("NATS disconnected")
			}),
			nats.ReconnectHandler(func(conn *nats.Conn) {
				log.WS.Info.Info().Str("url", conn.ConnectedUrl()).Msg("NATS reconnected")
			}),
		)
		if err != nil {
			return nil, fmt.Errorf("connect nats %s: %w", url, err)
		}
		relay, err := pubsub.NewNatsRelay(hub, conn, prefix)
		if err != nil {
			conn.Close()
			return nil, err
		}
		log.WS.Info.Info().Str("url", url).Str("prefix", prefix).Msg("Using NATS broker")
		return relay, nil
	case "redis":
		addr, password, db := cfg.GetRedisConfig()
		client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("connect redis %s: %w", addr, err)
		}
		relay, err := pubsub.NewRedisRelay(ctx, hub, client, prefix)
		if err != nil {
			_ = client.Close()
			return nil, err
		}
		log.WS.Info.Info().Str("addr", addr).Str("prefix", prefix).Msg("Using Redis broker")
		return relay, nil
	default:
		return nil, fmt.Errorf("unknown broker driver %q", driver)
	}
}
