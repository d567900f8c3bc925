package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"workforce_chat_service/internal/chat/domain"
	"workforce_chat_service/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// PubSub definition the broadcast bus carrying room events between sessions.
// Backed by Redis so a multi-instance deployment fans out across processes.
type PubSub interface {
	// Publish serializes the event onto a room channel.
	Publish(channel string, event domain.WSEvent) error
	// Subscribe delivers channel events to handler until ctx is cancelled.
	Subscribe(ctx context.Context, channel string, handler func(event domain.WSEvent)) error
}

// RedisPubSub definition redis pub/sub
type RedisPubSub struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisPubSub create RedisPubSub
func NewRedisPubSub(client *redis.Client) *RedisPubSub {
	return &RedisPubSub{
		client: client,
		ctx:    context.Background(),
	}
}

// Publish serializes the event and publishes it to channel.
func (r *RedisPubSub) Publish(channel string, event domain.WSEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return r.client.Publish(r.ctx, channel, data).Err()
}

// Subscribe subscribes to channel and feeds decoded events to handler until
// ctx is cancelled.
func (r *RedisPubSub) Subscribe(ctx context.Context, channel string, handler func(event domain.WSEvent)) error {
	sub := r.client.Subscribe(r.ctx, channel)
	go func() {
		ch := sub.Channel()

		for {
			select {
			case m, ok := <-ch:
				if !ok {
					return
				}

				var event domain.WSEvent
				if err := json.Unmarshal([]byte(m.Payload), &event); err != nil {
					logger.Log.Error("pubsub decode err", zap.String("channel", channel), zap.Error(err))
					continue
				}
				handler(event)
			case <-ctx.Done():
				logger.Log.Info(fmt.Sprintf("%s , sub close", channel))
				sub.Close()
				return
			}
		}
	}()
	return nil
}
