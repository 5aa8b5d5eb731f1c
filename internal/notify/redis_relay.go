package notify

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisRelay broadcasts through a Redis pub/sub channel so every process
// subscribed to it delivers the message to its own Hub.
type RedisRelay struct {
	client  *redis.Client
	channel string
	hub     *Hub
	logger  *zap.Logger

	mu     sync.Mutex
	pubsub *redis.PubSub
	done   chan struct{}
}

// NewRedisRelay wires a relay for hub on channel.
func NewRedisRelay(client *redis.Client, channel string, hub *Hub, logger *zap.Logger) *RedisRelay {
	return &RedisRelay{client: client, channel: channel, hub: hub, logger: logger}
}

// Broadcast publishes msg to the channel.
func (r *RedisRelay) Broadcast(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return r.client.Publish(ctx, r.channel, payload).Err()
}

// Start subscribes and begins forwarding channel messages to the hub. The
// subscription is confirmed before Start returns.
func (r *RedisRelay) Start(ctx context.Context) error {
	pubsub := r.client.Subscribe(ctx, r.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return err
	}

	r.mu.Lock()
	r.pubsub = pubsub
	r.done = make(chan struct{})
	r.mu.Unlock()

	go r.pump(pubsub.Channel(), r.done)
	r.logger.Info("redis relay subscribed", zap.String("channel", r.channel))
	return nil
}

func (r *RedisRelay) pump(ch <-chan *redis.Message, done chan struct{}) {
	defer close(done)
	for m := range ch {
		var head struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal([]byte(m.Payload), &head); err != nil {
			r.logger.Warn("dropping malformed relay message", zap.Error(err))
			continue
		}
		r.hub.deliver(head.Type, []byte(m.Payload))
	}
}

// Stop closes the subscription and waits for the forwarder to exit.
func (r *RedisRelay) Stop() {
	r.mu.Lock()
	pubsub, done := r.pubsub, r.done
	r.pubsub = nil
	r.mu.Unlock()

	if pubsub == nil {
		return
	}
	_ = pubsub.Close()
	<-done
}
