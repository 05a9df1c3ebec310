package notify

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisSink publishes event envelopes to a Redis channel. Publish failures
// are logged and dropped; the bus contract owes no retries.
type RedisSink struct {
	client  *redis.Client
	channel string
}

func NewRedisSink(addr, channel string) *RedisSink {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	return &RedisSink{
		client:  rdb,
		channel: channel,
	}
}

// Ping checks if the Redis connection is alive.
func (s *RedisSink) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisSink) Close() error {
	return s.client.Close()
}

func (s *RedisSink) Emit(eventName string, payload any) {
	ev := newEvent(eventName, payload)
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[notify] %s: marshal failed: %v", eventName, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.client.Publish(ctx, s.channel, data).Err(); err != nil {
		log.Printf("[notify] %s: publish failed: %v", eventName, err)
	}
}
