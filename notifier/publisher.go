package notifier

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// Channel and event names for reservation notifications.
const (
	ChannelReservations = "reservations"
	EventNewReservation = "new-reservation"
)

// Message is the wire format for both the redis channel and the websocket
// fan-out.
type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Publisher pushes an event to a named channel for real-time subscribers.
// Publishing is best-effort: callers must not roll back committed writes
// when it fails.
type Publisher interface {
	Publish(ctx context.Context, channel, event string, payload interface{}) error
}

// RedisPublisher publishes messages over redis pub/sub.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, channel, event string, payload interface{}) error {
	body, err := json.Marshal(Message{Event: event, Data: payload})
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, channel, body).Err()
}
