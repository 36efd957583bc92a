package notifier

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"
)

// Relay subscribes to the reservations channel and forwards every message
// into the websocket hub. Blocks until the context is canceled; run it in
// its own goroutine.
func Relay(ctx context.Context, client *redis.Client) {
	pubsub := client.Subscribe(ctx, ChannelReservations)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var m Message
			if err := json.Unmarshal([]byte(msg.Payload), &m); err != nil {
				log.Printf("notifier: dropping malformed message on %s: %v", msg.Channel, err)
				continue
			}
			BroadcastMessage(m)
		}
	}
}
