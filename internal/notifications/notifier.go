// Package notifications publishes post lifecycle events over Redis pub/sub.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime/debug"

	"postboard/internal/middleware"
	"postboard/internal/models"

	"github.com/redis/go-redis/v9"
)

// PostEventsChannel is the Redis channel carrying post events.
const PostEventsChannel = "posts:events"

// Post event types.
const (
	EventPostCreated = "post.created"
	EventPostDeleted = "post.deleted"
)

// PostEvent is the JSON envelope published on PostEventsChannel.
type PostEvent struct {
	Type    string               `json:"type"`
	Payload models.PostPrimitive `json:"payload"`
}

// Notifier provides helpers to publish notifications into Redis channels
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
// A nil client turns every call into a no-op.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// Enabled reports whether the notifier has a Redis client.
func (n *Notifier) Enabled() bool {
	return n != nil && n.rdb != nil
}

// PublishPostEvent publishes a post event.
func (n *Notifier) PublishPostEvent(ctx context.Context, eventType string, post models.PostPrimitive) error {
	if !n.Enabled() {
		return nil
	}
	payload, err := json.Marshal(PostEvent{Type: eventType, Payload: post})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return n.rdb.Publish(ctx, PostEventsChannel, payload).Err()
}

// SubscribePostEvents subscribes to PostEventsChannel and calls onEvent for
// every decodable message until ctx is cancelled. It returns once the
// subscription is confirmed by the server.
func (n *Notifier) SubscribePostEvents(ctx context.Context, onEvent func(PostEvent)) error {
	if !n.Enabled() {
		return nil
	}

	sub := n.rdb.Subscribe(ctx, PostEventsChannel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("subscribe %s: %w", PostEventsChannel, err)
	}
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event PostEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					middleware.Logger.Warn("dropping malformed post event", slog.String("error", err.Error()))
					continue
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							middleware.Logger.Error("panic in post event subscriber",
								slog.Any("panic", r),
								slog.String("stack", string(debug.Stack())),
							)
						}
					}()
					onEvent(event)
				}()
			}
		}
	}()

	return nil
}
