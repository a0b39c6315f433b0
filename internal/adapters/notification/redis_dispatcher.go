package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/chasseuragace/code-sub001/internal/core/domain"
	portssvc "github.com/chasseuragace/code-sub001/internal/core/ports/services"
	"github.com/chasseuragace/code-sub001/internal/middleware"
	"github.com/redis/go-redis/v9"
)

// Publisher is the subset of *redis.Client the dispatcher needs.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisDispatcher publishes application events as JSON on a Redis pub/sub channel.
// Notification workers subscribe to the channel and fan out to candidates.
type RedisDispatcher struct {
	publisher Publisher
	channel   string
}

// NewRedisDispatcher creates a dispatcher publishing to channel.
func NewRedisDispatcher(publisher Publisher, channel string) *RedisDispatcher {
	return &RedisDispatcher{publisher: publisher, channel: channel}
}

var _ portssvc.NotificationDispatcher = (*RedisDispatcher)(nil)

// Dispatch publishes one event. Delivery is at most once.
func (d *RedisDispatcher) Dispatch(ctx context.Context, event domain.TransitionEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", event.Type, err)
	}

	receivers, err := d.publisher.Publish(ctx, d.channel, payload).Result()
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}

	middleware.GetLoggerFromCtx(ctx).Debug("Application event published",
		slog.String("channel", d.channel),
		slog.String("event_type", event.Type),
		slog.String("application_id", event.ApplicationID),
		slog.Int64("receivers", receivers))
	return nil
}

// NoopDispatcher drops events. It is used when no Redis URL is configured.
type NoopDispatcher struct{}

var _ portssvc.NotificationDispatcher = NoopDispatcher{}

func (NoopDispatcher) Dispatch(ctx context.Context, event domain.TransitionEvent) error {
	middleware.GetLoggerFromCtx(ctx).Debug("Notifications disabled, event dropped",
		slog.String("event_type", event.Type),
		slog.String("application_id", event.ApplicationID))
	return nil
}
