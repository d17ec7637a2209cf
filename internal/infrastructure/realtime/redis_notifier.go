package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/paintdesk/backend/internal/domain/shared"
	"github.com/paintdesk/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultChannelPrefix = "paintdesk.changes"

// ChangeMessage is the payload published for each domain event. Desktop
// and mobile clients subscribe to these channels to refresh their views
// without polling.
type ChangeMessage struct {
	EventID       string `json:"event_id"`
	EventType     string `json:"event_type"`
	AggregateID   string `json:"aggregate_id"`
	AggregateType string `json:"aggregate_type"`
	OccurredAt    int64  `json:"occurred_at"`
}

// RedisChangeNotifier relays domain events to Redis Pub/Sub. It is
// registered on the event bus as a wildcard handler and publishes each
// event to a per-aggregate channel, e.g. paintdesk.changes.invoice.
type RedisChangeNotifier struct {
	client        *redis.Client
	ownsClient    bool
	channelPrefix string
	logger        *zap.Logger
}

// RedisChangeNotifierOption is a functional option for configuring the notifier
type RedisChangeNotifierOption func(*RedisChangeNotifier)

// WithChannelPrefix sets the Pub/Sub channel prefix
func WithChannelPrefix(prefix string) RedisChangeNotifierOption {
	return func(n *RedisChangeNotifier) {
		n.channelPrefix = prefix
	}
}

// WithNotifierLogger sets the logger for the notifier
func WithNotifierLogger(logger *zap.Logger) RedisChangeNotifierOption {
	return func(n *RedisChangeNotifier) {
		n.logger = logger
	}
}

// NewRedisChangeNotifier creates a notifier with its own Redis client
func NewRedisChangeNotifier(cfg config.RedisConfig, opts ...RedisChangeNotifierOption) (*RedisChangeNotifier, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	notifier := &RedisChangeNotifier{
		client:        client,
		ownsClient:    true,
		channelPrefix: defaultChannelPrefix,
		logger:        zap.NewNop(),
	}

	for _, opt := range opts {
		opt(notifier)
	}

	return notifier, nil
}

// NewRedisChangeNotifierWithClient creates a notifier with an existing
// Redis client. The caller retains ownership of the client.
func NewRedisChangeNotifierWithClient(client *redis.Client, opts ...RedisChangeNotifierOption) *RedisChangeNotifier {
	notifier := &RedisChangeNotifier{
		client:        client,
		ownsClient:    false,
		channelPrefix: defaultChannelPrefix,
		logger:        zap.NewNop(),
	}

	for _, opt := range opts {
		opt(notifier)
	}

	return notifier
}

// Handle publishes the event to its aggregate's change channel
func (n *RedisChangeNotifier) Handle(ctx context.Context, event shared.DomainEvent) error {
	msg := ChangeMessage{
		EventID:       event.EventID().String(),
		EventType:     event.EventType(),
		AggregateID:   event.AggregateID().String(),
		AggregateType: event.AggregateType(),
		OccurredAt:    event.OccurredAt().UnixNano(),
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal change message: %w", err)
	}

	channel := fmt.Sprintf("%s.%s", n.channelPrefix, event.AggregateType())
	if err := n.client.Publish(ctx, channel, data).Err(); err != nil {
		n.logger.Error("failed to publish change message",
			zap.String("channel", channel),
			zap.Error(err))
		return fmt.Errorf("failed to publish change message: %w", err)
	}

	n.logger.Debug("published change message",
		zap.String("channel", channel),
		zap.String("event_type", msg.EventType))

	return nil
}

// EventTypes returns an empty slice so the notifier receives all events
func (n *RedisChangeNotifier) EventTypes() []string {
	return nil
}

// Close closes the Redis client if the notifier owns it
func (n *RedisChangeNotifier) Close() error {
	if n.ownsClient {
		return n.client.Close()
	}
	return nil
}

// Ensure RedisChangeNotifier implements EventHandler
var _ shared.EventHandler = (*RedisChangeNotifier)(nil)
