package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-assistant-client/internal/domain/entities"
	"github.com/johnquangdev/meeting-assistant-client/internal/domain/ports"
	"github.com/johnquangdev/meeting-assistant-client/pkg/config"
)

// SessionUpdatedEvent is the pub/sub payload for a session change
type SessionUpdatedEvent struct {
	EventType string           `json:"event_type"`
	Timestamp time.Time        `json:"timestamp"`
	Session   entities.Session `json:"session"`
}

// RedisNotifier publishes session snapshots on a per-session channel
type RedisNotifier struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

var _ ports.Notifier = (*RedisNotifier)(nil)

// NewRedisClient connects to Redis and pings it
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// NewRedisNotifier wraps an existing client
func NewRedisNotifier(client *redis.Client, prefix string, logger *zap.Logger) *RedisNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisNotifier{
		client: client,
		prefix: prefix,
		logger: logger.With(zap.String("component", "session_notifier")),
	}
}

// Channel returns the channel a session's snapshots go to.
func (n *RedisNotifier) Channel(sessionID string) string {
	return SessionChannel(n.prefix, sessionID)
}

// SessionChannel builds "<prefix>:session:<id>".
func SessionChannel(prefix, sessionID string) string {
	if prefix == "" {
		return "session:" + sessionID
	}
	return prefix + ":session:" + sessionID
}

// Publish sends the snapshot as JSON
func (n *RedisNotifier) Publish(ctx context.Context, snapshot entities.Session) error {
	data, err := encodeSnapshot(snapshot, time.Now())
	if err != nil {
		return err
	}

	channel := n.Channel(snapshot.ID)
	if err := n.client.Publish(ctx, channel, data).Err(); err != nil {
		n.logger.Warn("⚠️ failed to publish session snapshot",
			zap.String("channel", channel),
			zap.Error(err),
		)
		return fmt.Errorf("failed to publish to %s: %w", channel, err)
	}

	n.logger.Debug("📣 session snapshot published",
		zap.String("channel", channel),
		zap.Int("payload_size", len(data)),
	)
	return nil
}

// Close closes the Redis connection
func (n *RedisNotifier) Close() error {
	return n.client.Close()
}

func encodeSnapshot(snapshot entities.Session, at time.Time) ([]byte, error) {
	data, err := json.Marshal(SessionUpdatedEvent{
		EventType: "session.updated",
		Timestamp: at.UTC(),
		Session:   snapshot,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session snapshot: %w", err)
	}
	return data, nil
}

// NopNotifier drops every snapshot. Used when Redis is disabled.
type NopNotifier struct{}

func (NopNotifier) Publish(context.Context, entities.Session) error { return nil }

func (NopNotifier) Close() error { return nil }
