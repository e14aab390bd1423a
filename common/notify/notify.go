package notify

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/craftline/catalog-admin/common/logger"
	rediscommon "github.com/craftline/catalog-admin/common/redis"
)

// Channel is the Redis pub/sub channel the admin UI subscribes to
const Channel = "catalog.notifications"

// Notification is a non-fatal, user-facing outcome message
type Notification struct {
	Level      string    `json:"level"` // "success" or "error"
	Collection string    `json:"collection,omitempty"`
	Message    string    `json:"message"`
	At         time.Time `json:"at"`
}

// Notifier surfaces outcome notifications to the user
type Notifier interface {
	Success(ctx context.Context, collection, message string)
	Failure(ctx context.Context, collection, message string)
}

// RedisNotifier publishes notifications on a Redis channel. Publishing is
// best effort: a dropped notification is logged, never escalated.
type RedisNotifier struct {
	client *rediscommon.Client
	log    *logger.Logger
}

// NewRedisNotifier creates a Redis-backed notifier
func NewRedisNotifier(client *rediscommon.Client, log *logger.Logger) *RedisNotifier {
	return &RedisNotifier{
		client: client,
		log:    log,
	}
}

// Success publishes a success notification
func (n *RedisNotifier) Success(ctx context.Context, collection, message string) {
	n.publish(ctx, Notification{
		Level:      "success",
		Collection: collection,
		Message:    message,
		At:         time.Now(),
	})
}

// Failure publishes an error notification
func (n *RedisNotifier) Failure(ctx context.Context, collection, message string) {
	n.publish(ctx, Notification{
		Level:      "error",
		Collection: collection,
		Message:    message,
		At:         time.Now(),
	})
}

func (n *RedisNotifier) publish(ctx context.Context, notification Notification) {
	payload, err := json.Marshal(notification)
	if err != nil {
		n.log.Error("failed to marshal notification", "error", err)
		return
	}

	if err := n.client.PublishEvent(ctx, Channel, string(payload)); err != nil {
		n.log.Warn("failed to publish notification",
			"collection", notification.Collection,
			"level", notification.Level,
			"error", err,
		)
	}
}

// MemoryNotifier records notifications in memory, for tests
type MemoryNotifier struct {
	mu            sync.Mutex
	Notifications []Notification
}

// NewMemoryNotifier creates an in-memory notifier
func NewMemoryNotifier() *MemoryNotifier {
	return &MemoryNotifier{}
}

// Success records a success notification
func (n *MemoryNotifier) Success(ctx context.Context, collection, message string) {
	n.record(Notification{Level: "success", Collection: collection, Message: message, At: time.Now()})
}

// Failure records an error notification
func (n *MemoryNotifier) Failure(ctx context.Context, collection, message string) {
	n.record(Notification{Level: "error", Collection: collection, Message: message, At: time.Now()})
}

func (n *MemoryNotifier) record(notification Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Notifications = append(n.Notifications, notification)
}

// All returns a copy of recorded notifications
func (n *MemoryNotifier) All() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notification(nil), n.Notifications...)
}
