package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/stitchpoint/orderdesk/internal/sse"
)

const (
	// NotificationChannel is the redis pub/sub channel every instance
	// subscribes to.
	NotificationChannel = "notifications"

	// DefaultNotificationDuration is how long a toast stays active when
	// the sender does not say otherwise.
	DefaultNotificationDuration = 6000 * time.Millisecond

	// seenRetention bounds the duplicate-suppression window.
	seenRetention = 10 * time.Minute
)

// Notification is one toast. Duration is in milliseconds to match the
// payload the dashboard consumes.
type Notification struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Sound      string    `json:"sound,omitempty"`
	DurationMS int64     `json:"duration"`
	Timestamp  time.Time `json:"timestamp"`
}

func (n Notification) expiresAt() time.Time {
	return n.Timestamp.Add(time.Duration(n.DurationMS) * time.Millisecond)
}

// NotificationService keeps the active toast list and fans notifications out
// to every session: local SSE clients directly, other instances over redis.
// Delivery is best effort end to end.
type NotificationService struct {
	rdb    *redis.Client
	hub    *sse.Hub
	logger *zap.Logger

	mu     sync.Mutex
	active []Notification
	seen   map[string]time.Time
}

// NewNotificationService creates a notification service.
func NewNotificationService(rdb *redis.Client, hub *sse.Hub, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		rdb:    rdb,
		hub:    hub,
		logger: logger,
		seen:   make(map[string]time.Time),
	}
}

// Notify adds a notification locally and pushes it to connected SSE clients.
// Missing fields are defaulted. Returns the completed notification.
func (s *NotificationService) Notify(n Notification) Notification {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now()
	}
	if n.DurationMS <= 0 {
		n.DurationMS = DefaultNotificationDuration.Milliseconds()
	}
	s.deliver(n)
	return n
}

// Broadcast echoes the notification locally first, then publishes it on the
// shared channel so every other instance delivers it too.
func (s *NotificationService) Broadcast(ctx context.Context, n Notification) Notification {
	n = s.Notify(n)

	payload, err := json.Marshal(n)
	if err != nil {
		s.logger.Error("marshal notification", zap.Error(err))
		return n
	}
	if err := s.rdb.Publish(ctx, NotificationChannel, payload).Err(); err != nil {
		// Best effort: local sessions already saw the toast.
		s.logger.Warn("publish notification", zap.Error(err))
	}
	return n
}

// Subscribe consumes the shared channel until ctx is cancelled. Run it on a
// dedicated goroutine. The publishing instance receives its own messages
// back; duplicate-suppression keeps those from double-delivering.
func (s *NotificationService) Subscribe(ctx context.Context) {
	pubsub := s.rdb.Subscribe(ctx, NotificationChannel)
	defer pubsub.Close()

	s.logger.Info("notification subscriber started", zap.String("channel", NotificationChannel))

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-pubsub.Channel():
			if !ok {
				return
			}
			var n Notification
			if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil {
				s.logger.Warn("malformed notification payload", zap.Error(err))
				continue
			}
			s.deliver(n)
		}
	}
}

// Active returns the not-yet-expired notifications, newest first.
func (s *NotificationService) Active() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked(time.Now())

	out := make([]Notification, len(s.active))
	for i, n := range s.active {
		out[len(s.active)-1-i] = n
	}
	return out
}

// deliver appends to the active list and pushes to SSE clients, once per
// notification id.
func (s *NotificationService) deliver(n Notification) {
	s.mu.Lock()
	now := time.Now()
	s.purgeLocked(now)
	if _, dup := s.seen[n.ID]; dup {
		s.mu.Unlock()
		return
	}
	s.seen[n.ID] = now
	s.active = append(s.active, n)
	s.mu.Unlock()

	data, err := json.Marshal(n)
	if err != nil {
		s.logger.Error("marshal notification", zap.Error(err))
		return
	}
	s.hub.Broadcast(sse.Event{EventType: "notification", Data: string(data)})
}

// purgeLocked drops expired notifications and stale dedupe entries.
func (s *NotificationService) purgeLocked(now time.Time) {
	kept := s.active[:0]
	for _, n := range s.active {
		if n.expiresAt().After(now) {
			kept = append(kept, n)
		}
	}
	s.active = kept

	for id, at := range s.seen {
		if now.Sub(at) > seenRetention {
			delete(s.seen, id)
		}
	}
}
