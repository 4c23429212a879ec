// Package events publishes fire-and-forget domain events. Publication never
// affects the outcome of the operation that triggered it.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Channel names, one per event type.
const (
	JobPosted                = "EVENT_JOB_POSTED"
	ApplicationSubmitted     = "EVENT_APPLICATION_SUBMITTED"
	ApplicationStatusChanged = "EVENT_APPLICATION_STATUS_CHANGED"
	MessageSent              = "EVENT_MESSAGE_SENT"
	AlertDigest              = "EVENT_ALERT_DIGEST"
)

// Publisher delivers an event payload on a channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload map[string]any) error
}

// Emit publishes on pub and logs a failure instead of returning it. A nil
// pub drops the event.
func Emit(ctx context.Context, pub Publisher, channel string, payload map[string]any) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, channel, payload); err != nil {
		slog.Warn("publish event failed", "channel", channel, "err", err)
	}
}

// encode stamps the payload with its type and time and serializes it.
func encode(channel string, payload map[string]any) ([]byte, error) {
	msg := make(map[string]any, len(payload)+2)
	for k, v := range payload {
		msg[k] = v
	}
	msg["type"] = channel
	msg["at"] = time.Now().UTC().Format(time.RFC3339)
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", channel, err)
	}
	return data, nil
}

// ─── Redis ───────────────────────────────────────────────────────────────────

// RedisPublisher publishes JSON events over Redis pub/sub.
type RedisPublisher struct {
	rdb *redis.Client
}

func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

func (p *RedisPublisher) Publish(ctx context.Context, channel string, payload map[string]any) error {
	data, err := encode(channel, payload)
	if err != nil {
		return err
	}
	if err := p.rdb.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", channel, err)
	}
	return nil
}

// ─── No-op ───────────────────────────────────────────────────────────────────

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, string, map[string]any) error { return nil }

// ─── Recorder ────────────────────────────────────────────────────────────────

// Event is one publication captured by a Recorder.
type Event struct {
	Channel string
	Payload map[string]any
}

// Recorder keeps published events in memory. Useful in tests and for
// in-process consumers.
type Recorder struct {
	mu     sync.Mutex
	events []Event
	Err    error // returned from every Publish when set
}

func (r *Recorder) Publish(_ context.Context, channel string, payload map[string]any) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Channel: channel, Payload: payload})
	return nil
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// On returns the recorded events for channel.
func (r *Recorder) On(channel string) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Channel == channel {
			out = append(out, e)
		}
	}
	return out
}
