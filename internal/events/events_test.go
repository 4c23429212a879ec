package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"jobmate/jobboard-service/internal/db"
	"jobmate/jobboard-service/internal/events"
)

func TestRecorder(t *testing.T) {
	ctx := context.Background()
	r := &events.Recorder{}
	r.Publish(ctx, events.JobPosted, map[string]any{"jobId": "j1"})
	r.Publish(ctx, events.MessageSent, map[string]any{"messageId": "m1"})
	r.Publish(ctx, events.JobPosted, map[string]any{"jobId": "j2"})

	if n := len(r.Events()); n != 3 {
		t.Errorf("Events len = %d, want 3", n)
	}
	posted := r.On(events.JobPosted)
	if len(posted) != 2 || posted[1].Payload["jobId"] != "j2" {
		t.Errorf("On(JobPosted) = %+v", posted)
	}

	r.Err = errors.New("down")
	if err := r.Publish(ctx, events.JobPosted, nil); err == nil {
		t.Error("Publish should return the configured error")
	}
}

func TestNop(t *testing.T) {
	if err := (events.Nop{}).Publish(context.Background(), events.JobPosted, nil); err != nil {
		t.Errorf("Nop.Publish = %v", err)
	}
}

func TestRedisPublisher(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set, skipping integration test")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rdb, err := db.NewRedisClient(ctx, url)
	if err != nil {
		t.Fatalf("NewRedisClient: %v", err)
	}
	defer rdb.Close()

	sub := rdb.Subscribe(ctx, events.JobPosted)
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if err := events.NewRedisPublisher(rdb).Publish(ctx, events.JobPosted, map[string]any{"jobId": "j1"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	msg, err := sub.ReceiveMessage(ctx)
	if err != nil {
		t.Fatalf("ReceiveMessage: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal([]byte(msg.Payload), &got); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if got["type"] != events.JobPosted || got["jobId"] != "j1" {
		t.Errorf("payload = %v", got)
	}
}

func TestEmit_SwallowsFailure(t *testing.T) {
	r := &events.Recorder{Err: errors.New("redis down")}
	events.Emit(context.Background(), r, events.JobPosted, map[string]any{"jobId": "j1"})
	events.Emit(context.Background(), nil, events.JobPosted, nil)

	ok := &events.Recorder{}
	events.Emit(context.Background(), ok, events.JobPosted, map[string]any{"jobId": "j1"})
	if len(ok.On(events.JobPosted)) != 1 {
		t.Error("Emit did not publish")
	}
}
