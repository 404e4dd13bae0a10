package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
)

type stubConfig struct {
	redisURL string
	queue    string
}

func (c stubConfig) GetRedisURL() string               { return c.redisURL }
func (c stubConfig) GetRedisTLSInsecure() bool         { return false }
func (c stubConfig) GetAsynqQueueName() string         { return c.queue }
func (c stubConfig) GetAsynqConcurrency() int          { return 1 }
func (c stubConfig) GetMonitorInterval() time.Duration { return time.Minute }

func TestEnqueueMonitorRun(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := stubConfig{redisURL: "redis://" + mr.Addr(), queue: "monitor"}

	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	itemID := "0b6f1f3e-8a9f-4f2e-9d58-2f4f9f0a1c22"
	if err := client.EnqueueMonitorRun(context.Background(), WishlistMonitorRunPayload{WishlistItemID: itemID}); err != nil {
		t.Fatalf("EnqueueMonitorRun: %v", err)
	}

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: mr.Addr()})
	defer inspector.Close()

	pending, err := inspector.ListPendingTasks("monitor")
	if err != nil {
		t.Fatalf("ListPendingTasks: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending task, got %d", len(pending))
	}
	if pending[0].Type != TaskWishlistMonitorRun {
		t.Fatalf("unexpected task type %q", pending[0].Type)
	}

	payload, err := ParseWishlistMonitorRunPayload(asynq.NewTask(pending[0].Type, pending[0].Payload))
	if err != nil {
		t.Fatalf("parse payload: %v", err)
	}
	if payload.WishlistItemID != itemID {
		t.Fatalf("payload item id mismatch: %q", payload.WishlistItemID)
	}
}

func TestNewClientRequiresRedisURL(t *testing.T) {
	if _, err := NewClient(stubConfig{}); err == nil {
		t.Fatal("expected error for missing redis url")
	}
}
