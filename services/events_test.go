package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/Caisio-Cloud/popmath-game/shared"
)

func newTestEventService(t *testing.T) (*EventService, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return &EventService{redisSvc: &RedisService{redis: client}}, client
}

func TestPublishDeliversGameEvent(t *testing.T) {
	svc, client := newTestEventService(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sub := client.Subscribe(ctx, "popmath:events")
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	svc.Publish("u1", shared.EventSpeak, "What is 2+2?")

	// publish runs on its own goroutine
	msg, err := sub.ReceiveMessage(ctx)
	if err != nil {
		t.Fatalf("receive: %v", err)
	}

	var event GameEvent
	if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if event.UserID != "u1" || event.Event != shared.EventSpeak || event.Text != "What is 2+2?" {
		t.Fatalf("unexpected event: %+v", event)
	}
	if event.Timestamp.IsZero() {
		t.Fatal("expected a timestamp")
	}
}

func TestPublishWithoutRedisIsANoOp(t *testing.T) {
	svc := &EventService{redisSvc: &RedisService{}}

	// must not panic or block
	svc.Publish("u1", shared.EventCorrect, "")

	disconnected := &EventService{}
	disconnected.Publish("u1", shared.EventCorrect, "")
}
