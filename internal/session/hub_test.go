package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestHubLocalDelivery(t *testing.T) {
	hub := NewHub(nil)
	l := hub.Subscribe()
	defer hub.Unsubscribe(l)

	hub.Publish(context.Background(), Event{Kind: EventSignedIn, Session: liveSession("user-1")})

	select {
	case evt := <-l.C:
		if evt.Kind != EventSignedIn || evt.Session == nil || evt.Session.UserID != "user-1" {
			t.Fatalf("unexpected event %+v", evt)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatalf("timeout waiting for event")
	}
}

func TestHubUnsubscribeCloses(t *testing.T) {
	hub := NewHub(nil)
	l := hub.Subscribe()
	hub.Unsubscribe(l)
	if _, ok := <-l.C; ok {
		t.Fatalf("expected channel closed")
	}
	hub.Unsubscribe(l) // idempotent
}

func TestHubRedisRoundTrip(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()

	hub := NewHub(client)
	l := hub.Subscribe()
	defer hub.Unsubscribe(l)

	// give the pub/sub subscription a moment to attach
	time.Sleep(20 * time.Millisecond)

	sess := liveSession("user-redis")
	hub.Publish(context.Background(), Event{Kind: EventSignedIn, Session: sess})

	select {
	case evt := <-l.C:
		if evt.Session == nil || evt.Session.UserID != "user-redis" || evt.Session.Email != sess.Email {
			t.Fatalf("event did not survive the round trip: %+v", evt)
		}
	case <-time.After(time.Second):
		t.Fatalf("timeout waiting for redis-delivered event")
	}

	hub.Publish(context.Background(), Event{Kind: EventSignedOut})
	select {
	case evt := <-l.C:
		if evt.Session != nil {
			t.Fatalf("signed-out event must carry no session: %+v", evt)
		}
	case <-time.After(time.Second):
		t.Fatalf("timeout waiting for signed-out event")
	}
}
