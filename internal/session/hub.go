package session

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

const authChannel = "auth:state"

const (
	EventSignedIn  = "SIGNED_IN"
	EventSignedOut = "SIGNED_OUT"
)

// Event is one auth-state change pushed by the backend. A nil Session
// resolves to unauthenticated regardless of Kind.
type Event struct {
	Kind    string   `json:"event"`
	Session *Session `json:"session,omitempty"`
}

// Hub forwards the backend's auth-state change stream to local listeners.
// With redis configured, events travel through pub/sub so every process
// observes the same stream; without it, delivery is in-process only. Events
// published before a listener attaches are not replayed.
type Hub struct {
	redis *redis.Client
	mu    sync.RWMutex
	subs  map[*Listener]struct{}
}

type Listener struct {
	C chan Event
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		redis: redisClient,
		subs:  map[*Listener]struct{}{},
	}

	if redisClient != nil {
		go h.subscribeRedis()
	}
	return h
}

func (h *Hub) Subscribe() *Listener {
	l := &Listener{C: make(chan Event, 16)}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs[l] = struct{}{}
	return l
}

func (h *Hub) Unsubscribe(l *Listener) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subs[l]; ok {
		delete(h.subs, l)
		close(l.C)
	}
}

// Publish pushes evt onto the change stream. With redis, delivery to local
// listeners happens through the subscription so there is a single stream;
// without it, the hub fans out directly.
func (h *Hub) Publish(ctx context.Context, evt Event) {
	if h.redis == nil {
		h.deliver(evt)
		return
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		log.Printf("auth hub: marshal event: %v", err)
		return
	}
	if err := h.redis.Publish(ctx, authChannel, payload).Err(); err != nil {
		log.Printf("auth hub: publish: %v", err)
	}
}

func (h *Hub) deliver(evt Event) {
	// sends stay under the read lock so Unsubscribe cannot close a channel
	// mid-send
	h.mu.RLock()
	defer h.mu.RUnlock()
	for l := range h.subs {
		select {
		case l.C <- evt:
		default:
			log.Printf("auth hub: listener not draining, event dropped")
		}
	}
}

func (h *Hub) subscribeRedis() {
	pubsub := h.redis.Subscribe(context.Background(), authChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var evt Event
		if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
			log.Printf("auth hub: decode event: %v", err)
			continue
		}
		h.deliver(evt)
	}
}
