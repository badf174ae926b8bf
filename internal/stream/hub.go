package stream

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	channelPrefix  = "mapty:"
	channelSuffix  = ":commands"
	channelPattern = channelPrefix + "*" + channelSuffix
)

// Hub fans render commands out to the websocket clients of a map session.
// With redis configured, commands also reach clients connected to other
// instances.
type Hub struct {
	origin  string
	redis   *redis.Client
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
	pubsub  *redis.PubSub
	done    chan struct{}
}

type Client struct {
	SessionID string
	Send      chan []byte
}

type envelope struct {
	Origin  string `json:"origin"`
	Payload []byte `json:"payload"`
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		origin:  uuid.NewString(),
		redis:   redisClient,
		clients: map[string]map[*Client]struct{}{},
	}

	if redisClient != nil {
		ctx := context.Background()
		pubsub := redisClient.PSubscribe(ctx, channelPattern)
		// Receive waits for the subscription to be confirmed.
		if _, err := pubsub.Receive(ctx); err != nil {
			log.Printf("redis subscribe error: %v", err)
			_ = pubsub.Close()
			return h
		}
		h.pubsub = pubsub
		h.done = make(chan struct{})
		go h.subscribeRedis()
	}
	return h
}

func (h *Hub) Register(sessionID string) *Client {
	client := &Client{
		SessionID: sessionID,
		Send:      make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[sessionID] == nil {
		h.clients[sessionID] = map[*Client]struct{}{}
	}
	h.clients[sessionID][client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if sessionClients, ok := h.clients[client.SessionID]; ok {
		if _, ok := sessionClients[client]; !ok {
			return
		}
		delete(sessionClients, client)
		if len(sessionClients) == 0 {
			delete(h.clients, client.SessionID)
		}
		close(client.Send)
	}
}

// CloseSession drops every local client of sessionID. Their send channels
// are closed after pending messages, so writers drain and hang up.
func (h *Hub) CloseSession(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients[sessionID] {
		close(client.Send)
	}
	delete(h.clients, sessionID)
}

// Clients reports how many websocket clients follow sessionID locally.
func (h *Hub) Clients(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}

// Broadcast delivers payload to local clients of sessionID and publishes it
// for other instances. Slow clients drop messages rather than block.
func (h *Hub) Broadcast(sessionID string, payload []byte) {
	h.deliver(sessionID, payload)

	if h.redis != nil {
		msg, err := json.Marshal(envelope{Origin: h.origin, Payload: payload})
		if err != nil {
			log.Printf("redis envelope error: %v", err)
			return
		}
		if err := h.redis.Publish(context.Background(), redisChannel(sessionID), msg).Err(); err != nil {
			log.Printf("redis publish error: %v", err)
		}
	}
}

func (h *Hub) deliver(sessionID string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[sessionID] {
		select {
		case client.Send <- payload:
		default:
		}
	}
}

// Close stops the redis subscription, if any.
func (h *Hub) Close() {
	if h.pubsub == nil {
		return
	}
	_ = h.pubsub.Close()
	<-h.done
}

func (h *Hub) subscribeRedis() {
	defer close(h.done)

	for msg := range h.pubsub.Channel() {
		var env envelope
		if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
			log.Printf("redis message dropped: %v", err)
			continue
		}
		// already delivered locally by Broadcast
		if env.Origin == h.origin {
			continue
		}
		h.deliver(sessionIDFromChannel(msg.Channel), env.Payload)
	}
}

func redisChannel(sessionID string) string {
	return channelPrefix + sessionID + channelSuffix
}

func sessionIDFromChannel(ch string) string {
	// mapty:{session}:commands
	if len(ch) <= len(channelPrefix)+len(channelSuffix) {
		return ""
	}
	return ch[len(channelPrefix) : len(ch)-len(channelSuffix)]
}
