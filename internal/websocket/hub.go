package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"seo-assistant-be/internal/model"
	"seo-assistant-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// redisChannel carries {target_user_id, message} envelopes between instances.
// A "*" target means broadcast.
const redisChannel = "cluster_events"

// Hub fans notifications out to connected websocket clients. With Redis
// configured, sends and broadcasts are relayed across instances via pub/sub.
type Hub struct {
	// userID -> connections, one entry per device
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	rdb    *redis.Client
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.UserID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
						// Sole close site for Send, so a drop followed by a
						// disconnect cannot close it twice.
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UserID]) == 0 {
					delete(h.clients, client.UserID)
					h.logger.Info("Hub", "Client fully unregistered", map[string]interface{}{"user_id": client.UserID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast sends a notification to every connected client on every instance.
func (h *Hub) Broadcast(notification model.Notification) {
	data := envelope(notification)

	h.mu.RLock()
	var targets []*Client
	for _, clients := range h.clients {
		targets = append(targets, clients...)
	}
	h.mu.RUnlock()

	h.deliver(targets, data)
	h.relay("*", data)
}

// Send delivers a notification to one user's connections, locally and via
// Redis for devices attached to other instances. Implements
// service.NotificationDelivery.
func (h *Hub) Send(userID uuid.UUID, notification model.Notification) {
	data := envelope(notification)

	h.mu.RLock()
	targets := append([]*Client(nil), h.clients[userID]...)
	h.mu.RUnlock()

	h.deliver(targets, data)
	h.relay(userID.String(), data)
}

// deliver pushes a frame to each client. A client with a full send buffer is
// disconnected; one slow reader must not stall everyone else's updates.
func (h *Hub) deliver(targets []*Client, data []byte) {
	for _, client := range targets {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"user_id": client.UserID})
			h.unregister <- client
		}
	}
}

// relay publishes the frame to the cross-instance channel.
func (h *Hub) relay(target string, data []byte) {
	if h.rdb == nil {
		return
	}

	payload, _ := json.Marshal(map[string]interface{}{
		"target_user_id": target,
		"message":        json.RawMessage(data),
	})
	if err := h.rdb.Publish(context.Background(), redisChannel, payload).Err(); err != nil {
		h.logger.Warn("Hub", "Redis relay failed", map[string]interface{}{"error": err.Error()})
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, redisChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			TargetUserID string          `json:"target_user_id"`
			Message      json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("Hub", "Redis message parse error", map[string]interface{}{"error": err.Error()})
			continue
		}

		if payload.TargetUserID == "*" {
			h.mu.RLock()
			var targets []*Client
			for _, clients := range h.clients {
				targets = append(targets, clients...)
			}
			h.mu.RUnlock()
			h.deliver(targets, payload.Message)
			continue
		}

		uid, err := uuid.Parse(payload.TargetUserID)
		if err != nil {
			continue
		}

		h.mu.RLock()
		targets := append([]*Client(nil), h.clients[uid]...)
		h.mu.RUnlock()
		h.deliver(targets, payload.Message)
	}
}

func envelope(notification model.Notification) []byte {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "notification",
		"data": notification,
	})
	return data
}
