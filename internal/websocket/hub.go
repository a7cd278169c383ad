package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"promo-insights-be/internal/model"
	"promo-insights-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const redisChannel = "dashboard_updates"

// Hub fans filter and navigation updates out to every connected dashboard.
// With Redis available it also relays updates across instances; without it
// the hub is purely local.
type Hub struct {
	clients map[*Client]bool

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Outbound broadcasts.
	broadcast chan []byte

	mu sync.RWMutex

	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		clients:    make(map[*Client]bool),
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
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Info("Hub", "Dashboard client registered", map[string]interface{}{"client_id": client.ID})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
			h.logger.Info("Hub", "Dashboard client unregistered", map[string]interface{}{"client_id": client.ID})

		case message := <-h.broadcast:
			h.deliver(message)
		}
	}
}

// Broadcast pushes an update to all local clients and, when Redis is wired,
// to every other instance as well.
func (h *Hub) Broadcast(msg model.UpdateMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("Hub", "Failed to marshal update", map[string]interface{}{"error": err.Error()})
		return
	}

	// With Redis, the local delivery happens through the subscription so the
	// message reaches every instance exactly once.
	if h.rdb != nil {
		if err := h.rdb.Publish(context.Background(), redisChannel, data).Err(); err == nil {
			return
		} else {
			h.logger.Warn("Hub", "Redis relay publish failed, delivering locally", map[string]interface{}{"error": err.Error()})
		}
	}

	h.broadcast <- data
}

func (h *Hub) deliver(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.Send <- message:
		default:
			// Slow consumer; drop the update rather than block the hub.
		}
	}
}

func (h *Hub) subscribeToRedis() {
	sub := h.rdb.Subscribe(context.Background(), redisChannel)
	defer sub.Close()

	for msg := range sub.Channel() {
		h.deliver([]byte(msg.Payload))
	}
}
