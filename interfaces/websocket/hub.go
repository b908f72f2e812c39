// Package websocket mirrors domain events to connected graph viewers.
package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Envelope is the wire shape for one pushed event.
type Envelope struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

// Hub maintains the set of active viewer connections and broadcasts
// every domain event to all of them. Viewers are anonymous; there is no
// per-user routing.
type Hub struct {
	clients map[*Client]bool
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client
	broadcast  chan Envelope

	ctx    context.Context
	cancel context.CancelFunc
	logger *zap.Logger
}

// NewHub creates a new broadcast hub
func NewHub(logger *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 16),
		unregister: make(chan *Client, 16),
		broadcast:  make(chan Envelope, 256),
		ctx:        ctx,
		cancel:     cancel,
		logger:     logger,
	}
}

// Run starts the hub's main event loop
func (h *Hub) Run() {
	for {
		select {
		case <-h.ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Info("viewer connected", zap.Int("viewers", h.ClientCount()))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			h.logger.Info("viewer disconnected", zap.Int("viewers", h.ClientCount()))

		case envelope := <-h.broadcast:
			h.fanOut(envelope)
		}
	}
}

// Stop shuts the hub down and closes every connection.
func (h *Hub) Stop() {
	h.cancel()
}

// Broadcast queues an event for delivery to every connected viewer. A
// full queue drops the event rather than blocking the publisher.
func (h *Hub) Broadcast(eventType string, data interface{}) {
	raw, err := json.Marshal(data)
	if err != nil {
		h.logger.Warn("event not serializable, dropped", zap.String("type", eventType), zap.Error(err))
		return
	}

	envelope := Envelope{
		Type:      eventType,
		Data:      raw,
		Timestamp: time.Now().Unix(),
	}

	select {
	case h.broadcast <- envelope:
	default:
		h.logger.Warn("broadcast queue full, event dropped", zap.String("type", eventType))
	}
}

// ClientCount returns the number of connected viewers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) fanOut(envelope Envelope) {
	payload, err := json.Marshal(envelope)
	if err != nil {
		h.logger.Error("failed to marshal envelope", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
			// Slow consumer; it will be dropped on its next pump error.
			h.logger.Warn("viewer send buffer full, event dropped")
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
}
