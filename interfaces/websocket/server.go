package websocket

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"strainbrain/application/ports"
	"strainbrain/domain/events"
)

// Server upgrades HTTP requests and bridges the domain event bus onto
// the hub so viewers see graph mutations as they happen.
type Server struct {
	hub      *Hub
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewServer creates a websocket server and subscribes the hub to the
// event bus. Call hub.Run before serving connections.
func NewServer(hub *Hub, eventBus ports.EventBus, logger *zap.Logger) *Server {
	s := &Server{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// Single-operator tool; viewers are trusted.
				return true
			},
		},
		logger: logger,
	}

	eventBus.Subscribe(func(event events.DomainEvent) {
		hub.Broadcast(event.GetEventType(), event)
	})

	return s
}

// ServeHTTP handles WebSocket upgrade requests
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("failed to upgrade connection",
			zap.Error(err),
			zap.String("remote_addr", r.RemoteAddr),
		)
		return
	}

	client := NewClient(s.hub, conn, s.logger)
	client.Start()
}
