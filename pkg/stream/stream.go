// Package stream pushes late deferred settlements to hydrated pages over
// WebSocket. The embedded payload carries deferred markers for values the
// server had not settled at render time; the stream delivers each settlement
// as a frame keyed by route ID and field name so the client can resolve the
// matching pending handle.
package stream

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/lumina-dev/lumina/pkg/deferred"
	"github.com/lumina-dev/lumina/pkg/wire"
)

// Frame carries one settled value for one route field.
type Frame struct {
	RouteID string      `json:"routeId"`
	Field   string      `json:"field"`
	Value   *wire.Value `json:"value"`
}

// Server tracks connected pages and broadcasts settlement frames.
type Server struct {
	clients  map[*websocket.Conn]bool
	mu       sync.RWMutex
	upgrader websocket.Upgrader
	encoder  *wire.Encoder
	logger   *slog.Logger
}

// NewServer creates a settlement stream server using the given value encoder.
func NewServer(encoder *wire.Encoder, logger *slog.Logger) *Server {
	if encoder == nil {
		encoder = &wire.Encoder{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		encoder: encoder,
		logger:  logger,
	}
}

// HandleWebSocket handles WebSocket upgrade and connection.
func (s *Server) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}

	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	// Keep connection alive until client disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	conn.Close()
}

// Watch awaits a pending handle in the background and broadcasts its
// settlement to all connected pages. Cancellation of ctx abandons the watch
// without settling the handle.
func (s *Server) Watch(ctx context.Context, routeID, field string, d *deferred.Deferred) {
	go func() {
		d.Await(ctx)
		v, err, ok := d.Result()
		if !ok {
			return
		}

		// The handle is settled, so encoding cannot block.
		val, encErr := s.encoder.EncodeValue(context.Background(), deferredValue(v, err))
		if encErr != nil {
			s.logger.Error("settlement frame dropped",
				slog.String("route", routeID),
				slog.String("field", field),
				slog.Any("error", encErr))
			return
		}
		s.broadcast(Frame{RouteID: routeID, Field: field, Value: val})
	}()
}

// deferredValue re-wraps a settled result so the frame carries the deferred
// marker the client payload used for the same field.
func deferredValue(v any, err error) *deferred.Deferred {
	if err != nil {
		return deferred.Rejected(err)
	}
	return deferred.Resolved(v)
}

// broadcast sends a frame to all connected clients.
func (s *Server) broadcast(f Frame) {
	data, err := json.Marshal(f)
	if err != nil {
		return
	}

	s.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(s.clients))
	for client := range s.clients {
		clients = append(clients, client)
	}
	s.mu.RUnlock()

	for _, client := range clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			s.mu.Lock()
			delete(s.clients, client)
			s.mu.Unlock()
			client.Close()
		}
	}
}

// ClientCount returns the number of connected clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Close closes all client connections.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for client := range s.clients {
		client.Close()
		delete(s.clients, client)
	}
}
