// Package realtime pushes dashboard change notifications to connected
// browser clients over a sockjs endpoint, so the presentation layer can
// react without polling.
package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/igm/sockjs-go/sockjs"
	"go.uber.org/zap"

	"github.com/spec-kit/triage-dashboard/internal/events"
)

// Client is one connected dashboard session.
type Client struct {
	ID   string
	Send chan []byte
}

// Hub fans event envelopes out to every connected client.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	logger  *zap.Logger
}

// New creates an empty hub.
func New(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{clients: make(map[string]*Client), logger: logger}
}

// Register adds a client to the broadcast set.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ID] = client
}

// Unregister removes a client and closes its send channel.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client.ID]; !ok {
		return
	}
	delete(h.clients, client.ID)
	close(client.Send)
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends the payload to every client. Slow clients drop messages
// rather than stalling the broadcast.
func (h *Hub) Broadcast(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		select {
		case client.Send <- payload:
		default:
			h.logger.Debug("drop realtime message", zap.String("client_id", client.ID))
		}
	}
}

// RegisterEventBridge forwards every dashboard event to connected clients as
// a JSON envelope.
func (h *Hub) RegisterEventBridge(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	forward := func(ctx context.Context, event events.Event) error {
		payload, err := json.Marshal(event)
		if err != nil {
			h.logger.Warn("marshal realtime event", zap.Error(err))
			return nil
		}
		h.Broadcast(payload)
		return nil
	}
	for _, eventType := range events.Types() {
		dispatcher.Subscribe(eventType, forward)
	}
}

// HTTPHandler returns the sockjs handler serving the given URL prefix.
func (h *Hub) HTTPHandler(prefix string) http.Handler {
	return sockjs.NewHandler(prefix, sockjs.DefaultOptions, h.serveSession)
}

func (h *Hub) serveSession(session sockjs.Session) {
	client := &Client{ID: uuid.NewString(), Send: make(chan []byte, 16)}
	h.Register(client)
	defer h.Unregister(client)

	go func() {
		for msg := range client.Send {
			if err := session.Send(string(msg)); err != nil {
				return
			}
		}
	}()

	// Inbound traffic is ignored; the stream is push-only. The loop exists
	// to notice the session closing.
	for {
		if _, err := session.Recv(); err != nil {
			return
		}
	}
}
