// Package ws pushes pitch and vote events to connected browsers.
package ws

import (
	"context"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/sujalbistaa/swipe/internal/logger"
)

const broadcastBuffer = 256

// Message is the frame sent to clients.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
	Time    int64  `json:"time"`
}

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}

	mu    sync.RWMutex
	count int
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, broadcastBuffer),
		done:       make(chan struct{}),
	}
}

// Run owns the client set until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.setCount(len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.setCount(len(h.clients))
			}

		case msg := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- msg:
				default:
					// Slow consumer.
					delete(h.clients, client)
					close(client.send)
				}
			}
			h.setCount(len(h.clients))

		case <-ctx.Done():
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.setCount(0)
			logger.Info("WebSocket hub shutting down")
			return
		}
	}
}

func (h *Hub) setCount(n int) {
	h.mu.Lock()
	h.count = n
	h.mu.Unlock()
}

// ClientCount reports the number of registered clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}

// Publish queues an event for every client. It drops the event when the
// queue is full rather than block the caller.
func (h *Hub) Publish(event string, payload any) {
	frame, err := json.Marshal(Message{Type: event, Payload: payload, Time: time.Now().Unix()})
	if err != nil {
		logger.Errorf("Error marshalling WS message: %v", err)
		return
	}
	select {
	case h.broadcast <- frame:
	default:
		logger.Warningf("WS broadcast queue full, dropping %s event", event)
	}
}
