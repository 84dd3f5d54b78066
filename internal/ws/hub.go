package ws

import (
	"context"
	"encoding/json"
	"sync"

	"go-inventory-pos/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// Event is the payload pushed to subscribers after a stock-affecting commit.
type Event struct {
	Type    string      `json:"type"`
	Action  string      `json:"action"`
	Item    *ItemChange `json:"item,omitempty"`
	User    Actor       `json:"user"`
	Message string      `json:"message"`
}

type ItemChange struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name,omitempty"`
	Delta    int       `json:"delta"`
	Quantity int       `json:"quantity"`
}

type Actor struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte, 64),
	}
}

// Publish queues an event for every connected client without blocking.
// A nil hub, or a full queue, drops it.
func (h *Hub) Publish(event Event) {
	if h == nil {
		return
	}
	msg, err := json.Marshal(event)
	if err != nil {
		logger.LogError("ws", "Publish", "marshal event", event.Action, err)
		return
	}
	select {
	case h.Broadcast <- msg:
	default:
		logger.GetLogger().WithField("action", event.Action).Warn("ws broadcast queue full, event dropped")
	}
}

// ClientCount reports the connected subscribers.
func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.Clients)
}

// Run dispatches until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	log := logger.GetLogger()
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for conn := range h.Clients {
				conn.Close()
				delete(h.Clients, conn)
			}
			h.mutex.Unlock()
			return

		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			log.Info("New WS Client Connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}
