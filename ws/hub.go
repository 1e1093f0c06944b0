package ws

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "ws").Logger()

// Hub maintains the set of connected clients and routes outbound events to
// three audiences: a single user, all admins, or every connected client.
// Delivery is best-effort: clients that are not connected when an event fires
// simply miss it.
type Hub struct {
	clients map[*Client]bool

	Register   chan *Client
	Unregister chan *Client
	broadcast  chan []byte

	// userClients indexes connections by user id for targeted delivery.
	userClients map[uint][]*Client

	mu sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients:     make(map[*Client]bool),
		Register:    make(chan *Client),
		Unregister:  make(chan *Client),
		broadcast:   make(chan []byte, 64),
		userClients: make(map[uint][]*Client),
	}
}

// Run processes register/unregister/broadcast traffic. Start it once in main.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			h.userClients[client.UserID] = append(h.userClients[client.UserID], client)
			h.mu.Unlock()
			logger.Info().Uint("user_id", client.UserID).Bool("admin", client.IsAdmin).Msg("client connected")

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.dropUserClient(client)
			}
			h.mu.Unlock()
			logger.Info().Uint("user_id", client.UserID).Msg("client disconnected")

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				h.trySend(client, message)
			}
			h.mu.Unlock()
		}
	}
}

// dropUserClient removes one connection from the per-user index. Callers hold h.mu.
func (h *Hub) dropUserClient(client *Client) {
	conns := h.userClients[client.UserID]
	for i, conn := range conns {
		if conn == client {
			h.userClients[client.UserID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(h.userClients[client.UserID]) == 0 {
		delete(h.userClients, client.UserID)
	}
}

// trySend delivers without blocking; a client that cannot keep up is dropped.
// Callers hold h.mu.
func (h *Hub) trySend(client *Client, message []byte) {
	select {
	case client.Send <- message:
	default:
		close(client.Send)
		delete(h.clients, client)
		h.dropUserClient(client)
	}
}

// Broadcast queues a message for every connected client.
func (h *Hub) Broadcast(message []byte) {
	h.broadcast <- message
}

// SendToUser delivers to every connection the given user currently holds.
func (h *Hub) SendToUser(userID uint, message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, client := range h.userClients[userID] {
		h.trySend(client, message)
	}
}

// SendToAdmins delivers to every connected admin client.
func (h *Hub) SendToAdmins(message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		if client.IsAdmin {
			h.trySend(client, message)
		}
	}
}
