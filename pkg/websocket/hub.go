package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// DefaultRoom is where clients land when they don't name a room.
const DefaultRoom = "deck"

// Hub fans deck events out to websocket clients grouped by room.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan Broadcast
	done       chan struct{}
	stopOnce   sync.Once

	rooms map[string]map[*Client]bool
}

type Broadcast struct {
	Room    string
	Type    string
	Payload any
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Broadcast, 256),
		done:       make(chan struct{}),
		rooms:      map[string]map[*Client]bool{},
	}
}

// Run processes hub traffic until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.closeAll()
			return
		case c := <-h.register:
			if c.Room == "" {
				c.Room = DefaultRoom
			}
			if h.rooms[c.Room] == nil {
				h.rooms[c.Room] = map[*Client]bool{}
			}
			h.rooms[c.Room][c] = true
		case c := <-h.unregister:
			h.removeClient(c)
		case b := <-h.broadcast:
			h.broadcastToRoom(b.Room, b.Type, b.Payload)
		}
	}
}

// Stop ends Run. Register, Unregister and Broadcast become no-ops afterwards.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		c.closeSend()
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Broadcast queues a message for every client in room. It never blocks the
// caller: when the queue is full the message is dropped.
func (h *Hub) Broadcast(room, typ string, payload any) {
	select {
	case <-h.done:
		return
	default:
	}
	select {
	case h.broadcast <- Broadcast{Room: room, Type: typ, Payload: payload}:
	default:
		log.Printf("ws broadcast queue full: room=%s type=%s", room, typ)
	}
}

func (h *Hub) removeClient(c *Client) {
	if c == nil {
		return
	}
	if clients := h.rooms[c.Room]; clients != nil {
		delete(clients, c)
		if len(clients) == 0 {
			delete(h.rooms, c.Room)
		}
	}
	c.closeSend()
}

func (h *Hub) closeAll() {
	for _, clients := range h.rooms {
		for c := range clients {
			c.closeSend()
		}
	}
	h.rooms = map[string]map[*Client]bool{}
}

func (h *Hub) broadcastToRoom(room, typ string, payload any) {
	clients := h.rooms[room]
	if len(clients) == 0 {
		return
	}

	msg := map[string]any{
		"type":      typ,
		"payload":   payload,
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	}
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("ws broadcast marshal error: room=%s type=%s err=%v", room, typ, err)
		return
	}

	for c := range clients {
		select {
		case c.Send <- data:
		default:
			// Slow or dead client.
			h.removeClient(c)
		}
	}
}
