package service

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const sendBufferSize = 64

// Client is one socket registration inside a room. A room holds at most one
// client per user id; a reconnect replaces the previous registration.
type Client struct {
	UserID string
	Role   string

	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func NewClient(userID, role string, conn *websocket.Conn) *Client {
	return &Client{
		UserID: userID,
		Role:   role,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		done:   make(chan struct{}),
	}
}

// trySend enqueues payload for the write pump. It reports false when the
// client has shut down or its buffer is full; a slow client loses frames
// rather than blocking the room.
func (c *Client) trySend(payload []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

// shutdown closes the underlying socket and stops the write pump. Safe to
// call from any goroutine, any number of times.
func (c *Client) shutdown() {
	c.once.Do(func() {
		close(c.done)
		if c.conn != nil {
			c.conn.Close()
		}
	})
}

type room struct {
	id      string
	clients map[string]*Client
	history []ChatMessage
}

// HistoryLoader seeds a newly created room with previously persisted
// messages so a rejoin after the last disconnect still sees the
// conversation.
type HistoryLoader func(roomID string) ([]ChatMessage, error)

// RoomRegistry multiplexes socket connections into isolated broadcast groups
// keyed by room id. It is constructed explicitly and passed into handlers;
// there is no package-level instance, so tests can run isolated registries.
//
// Room and client state lives only in this process. A restart drops open
// rooms; messages survive because they are persisted before broadcast.
type RoomRegistry struct {
	mu          sync.RWMutex
	rooms       map[string]*room
	loadHistory HistoryLoader
}

func NewRoomRegistry(loader HistoryLoader) *RoomRegistry {
	return &RoomRegistry{
		rooms:       make(map[string]*room),
		loadHistory: loader,
	}
}

// Join registers the client, creating the room lazily, and queues the room's
// full history as the client's first outbound frame. Queueing happens under
// the registry lock, before the client becomes visible to Broadcast, which
// guarantees history-before-messages ordering on the wire.
func (r *RoomRegistry) Join(roomID string, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rm, ok := r.rooms[roomID]
	if !ok {
		rm = &room{id: roomID, clients: make(map[string]*Client)}
		if r.loadHistory != nil {
			history, err := r.loadHistory(roomID)
			if err != nil {
				log.Printf("room %s: load history: %v", roomID, err)
			} else {
				rm.history = history
			}
		}
		r.rooms[roomID] = rm
	}

	history := rm.history
	if history == nil {
		history = []ChatMessage{}
	}
	payload, err := json.Marshal(HistoryFrame{Type: FrameTypeHistory, Messages: history})
	if err != nil {
		log.Printf("room %s: encode history: %v", roomID, err)
	} else {
		c.trySend(payload)
	}

	if prev, ok := rm.clients[c.UserID]; ok {
		prev.shutdown()
	}
	rm.clients[c.UserID] = c
}

// Leave removes the client's registration. The room is discarded once its
// last client is gone. A client replaced by a reconnect does not remove the
// newer registration when its own teardown runs.
func (r *RoomRegistry) Leave(roomID string, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rm, ok := r.rooms[roomID]
	if !ok {
		return
	}
	if current, ok := rm.clients[c.UserID]; ok && current == c {
		delete(rm.clients, c.UserID)
	}
	if len(rm.clients) == 0 {
		delete(r.rooms, roomID)
	}
}

// Broadcast appends msg to the room's history and fans it out to every
// connected client. Delivery is isolated per client: one full buffer or dead
// socket never blocks the others.
func (r *RoomRegistry) Broadcast(roomID string, msg ChatMessage) {
	payload, err := json.Marshal(MessageFrame{Type: FrameTypeMessage, Message: &msg})
	if err != nil {
		log.Printf("room %s: encode message: %v", roomID, err)
		return
	}

	r.mu.Lock()
	rm, ok := r.rooms[roomID]
	if !ok {
		r.mu.Unlock()
		return
	}
	rm.history = append(rm.history, msg)
	clients := make([]*Client, 0, len(rm.clients))
	for _, c := range rm.clients {
		clients = append(clients, c)
	}
	r.mu.Unlock()

	for _, c := range clients {
		if !c.trySend(payload) {
			log.Printf("room %s: dropping message %s for user %s", roomID, msg.ID, c.UserID)
		}
	}
}

// BroadcastSystem sends a transient announcement to the room. System frames
// are not recorded in history.
func (r *RoomRegistry) BroadcastSystem(roomID, content string) {
	payload, err := json.Marshal(SystemFrame{
		Type:      FrameTypeSystem,
		Content:   content,
		Timestamp: time.Now(),
	})
	if err != nil {
		log.Printf("room %s: encode system frame: %v", roomID, err)
		return
	}

	r.mu.RLock()
	rm, ok := r.rooms[roomID]
	var clients []*Client
	if ok {
		clients = make([]*Client, 0, len(rm.clients))
		for _, c := range rm.clients {
			clients = append(clients, c)
		}
	}
	r.mu.RUnlock()

	for _, c := range clients {
		c.trySend(payload)
	}
}

// HasRoom reports whether a room is currently live.
func (r *RoomRegistry) HasRoom(roomID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.rooms[roomID]
	return ok
}

// ClientCount returns the number of connected clients in a room.
func (r *RoomRegistry) ClientCount(roomID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rm, ok := r.rooms[roomID]
	if !ok {
		return 0
	}
	return len(rm.clients)
}
