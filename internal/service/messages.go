package service

import "time"

// Frame types on the pitch-room socket.
const (
	FrameTypeMessage = "message"
	FrameTypeHistory = "history"
	FrameTypeSystem  = "system"
)

// ChatMessage is the server-authored message record. The server assigns the
// id and timestamp at persistence time and resolves the sender's role from
// the room; clients never author message identity.
type ChatMessage struct {
	ID         string    `json:"id"`
	RoomID     string    `json:"roomId"`
	SenderID   string    `json:"senderId"`
	SenderName string    `json:"senderName,omitempty"`
	SenderRole string    `json:"senderRole"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
}

// ClientFrame is the inbound client -> server frame.
type ClientFrame struct {
	Type string             `json:"type"`
	Data *ClientMessageData `json:"data,omitempty"`
}

type ClientMessageData struct {
	SenderID string `json:"senderId"`
	Content  string `json:"content"`
	RoomID   string `json:"roomId"`
}

// HistoryFrame is sent once to each newly joined client, before any message
// frames. Messages is always an array, possibly empty.
type HistoryFrame struct {
	Type     string        `json:"type"`
	Messages []ChatMessage `json:"messages"`
}

// MessageFrame fans a persisted message out to every client in the room.
type MessageFrame struct {
	Type    string       `json:"type"`
	Message *ChatMessage `json:"message"`
}

// SystemFrame carries server-originated announcements (joins, offer events).
// It is not part of room history.
type SystemFrame struct {
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
