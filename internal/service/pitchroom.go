package service

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gorilla/websocket"
	"gorm.io/gorm"

	"venture_web/internal/models"
	"venture_web/internal/repository"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 4096
)

// PitchRoomService owns the socket lifecycle for pitch rooms: joining,
// reading inbound frames, persisting messages and fanning them out.
type PitchRoomService struct {
	registry    *RoomRegistry
	roomRepo    repository.PitchRoomRepository
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
}

func NewPitchRoomService(roomRepo repository.PitchRoomRepository, messageRepo repository.MessageRepository, userRepo repository.UserRepository) *PitchRoomService {
	s := &PitchRoomService{
		roomRepo:    roomRepo,
		messageRepo: messageRepo,
		userRepo:    userRepo,
	}
	s.registry = NewRoomRegistry(s.loadHistory)
	return s
}

// Registry exposes the room registry for broadcast collaborators.
func (s *PitchRoomService) Registry() *RoomRegistry {
	return s.registry
}

func (s *PitchRoomService) GetRoom(roomID string) (*models.PitchRoom, error) {
	room, err := s.roomRepo.FindByID(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

// ListRoomsForUser returns the rooms a user participates in, on either side
// of the table.
func (s *PitchRoomService) ListRoomsForUser(userID string, role models.UserRole) ([]models.PitchRoom, error) {
	if role == models.RoleFounder {
		return s.roomRepo.FindByFounderUser(userID)
	}
	return s.roomRepo.FindByInvestorUser(userID)
}

// HandleConnection runs the read loop for an upgraded socket. It returns when
// the client disconnects; cleanup (leave, close) is handled here.
func (s *PitchRoomService) HandleConnection(conn *websocket.Conn, roomID, userID, role string) {
	client := NewClient(userID, role, conn)
	s.registry.Join(roomID, client)

	go s.writePump(client)
	s.readPump(roomID, client)
}

func (s *PitchRoomService) readPump(roomID string, client *Client) {
	defer func() {
		s.registry.Leave(roomID, client)
		client.shutdown()
	}()

	conn := client.conn
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("room %s: unexpected close from user %s: %v", roomID, client.UserID, err)
			}
			return
		}

		// A malformed frame is logged and skipped; the socket stays up.
		var frame ClientFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			log.Printf("room %s: malformed frame from user %s: %v", roomID, client.UserID, err)
			continue
		}
		if frame.Type != FrameTypeMessage || frame.Data == nil {
			continue
		}

		// Persist first: history must never contain a message the store
		// did not accept.
		msg, err := s.SaveMessage(roomID, frame.Data.SenderID, frame.Data.Content)
		if err != nil {
			log.Printf("room %s: save message from user %s: %v", roomID, client.UserID, err)
			continue
		}
		s.registry.Broadcast(roomID, *msg)
	}
}

func (s *PitchRoomService) writePump(client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.shutdown()
	}()

	for {
		select {
		case <-client.done:
			return
		case payload := <-client.send:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SaveMessage persists an inbound chat message and returns the
// server-authored record. The sender is a founder when their user id owns
// the room's startup side, an investor otherwise.
func (s *PitchRoomService) SaveMessage(roomID, senderID, content string) (*ChatMessage, error) {
	sender, err := s.userRepo.FindByID(senderID)
	if err != nil {
		return nil, err
	}
	room, err := s.roomRepo.FindByID(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	record := &models.PitchRoomMessage{
		PitchRoomID: roomID,
		SenderID:    senderID,
		Content:     content,
	}
	if err := s.messageRepo.Create(record); err != nil {
		return nil, err
	}

	role := string(models.RoleInvestor)
	if room.StartupUserID == sender.ID {
		role = string(models.RoleFounder)
	}

	return &ChatMessage{
		ID:         record.ID,
		RoomID:     roomID,
		SenderID:   senderID,
		SenderName: sender.Name,
		SenderRole: role,
		Content:    record.Content,
		Timestamp:  record.CreatedAt,
	}, nil
}

// loadHistory rebuilds in-memory history from persisted messages when the
// registry creates a room. Sender roles are resolved once against the room
// row; sender names are looked up per distinct sender.
func (s *PitchRoomService) loadHistory(roomID string) ([]ChatMessage, error) {
	records, err := s.messageRepo.FindByRoom(roomID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	room, err := s.roomRepo.FindByID(roomID)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string)
	history := make([]ChatMessage, 0, len(records))
	for _, rec := range records {
		name, ok := names[rec.SenderID]
		if !ok {
			if sender, err := s.userRepo.FindByID(rec.SenderID); err == nil {
				name = sender.Name
			}
			names[rec.SenderID] = name
		}
		role := string(models.RoleInvestor)
		if room.StartupUserID == rec.SenderID {
			role = string(models.RoleFounder)
		}
		history = append(history, ChatMessage{
			ID:         rec.ID,
			RoomID:     roomID,
			SenderID:   rec.SenderID,
			SenderName: name,
			SenderRole: role,
			Content:    rec.Content,
			Timestamp:  rec.CreatedAt,
		})
	}
	return history, nil
}
