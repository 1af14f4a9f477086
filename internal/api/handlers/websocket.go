package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"venture_web/internal/service"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // origin should be checked in production
	},
}

// WebSocketHandler upgrades pitch-room connections and hands them to the
// pitch-room service.
type WebSocketHandler struct {
	pitchRooms *service.PitchRoomService
}

func NewWebSocketHandler(pitchRooms *service.PitchRoomService) *WebSocketHandler {
	return &WebSocketHandler{pitchRooms: pitchRooms}
}

// HandleWebSocket serves GET /api/pitch-rooms/:id/ws?userId=..&userRole=..
// Identity comes from query parameters because browser websockets cannot set
// headers. Missing identity is a protocol-level refusal: the connection is
// upgraded, then closed with a policy-violation close frame.
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	roomID := c.Param("id")
	userID := c.Query("userId")
	userRole := c.Query("userRole")

	if userID == "" || userRole == "" {
		msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "missing user information")
		conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		conn.Close()
		return
	}

	// Blocks until the client disconnects.
	h.pitchRooms.HandleConnection(conn, roomID, userID, userRole)
}
