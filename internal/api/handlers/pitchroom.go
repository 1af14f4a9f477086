package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"venture_web/internal/models"
	"venture_web/internal/service"
)

type PitchRoomHandler struct {
	pitchRooms *service.PitchRoomService
}

func NewPitchRoomHandler(pitchRooms *service.PitchRoomService) *PitchRoomHandler {
	return &PitchRoomHandler{pitchRooms: pitchRooms}
}

func (h *PitchRoomHandler) ListRooms(c *gin.Context) {
	userID := c.GetString("userID")
	role := models.UserRole(c.GetString("userRole"))

	rooms, err := h.pitchRooms.ListRoomsForUser(userID, role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch pitch rooms"})
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (h *PitchRoomHandler) GetRoom(c *gin.Context) {
	room, err := h.pitchRooms.GetRoom(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch pitch room"})
		return
	}
	c.JSON(http.StatusOK, room)
}
