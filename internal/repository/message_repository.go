package repository

import (
	"venture_web/internal/models"
	"venture_web/internal/storage"
)

type MessageRepository interface {
	Create(message *models.PitchRoomMessage) error
	FindByRoom(roomID string) ([]models.PitchRoomMessage, error)
}

type messageRepository struct {
	db *storage.PostgresDB
}

func NewMessageRepository(db *storage.PostgresDB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(message *models.PitchRoomMessage) error {
	return r.db.Create(message).Error
}

func (r *messageRepository) FindByRoom(roomID string) ([]models.PitchRoomMessage, error) {
	var messages []models.PitchRoomMessage
	err := r.db.
		Where("pitch_room_id = ?", roomID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}
