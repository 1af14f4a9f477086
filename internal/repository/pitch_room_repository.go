package repository

import (
	"venture_web/internal/models"
	"venture_web/internal/storage"
)

type PitchRoomRepository interface {
	Create(room *models.PitchRoom) error
	FindByID(id string) (*models.PitchRoom, error)
	FindByStartupAndInvestor(startupID, investorID string) (*models.PitchRoom, error)
	FindByFounderUser(userID string) ([]models.PitchRoom, error)
	FindByInvestorUser(userID string) ([]models.PitchRoom, error)
}

type pitchRoomRepository struct {
	db *storage.PostgresDB
}

func NewPitchRoomRepository(db *storage.PostgresDB) PitchRoomRepository {
	return &pitchRoomRepository{db: db}
}

func (r *pitchRoomRepository) Create(room *models.PitchRoom) error {
	return r.db.Create(room).Error
}

func (r *pitchRoomRepository) FindByID(id string) (*models.PitchRoom, error) {
	var room models.PitchRoom
	err := r.db.First(&room, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *pitchRoomRepository) FindByStartupAndInvestor(startupID, investorID string) (*models.PitchRoom, error) {
	var room models.PitchRoom
	err := r.db.
		Where("startup_id = ? AND investor_id = ?", startupID, investorID).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *pitchRoomRepository) FindByFounderUser(userID string) ([]models.PitchRoom, error) {
	var rooms []models.PitchRoom
	err := r.db.
		Where("startup_user_id = ?", userID).
		Order("updated_at DESC").
		Find(&rooms).Error
	return rooms, err
}

func (r *pitchRoomRepository) FindByInvestorUser(userID string) ([]models.PitchRoom, error) {
	var rooms []models.PitchRoom
	err := r.db.
		Where("investor_user_id = ?", userID).
		Order("updated_at DESC").
		Find(&rooms).Error
	return rooms, err
}
