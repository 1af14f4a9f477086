package repository

import (
	"venture_web/internal/models"
	"venture_web/internal/storage"
)

type StartupRepository interface {
	Create(startup *models.Startup) error
	FindByID(id string) (*models.Startup, error)
	FindByUser(userID string) (*models.Startup, error)
}

type startupRepository struct {
	db *storage.PostgresDB
}

func NewStartupRepository(db *storage.PostgresDB) StartupRepository {
	return &startupRepository{db: db}
}

func (r *startupRepository) Create(startup *models.Startup) error {
	return r.db.Create(startup).Error
}

func (r *startupRepository) FindByID(id string) (*models.Startup, error) {
	var startup models.Startup
	err := r.db.First(&startup, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &startup, nil
}

func (r *startupRepository) FindByUser(userID string) (*models.Startup, error) {
	var startup models.Startup
	err := r.db.Where("user_id = ?", userID).First(&startup).Error
	if err != nil {
		return nil, err
	}
	return &startup, nil
}
