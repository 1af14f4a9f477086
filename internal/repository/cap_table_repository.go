package repository

import (
	"venture_web/internal/models"
	"venture_web/internal/storage"
)

type CapTableRepository interface {
	Create(entry *models.CapTableEntry) error
	FindByStartup(startupID string) ([]models.CapTableEntry, error)
}

type capTableRepository struct {
	db *storage.PostgresDB
}

func NewCapTableRepository(db *storage.PostgresDB) CapTableRepository {
	return &capTableRepository{db: db}
}

func (r *capTableRepository) Create(entry *models.CapTableEntry) error {
	return r.db.Create(entry).Error
}

func (r *capTableRepository) FindByStartup(startupID string) ([]models.CapTableEntry, error) {
	var entries []models.CapTableEntry
	err := r.db.
		Where("startup_id = ?", startupID).
		Order("date ASC").
		Find(&entries).Error
	return entries, err
}
