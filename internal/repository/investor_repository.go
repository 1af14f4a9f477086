package repository

import (
	"venture_web/internal/models"
	"venture_web/internal/storage"
)

type InvestorRepository interface {
	Create(investor *models.Investor) error
	FindByID(id string) (*models.Investor, error)
	FindByUser(userID string) (*models.Investor, error)
}

type investorRepository struct {
	db *storage.PostgresDB
}

func NewInvestorRepository(db *storage.PostgresDB) InvestorRepository {
	return &investorRepository{db: db}
}

func (r *investorRepository) Create(investor *models.Investor) error {
	return r.db.Create(investor).Error
}

func (r *investorRepository) FindByID(id string) (*models.Investor, error) {
	var investor models.Investor
	err := r.db.First(&investor, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &investor, nil
}

func (r *investorRepository) FindByUser(userID string) (*models.Investor, error) {
	var investor models.Investor
	err := r.db.Where("user_id = ?", userID).First(&investor).Error
	if err != nil {
		return nil, err
	}
	return &investor, nil
}
