package repository

import (
	"venture_web/internal/models"
	"venture_web/internal/storage"
)

type FundingRoundRepository interface {
	Create(round *models.FundingRound) error
	FindByID(id string) (*models.FundingRound, error)
	FindActiveByStartup(startupID string) (*models.FundingRound, error)
	Update(round *models.FundingRound) error
}

type fundingRoundRepository struct {
	db *storage.PostgresDB
}

func NewFundingRoundRepository(db *storage.PostgresDB) FundingRoundRepository {
	return &fundingRoundRepository{db: db}
}

func (r *fundingRoundRepository) Create(round *models.FundingRound) error {
	return r.db.Create(round).Error
}

func (r *fundingRoundRepository) FindByID(id string) (*models.FundingRound, error) {
	var round models.FundingRound
	err := r.db.First(&round, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &round, nil
}

// FindActiveByStartup returns the most recent active round. Uniqueness of the
// active round per startup is a product expectation, not a DB constraint.
func (r *fundingRoundRepository) FindActiveByStartup(startupID string) (*models.FundingRound, error) {
	var round models.FundingRound
	err := r.db.
		Where("startup_id = ? AND status = ?", startupID, models.RoundStatusActive).
		Order("created_at DESC").
		First(&round).Error
	if err != nil {
		return nil, err
	}
	return &round, nil
}

func (r *fundingRoundRepository) Update(round *models.FundingRound) error {
	return r.db.Save(round).Error
}
