package repository

import (
	"gorm.io/gorm"

	"venture_web/internal/models"
	"venture_web/internal/storage"
)

type OfferRepository interface {
	Create(offer *models.Offer) error
	FindByRoundAndInvestor(roundID, investorID string) (*models.Offer, error)
	FindByRound(roundID string) ([]models.Offer, error)
	Update(offer *models.Offer) error
	Accept(offer *models.Offer, entry *models.CapTableEntry) error
}

type offerRepository struct {
	db *storage.PostgresDB
}

func NewOfferRepository(db *storage.PostgresDB) OfferRepository {
	return &offerRepository{db: db}
}

func (r *offerRepository) Create(offer *models.Offer) error {
	return r.db.Create(offer).Error
}

func (r *offerRepository) FindByRoundAndInvestor(roundID, investorID string) (*models.Offer, error) {
	var offer models.Offer
	err := r.db.
		Where("funding_round_id = ? AND investor_id = ?", roundID, investorID).
		First(&offer).Error
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

func (r *offerRepository) FindByRound(roundID string) ([]models.Offer, error) {
	var offers []models.Offer
	err := r.db.
		Preload("Investor").
		Where("funding_round_id = ?", roundID).
		Order("created_at ASC").
		Find(&offers).Error
	return offers, err
}

func (r *offerRepository) Update(offer *models.Offer) error {
	return r.db.Save(offer).Error
}

// Accept persists the accepted offer and its cap-table entry in one
// transaction. An accepted offer without a cap-table entry must never be
// observable, so the two writes commit or roll back together.
func (r *offerRepository) Accept(offer *models.Offer, entry *models.CapTableEntry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(offer).Error; err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
}
