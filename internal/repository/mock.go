package repository

import (
	"venture_web/internal/models"

	"gorm.io/gorm"
)

// Function-field mocks for tests. Unset find functions report
// gorm.ErrRecordNotFound; unset mutation functions succeed.

type MockUserRepository struct {
	CreateFunc         func(user *models.User) error
	FindByIDFunc       func(id string) (*models.User, error)
	FindByUsernameFunc func(username string) (*models.User, error)
}

func (m *MockUserRepository) Create(user *models.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(user)
	}
	return nil
}

func (m *MockUserRepository) FindByID(id string) (*models.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockUserRepository) FindByUsername(username string) (*models.User, error) {
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(username)
	}
	return nil, gorm.ErrRecordNotFound
}

type MockStartupRepository struct {
	CreateFunc     func(startup *models.Startup) error
	FindByIDFunc   func(id string) (*models.Startup, error)
	FindByUserFunc func(userID string) (*models.Startup, error)
}

func (m *MockStartupRepository) Create(startup *models.Startup) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(startup)
	}
	return nil
}

func (m *MockStartupRepository) FindByID(id string) (*models.Startup, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockStartupRepository) FindByUser(userID string) (*models.Startup, error) {
	if m.FindByUserFunc != nil {
		return m.FindByUserFunc(userID)
	}
	return nil, gorm.ErrRecordNotFound
}

type MockInvestorRepository struct {
	CreateFunc     func(investor *models.Investor) error
	FindByIDFunc   func(id string) (*models.Investor, error)
	FindByUserFunc func(userID string) (*models.Investor, error)
}

func (m *MockInvestorRepository) Create(investor *models.Investor) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(investor)
	}
	return nil
}

func (m *MockInvestorRepository) FindByID(id string) (*models.Investor, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockInvestorRepository) FindByUser(userID string) (*models.Investor, error) {
	if m.FindByUserFunc != nil {
		return m.FindByUserFunc(userID)
	}
	return nil, gorm.ErrRecordNotFound
}

type MockFundingRoundRepository struct {
	CreateFunc              func(round *models.FundingRound) error
	FindByIDFunc            func(id string) (*models.FundingRound, error)
	FindActiveByStartupFunc func(startupID string) (*models.FundingRound, error)
	UpdateFunc              func(round *models.FundingRound) error
}

func (m *MockFundingRoundRepository) Create(round *models.FundingRound) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(round)
	}
	return nil
}

func (m *MockFundingRoundRepository) FindByID(id string) (*models.FundingRound, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockFundingRoundRepository) FindActiveByStartup(startupID string) (*models.FundingRound, error) {
	if m.FindActiveByStartupFunc != nil {
		return m.FindActiveByStartupFunc(startupID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockFundingRoundRepository) Update(round *models.FundingRound) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(round)
	}
	return nil
}

type MockOfferRepository struct {
	CreateFunc                 func(offer *models.Offer) error
	FindByRoundAndInvestorFunc func(roundID, investorID string) (*models.Offer, error)
	FindByRoundFunc            func(roundID string) ([]models.Offer, error)
	UpdateFunc                 func(offer *models.Offer) error
	AcceptFunc                 func(offer *models.Offer, entry *models.CapTableEntry) error
}

func (m *MockOfferRepository) Create(offer *models.Offer) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(offer)
	}
	return nil
}

func (m *MockOfferRepository) FindByRoundAndInvestor(roundID, investorID string) (*models.Offer, error) {
	if m.FindByRoundAndInvestorFunc != nil {
		return m.FindByRoundAndInvestorFunc(roundID, investorID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockOfferRepository) FindByRound(roundID string) ([]models.Offer, error) {
	if m.FindByRoundFunc != nil {
		return m.FindByRoundFunc(roundID)
	}
	return nil, nil
}

func (m *MockOfferRepository) Update(offer *models.Offer) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(offer)
	}
	return nil
}

func (m *MockOfferRepository) Accept(offer *models.Offer, entry *models.CapTableEntry) error {
	if m.AcceptFunc != nil {
		return m.AcceptFunc(offer, entry)
	}
	return nil
}

type MockCapTableRepository struct {
	CreateFunc        func(entry *models.CapTableEntry) error
	FindByStartupFunc func(startupID string) ([]models.CapTableEntry, error)
}

func (m *MockCapTableRepository) Create(entry *models.CapTableEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(entry)
	}
	return nil
}

func (m *MockCapTableRepository) FindByStartup(startupID string) ([]models.CapTableEntry, error) {
	if m.FindByStartupFunc != nil {
		return m.FindByStartupFunc(startupID)
	}
	return nil, nil
}

type MockPitchRoomRepository struct {
	CreateFunc                   func(room *models.PitchRoom) error
	FindByIDFunc                 func(id string) (*models.PitchRoom, error)
	FindByStartupAndInvestorFunc func(startupID, investorID string) (*models.PitchRoom, error)
	FindByFounderUserFunc        func(userID string) ([]models.PitchRoom, error)
	FindByInvestorUserFunc       func(userID string) ([]models.PitchRoom, error)
}

func (m *MockPitchRoomRepository) Create(room *models.PitchRoom) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(room)
	}
	return nil
}

func (m *MockPitchRoomRepository) FindByID(id string) (*models.PitchRoom, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockPitchRoomRepository) FindByStartupAndInvestor(startupID, investorID string) (*models.PitchRoom, error) {
	if m.FindByStartupAndInvestorFunc != nil {
		return m.FindByStartupAndInvestorFunc(startupID, investorID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockPitchRoomRepository) FindByFounderUser(userID string) ([]models.PitchRoom, error) {
	if m.FindByFounderUserFunc != nil {
		return m.FindByFounderUserFunc(userID)
	}
	return nil, nil
}

func (m *MockPitchRoomRepository) FindByInvestorUser(userID string) ([]models.PitchRoom, error) {
	if m.FindByInvestorUserFunc != nil {
		return m.FindByInvestorUserFunc(userID)
	}
	return nil, nil
}

type MockMessageRepository struct {
	CreateFunc     func(message *models.PitchRoomMessage) error
	FindByRoomFunc func(roomID string) ([]models.PitchRoomMessage, error)
}

func (m *MockMessageRepository) Create(message *models.PitchRoomMessage) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(message)
	}
	return nil
}

func (m *MockMessageRepository) FindByRoom(roomID string) ([]models.PitchRoomMessage, error) {
	if m.FindByRoomFunc != nil {
		return m.FindByRoomFunc(roomID)
	}
	return nil, nil
}
