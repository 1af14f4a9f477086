package repository

import "venture_web/internal/storage"

type Repositories struct {
	User         UserRepository
	Startup      StartupRepository
	Investor     InvestorRepository
	FundingRound FundingRoundRepository
	Offer        OfferRepository
	CapTable     CapTableRepository
	PitchRoom    PitchRoomRepository
	Message      MessageRepository
}

func NewRepositories(db *storage.PostgresDB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Startup:      NewStartupRepository(db),
		Investor:     NewInvestorRepository(db),
		FundingRound: NewFundingRoundRepository(db),
		Offer:        NewOfferRepository(db),
		CapTable:     NewCapTableRepository(db),
		PitchRoom:    NewPitchRoomRepository(db),
		Message:      NewMessageRepository(db),
	}
}
