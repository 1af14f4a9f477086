package service

import (
	"venture_web/internal/repository"
)

type Services struct {
	User         *UserService
	Negotiation  *NegotiationService
	FundingRound *FundingRoundService
	PitchRoom    *PitchRoomService
}

func NewServices(repos *repository.Repositories, cache RoundCache, notifier OfferNotifier) *Services {
	return &Services{
		User:         NewUserService(repos.User),
		Negotiation:  NewNegotiationService(repos.Offer, repos.FundingRound, repos.Investor, cache, notifier),
		FundingRound: NewFundingRoundService(repos.FundingRound, repos.Offer, repos.CapTable, repos.Startup, cache),
		PitchRoom:    NewPitchRoomService(repos.PitchRoom, repos.Message, repos.User),
	}
}
