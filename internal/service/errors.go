package service

import "errors"

var (
	// ErrOfferNotFound is returned when no offer row exists for a
	// (funding round, investor) pair. Callers create a reviewing offer via
	// ExpressInterest before negotiating.
	ErrOfferNotFound = errors.New("offer not found")

	// ErrOfferAlreadyAccepted guards the cap table: an accepted offer is
	// terminal, and re-accepting it must not append a second entry.
	ErrOfferAlreadyAccepted = errors.New("offer already accepted")

	ErrRoundNotFound    = errors.New("funding round not found")
	ErrRoomNotFound     = errors.New("pitch room not found")
	ErrStartupNotFound  = errors.New("startup not found")
	ErrInvestorNotFound = errors.New("investor not found")
)
