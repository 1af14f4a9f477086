package models

import "time"

// Offer is an investor's current terms against a funding round. There is one
// row per (funding round, investor) pair; counters overwrite it in place.
type Offer struct {
	Base
	FundingRoundID   string      `gorm:"not null;uniqueIndex:idx_offers_round_investor" json:"fundingRoundId"`
	InvestorID       string      `gorm:"not null;uniqueIndex:idx_offers_round_investor" json:"investorId"`
	Amount           float64     `json:"amount"`
	EquityPercentage float64     `json:"equityPercentage"`
	Status           OfferStatus `gorm:"type:varchar(20);not null;default:reviewing" json:"status"`
	MeetingScheduled *time.Time  `json:"meetingScheduled,omitempty"`
	AcceptedAt       *time.Time  `json:"acceptedAt,omitempty"`
	RejectedAt       *time.Time  `json:"rejectedAt,omitempty"`

	Investor *Investor `gorm:"foreignKey:InvestorID" json:"-"`
}

// OfferStatus tracks where a negotiation stands.
//
// reviewing -> offered -> {accepted | countered | rejected}, and a countered
// offer may be re-countered or accepted. Accepted is terminal.
type OfferStatus string

const (
	OfferStatusReviewing OfferStatus = "reviewing"
	OfferStatusOffered   OfferStatus = "offered"
	OfferStatusCountered OfferStatus = "countered"
	OfferStatusAccepted  OfferStatus = "accepted"
	OfferStatusRejected  OfferStatus = "rejected"
)
