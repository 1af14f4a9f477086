package models

import "time"

// FundingRound is a startup's ask: an amount of money for a slice of equity.
type FundingRound struct {
	Base
	StartupID     string      `gorm:"index;not null" json:"startupId"`
	AskAmount     float64     `gorm:"not null" json:"askAmount"`
	EquityOffered float64     `gorm:"not null" json:"equityOffered"`
	Status        RoundStatus `gorm:"type:varchar(20);not null;default:active" json:"status"`
	ClosingDate   time.Time   `gorm:"not null" json:"closingDate"`
}

type RoundStatus string

const (
	RoundStatusActive RoundStatus = "active"
	RoundStatusClosed RoundStatus = "closed"
)
