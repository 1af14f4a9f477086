package models

import "time"

// CapTableEntry records an accepted investment. Entries are append-only; they
// are never mutated or deleted once written.
type CapTableEntry struct {
	Base
	StartupID  string    `gorm:"index;not null" json:"startupId"`
	InvestorID string    `gorm:"index;not null" json:"investorId"`
	Equity     float64   `gorm:"not null" json:"equity"`
	Investment float64   `gorm:"not null" json:"investment"`
	Date       time.Time `gorm:"not null" json:"date"`
}
