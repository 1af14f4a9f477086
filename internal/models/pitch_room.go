package models

import "time"

// PitchRoom ties one startup to one investor for a live pitch session. The
// user id columns are denormalized so the chat layer can resolve sender roles
// without joining through startups and investors.
type PitchRoom struct {
	Base
	StartupID      string     `gorm:"index;not null" json:"startupId"`
	InvestorID     string     `gorm:"index;not null" json:"investorId"`
	StartupUserID  string     `gorm:"not null" json:"startupUserId"`
	InvestorUserID string     `gorm:"not null" json:"investorUserId"`
	Name           string     `gorm:"not null" json:"name"`
	Description    string     `json:"description,omitempty"`
	PitchDeckURL   string     `json:"pitchDeckUrl,omitempty"`
	AvatarURL      string     `json:"avatarUrl,omitempty"`
	ScheduledAt    time.Time  `json:"scheduledAt"`
	EndedAt        *time.Time `json:"endedAt,omitempty"`
}
