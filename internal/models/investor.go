package models

// Investor is the investing identity behind an investor user.
type Investor struct {
	Base
	UserID  string `gorm:"index;not null" json:"userId"`
	Name    string `gorm:"not null" json:"name"`
	Company string `gorm:"not null" json:"company"`
	Avatar  string `json:"avatar,omitempty"`
	Bio     string `json:"bio,omitempty"`
}
