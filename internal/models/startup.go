package models

// Startup is owned by a founder user and raises money through funding rounds.
type Startup struct {
	Base
	UserID      string `gorm:"index;not null" json:"userId"`
	Name        string `gorm:"not null" json:"name"`
	Tagline     string `json:"tagline,omitempty"`
	Description string `json:"description,omitempty"`
	Stage       string `json:"stage,omitempty"`
	LogoURL     string `json:"logoUrl,omitempty"`
}
