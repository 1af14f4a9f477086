package models

// User represents an account on the platform.
type User struct {
	Base
	Username string   `gorm:"uniqueIndex;not null" json:"username"`
	Password string   `gorm:"not null" json:"-"`
	Name     string   `json:"name"`
	Email    string   `gorm:"uniqueIndex" json:"email"`
	Role     UserRole `gorm:"type:varchar(20);not null" json:"role"`
	Avatar   string   `json:"avatar,omitempty"`
}

// UserRole determines which side of a negotiation a user sits on.
type UserRole string

const (
	RoleFounder  UserRole = "founder"
	RoleInvestor UserRole = "investor"
)
