package models

import (
	"gorm.io/gorm"
)

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	gorm.Model
	Name          string  `gorm:"not null"`
	Email         string  `gorm:"uniqueIndex;not null"`
	Password      string  `gorm:"not null" json:"-"`
	Phone         string  `gorm:"uniqueIndex;not null"`
	Role          string  `gorm:"default:'user'"`
	// WalletBalance is a projection of the transaction log. Only the ledger
	// service's atomic increment may change it.
	WalletBalance float64 `gorm:"not null;default:0"`
}

// IsAdmin reports whether the user may call admin-only operations.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
