package models

import (
	"time"
)

// Cart is per-user staging state for the next order. It survives submission;
// only its items are cleared.
type Cart struct {
	ID           uint `gorm:"primarykey"`
	UserID       uint `gorm:"uniqueIndex;not null"`
	MobileNumber string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Items []CartItem `gorm:"foreignKey:CartID"`
}

type CartItem struct {
	ID           uint `gorm:"primarykey"`
	CartID       uint `gorm:"index;not null"`
	ProductID    uint `gorm:"not null"`
	Quantity     int  `gorm:"not null;default:1"`
	MobileNumber string
	CreatedAt    time.Time

	Product *Product `gorm:"foreignKey:ProductID" json:",omitempty"`
}

// Product is catalog data owned by an external collaborator; the order
// workflow only reads the price snapshot at submission time.
type Product struct {
	ID          uint   `gorm:"primarykey"`
	Name        string `gorm:"not null"`
	Description string
	Price       float64 `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
