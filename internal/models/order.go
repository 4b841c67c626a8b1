package models

import (
	"time"
)

// Order item statuses. "Canceled" is accepted on input and normalized to
// StatusCancelled before anything is stored.
const (
	StatusPending    = "Pending"
	StatusProcessing = "Processing"
	StatusCompleted  = "Completed"
	StatusCancelled  = "Cancelled"
)

// NormalizeStatus maps accepted status spellings onto the canonical enum
// value. The second return is false for unknown statuses.
func NormalizeStatus(status string) (string, bool) {
	switch status {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return status, true
	case "Canceled":
		return StatusCancelled, true
	}
	return "", false
}

// CanTransition reports whether an order item may move from one status to
// another. Completed is terminal; Cancelled accepts only a repeated cancel,
// which the workflow treats as a no-op for refund purposes.
func CanTransition(from, to string) bool {
	if from == to {
		return from != StatusCompleted
	}
	switch from {
	case StatusPending:
		return to == StatusProcessing || to == StatusCompleted || to == StatusCancelled
	case StatusProcessing:
		return to == StatusCompleted || to == StatusCancelled
	}
	return false
}

type Order struct {
	ID           uint   `gorm:"primarykey"`
	UserID       uint   `gorm:"index;not null"`
	MobileNumber string
	Status       string `gorm:"default:'Pending'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	User  *User       `gorm:"foreignKey:UserID" json:",omitempty"`
	Items []OrderItem `gorm:"foreignKey:OrderID"`
}

// TotalPrice sums the order's line items from the product prices snapshotted
// on the preloaded items.
func (o *Order) TotalPrice() float64 {
	var total float64
	for _, item := range o.Items {
		if item.Product != nil {
			total += item.Product.Price * float64(item.Quantity)
		}
	}
	return total
}

type OrderItem struct {
	ID           uint   `gorm:"primarykey"`
	OrderID      uint   `gorm:"index;not null"`
	ProductID    uint   `gorm:"not null"`
	Quantity     int    `gorm:"not null;default:1"`
	MobileNumber string
	Status       string `gorm:"default:'Pending'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Order   *Order   `gorm:"foreignKey:OrderID" json:",omitempty"`
	Product *Product `gorm:"foreignKey:ProductID" json:",omitempty"`
}
