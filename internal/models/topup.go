package models

import (
	"time"
)

// TopUp statuses. Approved and Rejected are terminal.
const (
	TopUpStatusPending  = "Pending"
	TopUpStatusApproved = "Approved"
	TopUpStatusRejected = "Rejected"
)

// SubmittedBy value for top-ups created by SMS auto-verification.
const TopUpSubmitterAutoSMS = "AUTO_SMS_VERIFICATION"

type TopUp struct {
	ID     uint `gorm:"primarykey"`
	UserID uint `gorm:"index;not null"`
	// ReferenceID is the globally unique natural key (the payment transaction
	// id the user quotes); the unique index backs duplicate rejection.
	ReferenceID string  `gorm:"uniqueIndex;not null"`
	Amount      float64 `gorm:"not null"`
	Status      string  `gorm:"default:'Pending'"`
	SubmittedBy string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User *User `gorm:"foreignKey:UserID" json:",omitempty"`
}

// Final reports whether the top-up has reached a terminal status.
func (t *TopUp) Final() bool {
	return t.Status == TopUpStatusApproved || t.Status == TopUpStatusRejected
}
