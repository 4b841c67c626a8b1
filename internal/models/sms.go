package models

import (
	"time"
)

// SmsMessage is an inbound mobile-money SMS already parsed by the ingestion
// collaborator. The top-up workflow only looks records up by reference and
// flips Processed exactly once; it never touches the raw body.
type SmsMessage struct {
	ID        uint   `gorm:"primarykey"`
	Sender    string
	Body      string
	Reference string `gorm:"index;not null"`
	// Amount is nil when the parser could not extract a figure.
	Amount    *float64
	Processed bool `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
