package models

import (
	"time"
)

// Ledger entry types
const (
	EntryTypeTopUpRequest     = "TOPUP_REQUEST"
	EntryTypeTopUpApproved    = "TOPUP_APPROVED"
	EntryTypeTopUpRejected    = "TOPUP_REJECTED"
	EntryTypeOrder            = "ORDER"
	EntryTypeOrderStatus      = "ORDER_STATUS"
	EntryTypeOrderItemRefund  = "ORDER_ITEM_REFUND"
	EntryTypeOrderItemStatus  = "ORDER_ITEM_STATUS"
	EntryTypeOrderItemsRefund = "ORDER_ITEMS_REFUND"
	EntryTypeOrderItemsStatus = "ORDER_ITEMS_STATUS"
	EntryTypeLoanRepayment    = "LOAN_REPAYMENT"
	EntryTypeLoanDeduction    = "LOAN_DEDUCTION"
)

// Transaction is one immutable ledger entry: the record of a single wallet
// balance change (or a zero-amount status note). Entries are append-only and
// never updated, so the row carries no UpdatedAt.
//
// Invariant: PreviousBalance + Amount == Balance.
type Transaction struct {
	ID     uint `gorm:"primarykey"`
	UserID uint `gorm:"index;not null"`
	// Amount is signed: positive credits, negative debits, zero informational.
	Amount          float64 `gorm:"not null"`
	Balance         float64 `gorm:"not null"`
	PreviousBalance float64 `gorm:"not null"`
	Type            string  `gorm:"not null"`
	Description     string
	// Reference is a free-text natural key (order:<id>, topup:<id>, ...) used
	// for audit linking and duplicate detection.
	Reference string    `gorm:"index"`
	CreatedAt time.Time `gorm:"index"`

	User *User `gorm:"foreignKey:UserID" json:",omitempty"`
}

// IdempotencyKey reserves a natural reference for one operation type. The
// composite unique index is what makes reserve-or-reject race-proof: the
// second reservation inside a concurrent scope loses at the constraint, not
// at an application-level check.
type IdempotencyKey struct {
	ID            uint      `gorm:"primarykey"`
	OperationType string    `gorm:"uniqueIndex:idx_operation_reference;not null"`
	Reference     string    `gorm:"uniqueIndex:idx_operation_reference;not null"`
	CreatedAt     time.Time
}
