package errors

var (
	ErrUserNotFound = &DomainError{
		Code:    "USER_NOT_FOUND",
		Message: "user not found",
		Kind:    KindNotFound,
	}
	ErrInsufficientBalance = &DomainError{
		Code:    "INSUFFICIENT_BALANCE",
		Message: "insufficient balance to place order",
		Kind:    KindConflict,
	}
	ErrInvalidAmount = &DomainError{
		Code:    "INVALID_AMOUNT",
		Message: "amount must be greater than zero",
		Kind:    KindValidation,
	}
	ErrInvalidEntryType = &DomainError{
		Code:    "INVALID_ENTRY_TYPE",
		Message: "invalid ledger entry type",
		Kind:    KindValidation,
	}
)
