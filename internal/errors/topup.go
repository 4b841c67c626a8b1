package errors

var (
	ErrTopUpNotFound = &DomainError{
		Code:    "TOPUP_NOT_FOUND",
		Message: "top-up request not found",
		Kind:    KindNotFound,
	}
	ErrDuplicateReference = &DomainError{
		Code:    "DUPLICATE_REFERENCE",
		Message: "reference id already exists",
		Kind:    KindConflict,
	}
	ErrTopUpAlreadyFinal = &DomainError{
		Code:    "TOPUP_ALREADY_FINAL",
		Message: "top-up has already been approved or rejected",
		Kind:    KindConflict,
	}
	ErrInvalidTopUpStatus = &DomainError{
		Code:    "INVALID_TOPUP_STATUS",
		Message: "status must be Approved or Rejected",
		Kind:    KindValidation,
	}
	ErrSmsNotFound = &DomainError{
		Code:    "SMS_NOT_FOUND",
		Message: "invalid or already used reference number",
		Kind:    KindNotFound,
	}
	ErrSmsAmountMissing = &DomainError{
		Code:    "SMS_AMOUNT_MISSING",
		Message: "amount not found in SMS, please contact support",
		Kind:    KindValidation,
	}
	// ErrOperationFailed is the single fatal error returned after retry
	// exhaustion; the specific cause is deliberately not exposed.
	ErrOperationFailed = &DomainError{
		Code:    "OPERATION_FAILED",
		Message: "could not complete operation",
		Kind:    KindTransient,
	}
)
