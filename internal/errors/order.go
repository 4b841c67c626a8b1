package errors

var (
	ErrCartEmpty = &DomainError{
		Code:    "CART_EMPTY",
		Message: "cart is empty",
		Kind:    KindValidation,
	}
	ErrOrderNotFound = &DomainError{
		Code:    "ORDER_NOT_FOUND",
		Message: "order not found",
		Kind:    KindNotFound,
	}
	ErrProductNotFound = &DomainError{
		Code:    "PRODUCT_NOT_FOUND",
		Message: "product not found",
		Kind:    KindNotFound,
	}
	ErrOrderItemNotFound = &DomainError{
		Code:    "ORDER_ITEM_NOT_FOUND",
		Message: "order item not found",
		Kind:    KindNotFound,
	}
	ErrInvalidOrderStatus = &DomainError{
		Code:    "INVALID_ORDER_STATUS",
		Message: "invalid order status",
		Kind:    KindValidation,
	}
	ErrInvalidStatusTransition = &DomainError{
		Code:    "INVALID_STATUS_TRANSITION",
		Message: "order item status transition not allowed",
		Kind:    KindConflict,
	}
)
