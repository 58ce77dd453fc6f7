package order

import "errors"

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrInvalidStatus       = errors.New("invalid order status")
	ErrForbiddenTransition = errors.New("caller may not set this order status")
	ErrStatusConflict      = errors.New("order status changed concurrently")
	ErrDuplicateCheckout   = errors.New("orders for this checkout already exist")
	ErrNotOrderParticipant = errors.New("caller is neither buyer nor seller of this order")
)
