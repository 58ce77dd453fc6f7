package inventory

import "fmt"

// InsufficientStockError reports exactly which product failed a reservation
// and how short it was, so the caller can act on it.
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf(
		"insufficient stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available,
	)
}
