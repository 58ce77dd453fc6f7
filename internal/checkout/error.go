package checkout

import (
	"errors"
	"fmt"
)

var ErrEmptyCart = errors.New("no items in the cart, cannot place an empty order")

// SellerLookupError means a cart line references a seller that no longer
// resolves. The whole checkout aborts; skipping the line silently would
// quietly drop part of the buyer's cart.
type SellerLookupError struct {
	ProductID string
	SellerID  uint
}

func (e *SellerLookupError) Error() string {
	return fmt.Sprintf("seller %d for product %s not found", e.SellerID, e.ProductID)
}
