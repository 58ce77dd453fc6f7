package cart

import "errors"

var (
	// -- Authorization --
	ErrBuyerOnly = errors.New("only buyers can use the cart")

	// -- Validation & Input --
	ErrInvalidQuantity = errors.New("invalid cart quantity")

	// -- Resource State --
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")

	// -- Database & Operation Failures --
	ErrFailedGetCart    = errors.New("failed to get cart")
	ErrFailedUpsertCart = errors.New("failed to write cart item")
	ErrFailedRemoveCart = errors.New("failed to remove cart item")
	ErrFailedClearCart  = errors.New("failed to clear cart")
)
