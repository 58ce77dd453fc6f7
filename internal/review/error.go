package review

import "errors"

var (
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
	ErrNotOrderOwner     = errors.New("order does not belong to this user")
	ErrProductNotInOrder = errors.New("product is not part of this order")
	ErrOrderNotReceived  = errors.New("order has not been received yet")
	ErrAlreadyReviewed   = errors.New("product already reviewed for this order")
)
