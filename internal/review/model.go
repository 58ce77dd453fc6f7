package review

import "time"

// Review is a buyer's rating of a product they received through an order.
// One review per (user, order, product).
type Review struct {
	ID        uint
	UserID    uint
	OrderID   string
	ProductID string
	Rating    int
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProductReview is a review joined with its author's username, as listed on a
// product page.
type ProductReview struct {
	Review
	Username string
}

type CreateReviewParams struct {
	UserID    uint
	OrderID   string
	ProductID string
	Rating    int
	Comment   string
}
