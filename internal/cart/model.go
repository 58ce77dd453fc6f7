package cart

import "time"

type CartItem struct {
	ID         uint
	UserID     uint
	ProductID  string
	Quantity   int
	PriceAtAdd float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SnapshotRow is one cart line with its product dereferenced, as consumed by
// the checkout pipeline.
type SnapshotRow struct {
	ProductID  string
	SellerID   uint
	Title      string
	Price      float64
	Stock      int
	Quantity   int
	PriceAtAdd float64
}

type AddToCartParams struct {
	UserID    uint
	ProductID string
	Quantity  int
}

type UpdateQuantityParams struct {
	UserID    uint
	ProductID string
	Quantity  int
}
