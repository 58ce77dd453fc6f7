package order

import "time"

type Status string

// The four order statuses, in intended lifecycle order. The machine enforces
// membership and who may set a status, not sequencing (see service.go).
const (
	StatusPending   Status = "pending"
	StatusPreparing Status = "preparing to ship"
	StatusShipped   Status = "shipped"
	StatusReceived  Status = "product received"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPreparing, StatusShipped, StatusReceived:
		return true
	}
	return false
}

// ShippingInfo is copied onto every order at checkout; it is a snapshot, not
// a live reference.
type ShippingInfo struct {
	Name          string
	ContactNumber string
	Address       string
	City          string
	PostalCode    string
}

// Line is one purchased product within an order. Price is the price at
// purchase time; later catalog changes never touch it.
type Line struct {
	ProductID string
	Title     string
	Quantity  int
	Price     float64
	ItemTotal float64
	Rated     bool
}

// Order is the per-seller record created from a checkout. Everything except
// Status and each line's Rated flag is immutable once created.
type Order struct {
	ID         string
	Number     string
	CheckoutID string
	BuyerID    uint
	SellerID   uint
	Lines      []Line
	Shipping   ShippingInfo
	Total      float64
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ContainsProduct reports whether the order has a line for the product.
func (o *Order) ContainsProduct(productID string) bool {
	for _, l := range o.Lines {
		if l.ProductID == productID {
			return true
		}
	}
	return false
}
