package product

import "time"

type Product struct {
	ID           string
	Title        string
	Description  *string
	Price        float64
	Stock        int
	QuantitySold int
	Images       []string
	Tags         []string
	CategoryID   uint
	SellerID     uint
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type NewProductInput struct {
	Title       string
	Description *string
	Price       float64
	Stock       int
	Images      []string
	Tags        []string
	CategoryID  uint
}

type UpdateProductInput struct {
	Title       *string
	Description *string
	Price       *float64
	Images      []string
	Tags        []string
	CategoryID  *uint
}
