package product

import "errors"

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrNotProductSeller = errors.New("only the product's seller may modify it")
	ErrSellerOnly       = errors.New("only sellers can create products")
	ErrInvalidCategory  = errors.New("invalid category reference")
	ErrInvalidPrice     = errors.New("price must be positive")
)
