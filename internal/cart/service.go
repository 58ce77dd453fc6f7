package cart

import (
	"context"

	"tindahan-be/internal/product"
	"tindahan-be/internal/transport"
	"tindahan-be/internal/user"
)

// Service defines the business logic for carts.
type Service interface {
	AddToCart(ctx context.Context, actor transport.Actor, productID string, quantity int) (*CartItem, error)
	UpdateQuantity(ctx context.Context, actor transport.Actor, productID string, quantity int) error
	RemoveFromCart(ctx context.Context, actor transport.Actor, productID string) error
	GetCart(ctx context.Context, actor transport.Actor) ([]*CartItem, error)
	ClearCart(ctx context.Context, userID uint) error
}

// ProductGetter is the slice of the catalog the cart needs.
type ProductGetter interface {
	GetByID(ctx context.Context, id string) (*product.Product, error)
}

type service struct {
	repo     Repository
	products ProductGetter
}

func NewService(repo Repository, products ProductGetter) Service {
	return &service{repo: repo, products: products}
}

// AddToCart records a product in the buyer's cart at the product's current
// price. Adding an already-present product bumps its quantity instead.
func (s *service) AddToCart(ctx context.Context, actor transport.Actor, productID string, quantity int) (*CartItem, error) {
	if actor.Role != user.RoleBuyer {
		return nil, ErrBuyerOnly
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if err == product.ErrProductNotFound {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	existing, err := s.repo.GetItemByUserAndProduct(ctx, actor.UserID, productID)
	if err != nil {
		return nil, err
	}

	finalQty := quantity
	if existing != nil {
		finalQty += existing.Quantity
	}

	if p.Stock < finalQty {
		return nil, ErrInsufficientStock
	}

	if existing == nil {
		return s.repo.CreateItem(ctx, AddToCartParams{
			UserID:    actor.UserID,
			ProductID: productID,
			Quantity:  quantity,
		}, p.Price)
	}

	err = s.repo.UpdateQuantity(ctx, UpdateQuantityParams{
		UserID:    actor.UserID,
		ProductID: productID,
		Quantity:  finalQty,
	})
	if err != nil {
		return nil, err
	}

	existing.Quantity = finalQty
	return existing, nil
}

// UpdateQuantity sets a line item's quantity; dropping to zero or below
// removes the line entirely, a quantity below one is never retained.
func (s *service) UpdateQuantity(ctx context.Context, actor transport.Actor, productID string, quantity int) error {
	if quantity < 1 {
		return s.repo.RemoveItem(ctx, actor.UserID, productID)
	}

	return s.repo.UpdateQuantity(ctx, UpdateQuantityParams{
		UserID:    actor.UserID,
		ProductID: productID,
		Quantity:  quantity,
	})
}

func (s *service) RemoveFromCart(ctx context.Context, actor transport.Actor, productID string) error {
	return s.repo.RemoveItem(ctx, actor.UserID, productID)
}

func (s *service) GetCart(ctx context.Context, actor transport.Actor) ([]*CartItem, error) {
	return s.repo.GetItems(ctx, actor.UserID)
}

func (s *service) ClearCart(ctx context.Context, userID uint) error {
	return s.repo.ClearCart(ctx, userID)
}
