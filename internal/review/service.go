package review

import (
	"context"

	"tindahan-be/internal/logger"
	"tindahan-be/internal/order"

	"go.uber.org/zap"
)

// OrderGetter is the slice of the order repository the eligibility gate needs.
type OrderGetter interface {
	GetOrder(ctx context.Context, orderID string) (*order.Order, error)
}

type Service interface {
	Create(ctx context.Context, params CreateReviewParams) (*Review, error)
	ListByProduct(ctx context.Context, productID string) ([]*ProductReview, error)
}

type service struct {
	repo   Repository
	orders OrderGetter
}

func NewService(repo Repository, orders OrderGetter) Service {
	return &service{repo: repo, orders: orders}
}

// Create checks eligibility in a fixed order, so a caller failing several
// conditions always sees the same error: the order must exist, belong to the
// reviewer, contain the product, be received, and not carry a review for the
// product yet.
func (s *service) Create(ctx context.Context, params CreateReviewParams) (*Review, error) {
	if params.Rating < 1 || params.Rating > 5 {
		return nil, ErrInvalidRating
	}

	o, err := s.orders.GetOrder(ctx, params.OrderID)
	if err != nil {
		return nil, err
	}

	if o.BuyerID != params.UserID {
		return nil, ErrNotOrderOwner
	}

	if !o.ContainsProduct(params.ProductID) {
		return nil, ErrProductNotInOrder
	}

	if o.Status != order.StatusReceived {
		return nil, ErrOrderNotReceived
	}

	for _, line := range o.Lines {
		if line.ProductID == params.ProductID && line.Rated {
			return nil, ErrAlreadyReviewed
		}
	}

	rev, err := s.repo.Create(ctx, params)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("review created",
		zap.Uint("user_id", params.UserID),
		zap.String("order_id", params.OrderID),
		zap.String("product_id", params.ProductID),
		zap.Int("rating", params.Rating),
	)

	return rev, nil
}

func (s *service) ListByProduct(ctx context.Context, productID string) ([]*ProductReview, error) {
	return s.repo.ListByProduct(ctx, productID)
}
