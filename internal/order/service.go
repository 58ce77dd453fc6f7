package order

import (
	"context"

	"tindahan-be/internal/logger"
	"tindahan-be/internal/transport"

	"go.uber.org/zap"
)

type Service interface {
	// UpdateStatus moves an order to the given status subject to role
	// guards. Sellers set "preparing to ship" and "shipped"; buyers set
	// "product received". Sequencing between statuses is deliberately not
	// enforced; the guard is about who, not when.
	UpdateStatus(ctx context.Context, actor transport.Actor, orderID string, next Status) (*Order, error)

	GetOrderDetail(ctx context.Context, actor transport.Actor, orderID string) (*Order, error)
	ListByBuyer(ctx context.Context, actor transport.Actor) ([]*Order, error)
	ListBySeller(ctx context.Context, actor transport.Actor) ([]*Order, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) UpdateStatus(ctx context.Context, actor transport.Actor, orderID string, next Status) (*Order, error) {
	if !next.Valid() {
		return nil, ErrInvalidStatus
	}

	o, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	switch next {
	case StatusPreparing, StatusShipped:
		if actor.UserID != o.SellerID {
			return nil, ErrForbiddenTransition
		}
	case StatusReceived:
		if actor.UserID != o.BuyerID {
			return nil, ErrForbiddenTransition
		}
	}

	if err := s.repo.UpdateStatus(ctx, orderID, o.Status, next); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("order status updated",
		zap.String("order_id", orderID),
		zap.String("from", string(o.Status)),
		zap.String("to", string(next)),
		zap.Uint("actor_id", actor.UserID),
	)

	o.Status = next
	return o, nil
}

func (s *service) GetOrderDetail(ctx context.Context, actor transport.Actor, orderID string) (*Order, error) {
	o, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if actor.UserID != o.BuyerID && actor.UserID != o.SellerID {
		return nil, ErrNotOrderParticipant
	}
	return o, nil
}

func (s *service) ListByBuyer(ctx context.Context, actor transport.Actor) ([]*Order, error) {
	return s.repo.FindByBuyer(ctx, actor.UserID)
}

func (s *service) ListBySeller(ctx context.Context, actor transport.Actor) ([]*Order, error) {
	return s.repo.FindBySeller(ctx, actor.UserID)
}
