package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tindahan-be/internal/cart"
	"tindahan-be/internal/inventory"
	"tindahan-be/internal/logger"
	"tindahan-be/internal/metrics"
	"tindahan-be/internal/order"
	"tindahan-be/internal/user"
	"tindahan-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CartStore is the slice of the cart the checkout pipeline consumes.
type CartStore interface {
	Snapshot(ctx context.Context, userID uint) ([]*cart.SnapshotRow, error)
	ClearCart(ctx context.Context, userID uint) error
}

// SellerDirectory resolves seller references found in the cart.
type SellerDirectory interface {
	GetByID(ctx context.Context, id uint) (*user.User, error)
}

// OrderStore persists and recalls the orders produced by a checkout.
type OrderStore interface {
	CreateOrders(ctx context.Context, orders []*order.Order) error
	FindByCheckoutID(ctx context.Context, checkoutID string) ([]*order.Order, error)
}

type Service interface {
	// PlaceOrder turns the buyer's cart into one pending order per distinct
	// seller, decrementing stock as it goes. Stock mutation is all-or-
	// nothing across the whole cart: the first insufficient line aborts the
	// checkout and every reservation already taken in this attempt is
	// re-credited before the error is returned.
	//
	// checkoutID identifies the attempt. Passing the id of a checkout that
	// already produced orders returns those orders instead of reserving
	// stock again, which makes retries after a crash-between-persist-and-
	// cart-clear safe. An empty id starts a fresh attempt.
	PlaceOrder(ctx context.Context, buyerID uint, shipping order.ShippingInfo, checkoutID string) ([]*order.Order, error)
}

type service struct {
	carts   CartStore
	sellers SellerDirectory
	ledger  inventory.Ledger
	orders  OrderStore
	stats   *metrics.Checkout
}

func NewService(carts CartStore, sellers SellerDirectory, ledger inventory.Ledger, orders OrderStore, stats *metrics.Checkout) Service {
	if stats == nil {
		stats = &metrics.Checkout{}
	}
	return &service{
		carts:   carts,
		sellers: sellers,
		ledger:  ledger,
		orders:  orders,
		stats:   stats,
	}
}

// sellerGroup accumulates one seller's lines in cart encounter order.
type sellerGroup struct {
	sellerID uint
	lines    []order.Line
	total    float64
}

// reservation tracks an applied stock decrement so it can be compensated.
type reservation struct {
	productID string
	quantity  int
}

func (s *service) PlaceOrder(ctx context.Context, buyerID uint, shipping order.ShippingInfo, checkoutID string) ([]*order.Order, error) {
	s.stats.Attempts.Inc()
	timer := metrics.StartTimer()

	log := logger.FromCtx(ctx).With(
		zap.Uint("buyer_id", buyerID),
	)

	if checkoutID == "" {
		checkoutID = uuid.New().String()
	} else {
		// A retried attempt must not double-reserve stock.
		existing, err := s.orders.FindByCheckoutID(ctx, checkoutID)
		if err != nil {
			return nil, err
		}
		if len(existing) > 0 {
			log.Info("checkout already committed, returning existing orders",
				zap.String("checkout_id", checkoutID),
			)
			// The cart may not have been cleared before the original attempt
			// died; clearing is idempotent.
			if err := s.carts.ClearCart(ctx, buyerID); err != nil {
				log.Warn("cart clear on replay failed", zap.Error(err))
			}
			return existing, nil
		}
	}
	log = log.With(zap.String("checkout_id", checkoutID))

	snapshot, err := s.carts.Snapshot(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	if len(snapshot) == 0 {
		return nil, ErrEmptyCart
	}

	groups, sellerOrder, err := s.groupBySeller(ctx, snapshot)
	if err != nil {
		return nil, err
	}

	// Reserve stock line by line. The ledger does not roll anything back on
	// its own, so we keep the list of applied decrements and compensate on
	// the first failure.
	var applied []reservation
	for _, sellerID := range sellerOrder {
		for _, line := range groups[sellerID].lines {
			if _, err := s.ledger.Reserve(ctx, line.ProductID, line.Quantity); err != nil {
				s.rollback(ctx, applied)
				s.stats.StockFailures.Inc()
				log.Info("checkout aborted on stock reservation",
					zap.String("product_id", line.ProductID),
					zap.Error(err),
				)
				return nil, err
			}
			applied = append(applied, reservation{productID: line.ProductID, quantity: line.Quantity})
		}
	}

	now := time.Now()
	orders := make([]*order.Order, 0, len(sellerOrder))
	for _, sellerID := range sellerOrder {
		g := groups[sellerID]
		orders = append(orders, &order.Order{
			ID:         uuid.New().String(),
			Number:     utils.GenerateOrderNumber(),
			CheckoutID: checkoutID,
			BuyerID:    buyerID,
			SellerID:   g.sellerID,
			Lines:      g.lines,
			Shipping:   shipping,
			Total:      g.total,
			Status:     order.StatusPending,
			CreatedAt:  now,
		})
	}

	if err := s.orders.CreateOrders(ctx, orders); err != nil {
		// Nothing was persisted; give the stock back before surfacing.
		s.rollback(ctx, applied)

		// A concurrent submission of the same checkout won the insert race.
		// Its reservations stand; ours were just released, so return the
		// committed orders as a replay would.
		if errors.Is(err, order.ErrDuplicateCheckout) {
			existing, findErr := s.orders.FindByCheckoutID(ctx, checkoutID)
			if findErr == nil && len(existing) > 0 {
				log.Info("concurrent checkout already committed, returning existing orders")
				if clearErr := s.carts.ClearCart(ctx, buyerID); clearErr != nil {
					log.Warn("cart clear on replay failed", zap.Error(clearErr))
				}
				return existing, nil
			}
			return nil, err
		}

		return nil, fmt.Errorf("failed to persist orders: %w", err)
	}

	// Orders are durable from here on: a failed cart clear leaves a retry
	// path via checkoutID rather than a lost checkout.
	if err := s.carts.ClearCart(ctx, buyerID); err != nil {
		log.Error("orders created but cart clear failed", zap.Error(err))
	}

	s.stats.OrdersCreated.Add(uint64(len(orders)))
	log.Info("order placed",
		zap.Int("seller_count", len(orders)),
		zap.Duration("took", timer.Duration()),
	)

	return orders, nil
}

// groupBySeller partitions the cart snapshot into per-seller groups,
// preserving encounter order both across sellers and within each group.
// Every seller reference is resolved up front; an unresolvable seller fails
// the whole checkout.
func (s *service) groupBySeller(ctx context.Context, snapshot []*cart.SnapshotRow) (map[uint]*sellerGroup, []uint, error) {
	groups := make(map[uint]*sellerGroup)
	var sellerOrder []uint

	for _, row := range snapshot {
		if row.SellerID == 0 {
			return nil, nil, &SellerLookupError{ProductID: row.ProductID, SellerID: row.SellerID}
		}

		g, ok := groups[row.SellerID]
		if !ok {
			seller, err := s.sellers.GetByID(ctx, row.SellerID)
			if err != nil {
				if err == user.ErrUserNotFound {
					return nil, nil, &SellerLookupError{ProductID: row.ProductID, SellerID: row.SellerID}
				}
				return nil, nil, err
			}

			g = &sellerGroup{sellerID: seller.ID}
			groups[row.SellerID] = g
			sellerOrder = append(sellerOrder, row.SellerID)
		}

		// Price is snapshotted from the catalog at this instant; the order
		// total never follows later price edits.
		itemTotal := float64(row.Quantity) * row.Price
		g.lines = append(g.lines, order.Line{
			ProductID: row.ProductID,
			Title:     row.Title,
			Quantity:  row.Quantity,
			Price:     row.Price,
			ItemTotal: itemTotal,
		})
		g.total += itemTotal
	}

	return groups, sellerOrder, nil
}

// rollback re-credits applied reservations in reverse order. It must run to
// completion even when the checkout aborted because the request context was
// cancelled, so the compensation detaches from cancellation and gets its own
// deadline. Failures are logged and skipped: compensating what we can beats
// stopping halfway.
func (s *service) rollback(ctx context.Context, applied []reservation) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()

	for i := len(applied) - 1; i >= 0; i-- {
		r := applied[i]
		if err := s.ledger.Release(ctx, r.productID, r.quantity); err != nil {
			logger.FromCtx(ctx).Error("failed to release reserved stock",
				zap.String("product_id", r.productID),
				zap.Int("quantity", r.quantity),
				zap.Error(err),
			)
		}
	}
}
