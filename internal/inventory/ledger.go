package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tindahan-be/internal/logger"

	"go.uber.org/zap"
)

// StockStore is the slice of the product catalog the ledger needs. Stock is
// never mutated anywhere else.
type StockStore interface {
	ReserveStock(ctx context.Context, id string, qty int) (int, error)
	ReleaseStock(ctx context.Context, id string, qty int) error
	AdjustStock(ctx context.Context, id string, delta int) (int, error)
	GetStock(ctx context.Context, id string) (int, error)
}

// Ledger owns per-product stock counts.
type Ledger interface {
	// Reserve atomically decrements stock by qty and bumps quantity_sold.
	// Two concurrent reservations can never both succeed when only one has
	// sufficient stock. On insufficient stock nothing changes and an
	// *InsufficientStockError is returned.
	Reserve(ctx context.Context, productID string, qty int) (int, error)

	// Release re-credits a reservation (compensation for an aborted checkout).
	Release(ctx context.Context, productID string, qty int) error

	// Adjust applies a manual stock delta (seller restock); it fails rather
	// than letting stock go negative.
	Adjust(ctx context.Context, productID string, delta int) (int, error)
}

type ledger struct {
	store StockStore
}

func NewLedger(store StockStore) Ledger {
	return &ledger{store: store}
}

func (l *ledger) Reserve(ctx context.Context, productID string, qty int) (int, error) {
	if qty <= 0 {
		return 0, fmt.Errorf("invalid reservation quantity: %d", qty)
	}

	newStock, err := l.store.ReserveStock(ctx, productID, qty)
	if err == nil {
		logger.FromCtx(ctx).Debug("stock reserved",
			zap.String("product_id", productID),
			zap.Int("quantity", qty),
			zap.Int("new_stock", newStock),
		)
		return newStock, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to reserve stock: %w", err)
	}

	// The conditional update matched nothing: either the product is gone or
	// there is not enough stock. Read the count to tell the caller which.
	available, serr := l.store.GetStock(ctx, productID)
	if serr != nil {
		return 0, serr
	}

	return 0, &InsufficientStockError{
		ProductID: productID,
		Requested: qty,
		Available: available,
	}
}

func (l *ledger) Release(ctx context.Context, productID string, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("invalid release quantity: %d", qty)
	}

	if err := l.store.ReleaseStock(ctx, productID, qty); err != nil {
		return err
	}

	logger.FromCtx(ctx).Debug("stock released",
		zap.String("product_id", productID),
		zap.Int("quantity", qty),
	)
	return nil
}

func (l *ledger) Adjust(ctx context.Context, productID string, delta int) (int, error) {
	newStock, err := l.store.AdjustStock(ctx, productID, delta)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("stock adjustment by %d rejected for product %s", delta, productID)
		}
		return 0, fmt.Errorf("failed to adjust stock: %w", err)
	}
	return newStock, nil
}
