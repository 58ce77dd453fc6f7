package cart

import (
	"context"
	"database/sql"
	"fmt"
)

type Repository interface {
	GetItemByUserAndProduct(ctx context.Context, userID uint, productID string) (*CartItem, error)
	CreateItem(ctx context.Context, params AddToCartParams, priceAtAdd float64) (*CartItem, error)
	UpdateQuantity(ctx context.Context, params UpdateQuantityParams) error
	RemoveItem(ctx context.Context, userID uint, productID string) error
	GetItems(ctx context.Context, userID uint) ([]*CartItem, error)

	// Snapshot resolves every line item's product for checkout.
	Snapshot(ctx context.Context, userID uint) ([]*SnapshotRow, error)

	// ClearCart empties the cart without deleting it; a user's cart is just
	// the set of rows keyed by their id.
	ClearCart(ctx context.Context, userID uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetItemByUserAndProduct(ctx context.Context, userID uint, productID string) (*CartItem, error) {
	query := `
		SELECT id, user_id, product_id, quantity, price_at_add, created_at, updated_at
		FROM carts
		WHERE user_id = $1 AND product_id = $2
	`

	var item CartItem
	err := r.db.QueryRowContext(ctx, query, userID, productID).Scan(
		&item.ID, &item.UserID, &item.ProductID, &item.Quantity,
		&item.PriceAtAdd, &item.CreatedAt, &item.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedGetCart, err)
	}

	return &item, nil
}

func (r *repository) CreateItem(ctx context.Context, params AddToCartParams, priceAtAdd float64) (*CartItem, error) {
	query := `
		INSERT INTO carts (user_id, product_id, quantity, price_at_add)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, product_id, quantity, price_at_add, created_at, updated_at
	`

	var item CartItem
	err := r.db.QueryRowContext(ctx, query,
		params.UserID, params.ProductID, params.Quantity, priceAtAdd,
	).Scan(
		&item.ID, &item.UserID, &item.ProductID, &item.Quantity,
		&item.PriceAtAdd, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedUpsertCart, err)
	}

	return &item, nil
}

func (r *repository) UpdateQuantity(ctx context.Context, params UpdateQuantityParams) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE carts SET quantity = $1, updated_at = NOW()
		WHERE user_id = $2 AND product_id = $3
	`, params.Quantity, params.UserID, params.ProductID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedUpsertCart, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *repository) RemoveItem(ctx context.Context, userID uint, productID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM carts WHERE user_id = $1 AND product_id = $2
	`, userID, productID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedRemoveCart, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *repository) GetItems(ctx context.Context, userID uint) ([]*CartItem, error) {
	query := `
		SELECT id, user_id, product_id, quantity, price_at_add, created_at, updated_at
		FROM carts
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedGetCart, err)
	}
	defer rows.Close()

	var items []*CartItem
	for rows.Next() {
		var item CartItem
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.ProductID, &item.Quantity,
			&item.PriceAtAdd, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedGetCart, err)
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

func (r *repository) Snapshot(ctx context.Context, userID uint) ([]*SnapshotRow, error) {
	query := `
		SELECT
			c.product_id,
			p.seller_id,
			p.title,
			p.price,
			p.stock,
			c.quantity,
			c.price_at_add
		FROM carts c
		JOIN products p ON p.id = c.product_id
		WHERE c.user_id = $1
		ORDER BY c.created_at
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedGetCart, err)
	}
	defer rows.Close()

	var out []*SnapshotRow
	for rows.Next() {
		var row SnapshotRow
		if err := rows.Scan(
			&row.ProductID, &row.SellerID, &row.Title, &row.Price,
			&row.Stock, &row.Quantity, &row.PriceAtAdd,
		); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedGetCart, err)
		}
		out = append(out, &row)
	}
	return out, rows.Err()
}

func (r *repository) ClearCart(ctx context.Context, userID uint) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM carts WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedClearCart, err)
	}
	return nil
}
