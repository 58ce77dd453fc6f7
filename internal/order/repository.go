package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

type Repository interface {
	// CreateOrders persists every order of one checkout in a single
	// transaction: either all sub-orders exist afterwards or none do.
	CreateOrders(ctx context.Context, orders []*Order) error

	GetOrder(ctx context.Context, id string) (*Order, error)

	// UpdateStatus writes the new status only when the current one still
	// matches what the caller read. A miss surfaces as ErrStatusConflict.
	UpdateStatus(ctx context.Context, id string, from, to Status) error

	FindByBuyer(ctx context.Context, buyerID uint) ([]*Order, error)
	FindBySeller(ctx context.Context, sellerID uint) ([]*Order, error)
	FindByCheckoutID(ctx context.Context, checkoutID string) ([]*Order, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateOrders(ctx context.Context, orders []*Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, o := range orders {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO orders (
				id, order_number, checkout_id, buyer_id, seller_id,
				shipping_name, shipping_contact, shipping_address,
				shipping_city, shipping_postal_code,
				order_total, order_status
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		`,
			o.ID, o.Number, o.CheckoutID, o.BuyerID, o.SellerID,
			o.Shipping.Name, o.Shipping.ContactNumber, o.Shipping.Address,
			o.Shipping.City, o.Shipping.PostalCode,
			o.Total, o.Status,
		)
		if err != nil {
			// The (checkout_id, seller_id) unique constraint catches a
			// concurrent submission of the same checkout attempt.
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Constraint == "orders_checkout_seller_key" {
				return ErrDuplicateCheckout
			}
			return fmt.Errorf("failed to insert order: %w", err)
		}

		for i, line := range o.Lines {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO order_lines (
					order_id, position, product_id, title, quantity, price, item_total, rated
				) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
			`,
				o.ID, i, line.ProductID, line.Title, line.Quantity,
				line.Price, line.ItemTotal, line.Rated,
			)
			if err != nil {
				return fmt.Errorf("failed to insert order line: %w", err)
			}
		}
	}

	return tx.Commit()
}

const orderColumns = `
	id, order_number, checkout_id, buyer_id, seller_id,
	shipping_name, shipping_contact, shipping_address,
	shipping_city, shipping_postal_code,
	order_total, order_status, created_at, updated_at
`

func scanOrder(row interface{ Scan(...any) error }) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.Number, &o.CheckoutID, &o.BuyerID, &o.SellerID,
		&o.Shipping.Name, &o.Shipping.ContactNumber, &o.Shipping.Address,
		&o.Shipping.City, &o.Shipping.PostalCode,
		&o.Total, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) GetOrder(ctx context.Context, id string) (*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	o, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if err := r.loadLines(ctx, []*Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repository) loadLines(ctx context.Context, orders []*Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, 0, len(orders))
	byID := make(map[string]*Order, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
		byID[o.ID] = o
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT order_id, product_id, title, quantity, price, item_total, rated
		FROM order_lines
		WHERE order_id = ANY($1)
		ORDER BY order_id, position
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load order lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID string
		var line Line
		if err := rows.Scan(
			&orderID, &line.ProductID, &line.Title, &line.Quantity,
			&line.Price, &line.ItemTotal, &line.Rated,
		); err != nil {
			return fmt.Errorf("failed to scan order line: %w", err)
		}
		if o, ok := byID[orderID]; ok {
			o.Lines = append(o.Lines, line)
		}
	}
	return rows.Err()
}

func (r *repository) UpdateStatus(ctx context.Context, id string, from, to Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET order_status = $3, updated_at = NOW()
		WHERE id = $1 AND order_status = $2
	`, id, from, to)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Either the order vanished or someone raced us on the status.
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, id,
		).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check order existence: %w", err)
		}
		if !exists {
			return ErrOrderNotFound
		}
		return ErrStatusConflict
	}
	return nil
}

func (r *repository) FindByBuyer(ctx context.Context, buyerID uint) ([]*Order, error) {
	return r.findBy(ctx, "buyer_id", buyerID)
}

func (r *repository) FindBySeller(ctx context.Context, sellerID uint) ([]*Order, error) {
	return r.findBy(ctx, "seller_id", sellerID)
}

func (r *repository) findBy(ctx context.Context, column string, userID uint) ([]*Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE ` + column + ` = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadLines(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) FindByCheckoutID(ctx context.Context, checkoutID string) ([]*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE checkout_id = $1 ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, checkoutID)
	if err != nil {
		return nil, fmt.Errorf("failed to find orders by checkout: %w", err)
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadLines(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}
