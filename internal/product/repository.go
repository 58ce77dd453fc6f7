package product

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Repository interface {
	Create(ctx context.Context, input NewProductInput, sellerID uint) (*Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Update(ctx context.Context, id string, input UpdateProductInput) (*Product, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*Product, error)
	GetFeatured(ctx context.Context) (*Product, error)

	// Stock mutation below this line is reserved for the inventory ledger.
	ReserveStock(ctx context.Context, id string, qty int) (int, error)
	ReleaseStock(ctx context.Context, id string, qty int) error
	AdjustStock(ctx context.Context, id string, delta int) (int, error)
	GetStock(ctx context.Context, id string) (int, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `
	id, title, description, price, stock, quantity_sold,
	images, tags, category_id, seller_id, created_at, updated_at
`

func scanProduct(row interface{ Scan(...any) error }) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Price, &p.Stock, &p.QuantitySold,
		pq.Array(&p.Images), pq.Array(&p.Tags), &p.CategoryID, &p.SellerID,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, input NewProductInput, sellerID uint) (*Product, error) {
	query := `
		INSERT INTO products (
			id, title, description, price, stock,
			images, tags, category_id, seller_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + productColumns

	row := r.db.QueryRowContext(ctx, query,
		uuid.New().String(), input.Title, input.Description, input.Price, input.Stock,
		pq.Array(input.Images), pq.Array(input.Tags), input.CategoryID, sellerID,
	)

	p, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return p, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

func (r *repository) Update(ctx context.Context, id string, input UpdateProductInput) (*Product, error) {
	query := `
		UPDATE products SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			price = COALESCE($4, price),
			images = COALESCE($5, images),
			tags = COALESCE($6, tags),
			category_id = COALESCE($7, category_id),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + productColumns

	var images, tags interface{}
	if input.Images != nil {
		images = pq.Array(input.Images)
	}
	if input.Tags != nil {
		tags = pq.Array(input.Tags)
	}

	row := r.db.QueryRowContext(ctx, query,
		id, input.Title, input.Description, input.Price, images, tags, input.CategoryID,
	)

	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return p, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) List(ctx context.Context, limit, offset int) ([]*Product, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var out []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *repository) GetFeatured(ctx context.Context) (*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY random() LIMIT 1`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query))
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get featured product: %w", err)
	}
	return p, nil
}

// ReserveStock decrements stock only when enough is available. The check and
// the decrement are one statement so concurrent checkouts cannot oversell.
func (r *repository) ReserveStock(ctx context.Context, id string, qty int) (int, error) {
	query := `
		UPDATE products
		SET stock = stock - $2, quantity_sold = quantity_sold + $2
		WHERE id = $1 AND stock >= $2
		RETURNING stock
	`

	var newStock int
	err := r.db.QueryRowContext(ctx, query, id, qty).Scan(&newStock)
	if err != nil {
		return 0, err
	}
	return newStock, nil
}

// ReleaseStock re-credits a reservation taken earlier in the same checkout.
func (r *repository) ReleaseStock(ctx context.Context, id string, qty int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET stock = stock + $2, quantity_sold = quantity_sold - $2
		WHERE id = $1
	`, id, qty)
	if err != nil {
		return fmt.Errorf("failed to release stock: %w", err)
	}
	return nil
}

func (r *repository) AdjustStock(ctx context.Context, id string, delta int) (int, error) {
	query := `
		UPDATE products
		SET stock = stock + $2, updated_at = NOW()
		WHERE id = $1 AND stock + $2 >= 0
		RETURNING stock
	`

	var newStock int
	err := r.db.QueryRowContext(ctx, query, id, delta).Scan(&newStock)
	if err != nil {
		return 0, err
	}
	return newStock, nil
}

func (r *repository) GetStock(ctx context.Context, id string) (int, error) {
	var stock int
	err := r.db.QueryRowContext(ctx, `SELECT stock FROM products WHERE id = $1`, id).Scan(&stock)
	if err == sql.ErrNoRows {
		return 0, ErrProductNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get stock: %w", err)
	}
	return stock, nil
}
