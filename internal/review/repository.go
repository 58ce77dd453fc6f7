package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tindahan-be/internal/user"

	"github.com/lib/pq"
)

type Repository interface {
	Create(ctx context.Context, params CreateReviewParams) (*Review, error)
	ListByProduct(ctx context.Context, productID string) ([]*ProductReview, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// Create inserts the review and flips the matching line's rated flag in one
// transaction, so the eligibility gate and the review can never disagree.
func (r *repository) Create(ctx context.Context, params CreateReviewParams) (*Review, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin review transaction: %w", err)
	}
	defer tx.Rollback()

	insert := `
		INSERT INTO reviews (user_id, order_id, product_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	rev := Review{
		UserID:    params.UserID,
		OrderID:   params.OrderID,
		ProductID: params.ProductID,
		Rating:    params.Rating,
		Comment:   params.Comment,
	}
	err = tx.QueryRowContext(ctx, insert,
		params.UserID, params.OrderID, params.ProductID, params.Rating, params.Comment,
	).Scan(&rev.ID, &rev.CreatedAt, &rev.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == user.PgUniqueViolation {
			return nil, ErrAlreadyReviewed
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	flip := `
		UPDATE order_lines
		SET rated = true
		WHERE order_id = $1 AND product_id = $2 AND rated = false
	`
	if _, err := tx.ExecContext(ctx, flip, params.OrderID, params.ProductID); err != nil {
		return nil, fmt.Errorf("failed to mark order line rated: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit review: %w", err)
	}

	return &rev, nil
}

func (r *repository) ListByProduct(ctx context.Context, productID string) ([]*ProductReview, error) {
	query := `
		SELECT r.id, r.user_id, r.order_id, r.product_id, r.rating, r.comment,
		       r.created_at, r.updated_at, u.username
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.product_id = $1
		ORDER BY r.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*ProductReview
	for rows.Next() {
		var pr ProductReview
		if err := rows.Scan(
			&pr.ID, &pr.UserID, &pr.OrderID, &pr.ProductID, &pr.Rating, &pr.Comment,
			&pr.CreatedAt, &pr.UpdatedAt, &pr.Username,
		); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, &pr)
	}

	return reviews, rows.Err()
}
