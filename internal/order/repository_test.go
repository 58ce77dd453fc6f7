package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderRows(ids ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "order_number", "checkout_id", "buyer_id", "seller_id",
		"shipping_name", "shipping_contact", "shipping_address",
		"shipping_city", "shipping_postal_code",
		"order_total", "order_status", "created_at", "updated_at",
	})
	for _, id := range ids {
		rows.AddRow(
			id, "ORD-1", "chk-1", 2, 7,
			"Juan", "0917", "1 Main St", "Quezon City", "1100",
			20.0, "pending", time.Now(), time.Now(),
		)
	}
	return rows
}

func lineRows(orderIDs ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"order_id", "product_id", "title", "quantity", "price", "item_total", "rated",
	})
	for _, id := range orderIDs {
		rows.AddRow(id, "prod-1", "Product A", 2, 10.0, 20.0, false)
	}
	return rows
}

func TestRepository_CreateOrders(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	orders := []*Order{
		{
			ID: "order-1", Number: "ORD-1", CheckoutID: "chk-1",
			BuyerID: 2, SellerID: 7, Total: 20, Status: StatusPending,
			Lines: []Line{{ProductID: "prod-1", Title: "Product A", Quantity: 2, Price: 10, ItemTotal: 20}},
		},
		{
			ID: "order-2", Number: "ORD-2", CheckoutID: "chk-1",
			BuyerID: 2, SellerID: 9, Total: 20, Status: StatusPending,
			Lines: []Line{{ProductID: "prod-2", Title: "Product B", Quantity: 1, Price: 20, ItemTotal: 20}},
		},
	}

	t.Run("All sub-orders in one transaction", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO orders").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO order_lines").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO orders").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO order_lines").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.CreateOrders(context.Background(), orders))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Line failure rolls back everything", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO orders").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO order_lines").WillReturnError(errors.New("db error"))
		mock.ExpectRollback()

		assert.Error(t, repo.CreateOrders(context.Background(), orders))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Concurrent checkout hits the unique constraint", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO orders").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "orders_checkout_seller_key"})
		mock.ExpectRollback()

		err := repo.CreateOrders(context.Background(), orders)
		assert.ErrorIs(t, err, ErrDuplicateCheckout)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_GetOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success with lines", func(t *testing.T) {
		mock.ExpectQuery("SELECT(.+)FROM orders WHERE id").
			WithArgs("order-1").
			WillReturnRows(orderRows("order-1"))
		mock.ExpectQuery("SELECT(.+)FROM order_lines").
			WillReturnRows(lineRows("order-1"))

		o, err := repo.GetOrder(context.Background(), "order-1")
		require.NoError(t, err)
		assert.Equal(t, uint(2), o.BuyerID)
		require.Len(t, o.Lines, 1)
		assert.Equal(t, "prod-1", o.Lines[0].ProductID)
		assert.False(t, o.Lines[0].Rated)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT(.+)FROM orders WHERE id").
			WithArgs("ghost").
			WillReturnRows(orderRows())

		_, err := repo.GetOrder(context.Background(), "ghost")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE orders").
			WithArgs("order-1", StatusPending, StatusShipped).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateStatus(context.Background(), "order-1", StatusPending, StatusShipped))
	})

	t.Run("Stale expected status", func(t *testing.T) {
		mock.ExpectExec("UPDATE orders").
			WithArgs("order-1", StatusPending, StatusShipped).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("order-1").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		err := repo.UpdateStatus(context.Background(), "order-1", StatusPending, StatusShipped)
		assert.ErrorIs(t, err, ErrStatusConflict)
	})

	t.Run("Order gone", func(t *testing.T) {
		mock.ExpectExec("UPDATE orders").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT EXISTS").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		err := repo.UpdateStatus(context.Background(), "ghost", StatusPending, StatusShipped)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestRepository_FindByBuyer(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Newest first with lines attached", func(t *testing.T) {
		mock.ExpectQuery("SELECT(.+)FROM orders(.+)WHERE buyer_id(.+)ORDER BY created_at DESC").
			WithArgs(uint(2)).
			WillReturnRows(orderRows("order-2", "order-1"))
		mock.ExpectQuery("SELECT(.+)FROM order_lines").
			WillReturnRows(lineRows("order-1", "order-2"))

		orders, err := repo.FindByBuyer(context.Background(), 2)
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, "order-2", orders[0].ID)
		assert.Len(t, orders[0].Lines, 1)
	})

	t.Run("Empty result", func(t *testing.T) {
		mock.ExpectQuery("SELECT(.+)FROM orders(.+)WHERE buyer_id").
			WithArgs(uint(3)).
			WillReturnRows(orderRows())

		orders, err := repo.FindByBuyer(context.Background(), 3)
		assert.NoError(t, err)
		assert.Empty(t, orders)
	})
}

func TestRepository_FindByCheckoutID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("SELECT(.+)FROM orders WHERE checkout_id").
		WithArgs("chk-1").
		WillReturnRows(orderRows("order-1"))
	mock.ExpectQuery("SELECT(.+)FROM order_lines").
		WillReturnRows(lineRows("order-1"))

	orders, err := repo.FindByCheckoutID(context.Background(), "chk-1")
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}
