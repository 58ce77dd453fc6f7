package review

import (
	"context"
	"testing"

	"tindahan-be/internal/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, params CreateReviewParams) (*Review, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Review), args.Error(1)
}

func (m *MockRepository) ListByProduct(ctx context.Context, productID string) ([]*ProductReview, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ProductReview), args.Error(1)
}

type MockOrderGetter struct {
	mock.Mock
}

func (m *MockOrderGetter) GetOrder(ctx context.Context, orderID string) (*order.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func receivedOrder() *order.Order {
	return &order.Order{
		ID:      "order-1",
		BuyerID: 2,
		Status:  order.StatusReceived,
		Lines: []order.Line{
			{ProductID: "prod-1", Quantity: 1},
			{ProductID: "prod-2", Quantity: 2, Rated: true},
		},
	}
}

func validParams() CreateReviewParams {
	return CreateReviewParams{UserID: 2, OrderID: "order-1", ProductID: "prod-1", Rating: 4, Comment: "solid"}
}

func TestService_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		orders := new(MockOrderGetter)
		svc := NewService(repo, orders)
		params := validParams()

		orders.On("GetOrder", mock.Anything, "order-1").Return(receivedOrder(), nil)
		repo.On("Create", mock.Anything, params).Return(&Review{ID: 1, Rating: 4}, nil)

		rev, err := svc.Create(context.Background(), params)
		require.NoError(t, err)
		assert.Equal(t, uint(1), rev.ID)
	})

	t.Run("Rating out of range", func(t *testing.T) {
		repo := new(MockRepository)
		orders := new(MockOrderGetter)
		svc := NewService(repo, orders)

		for _, rating := range []int{0, 6, -1} {
			params := validParams()
			params.Rating = rating
			_, err := svc.Create(context.Background(), params)
			assert.ErrorIs(t, err, ErrInvalidRating)
		}
		orders.AssertNotCalled(t, "GetOrder", mock.Anything, mock.Anything)
	})

	t.Run("Order not found", func(t *testing.T) {
		repo := new(MockRepository)
		orders := new(MockOrderGetter)
		svc := NewService(repo, orders)

		orders.On("GetOrder", mock.Anything, "order-1").Return(nil, order.ErrOrderNotFound)

		_, err := svc.Create(context.Background(), validParams())
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})

	t.Run("Someone else's order", func(t *testing.T) {
		repo := new(MockRepository)
		orders := new(MockOrderGetter)
		svc := NewService(repo, orders)

		orders.On("GetOrder", mock.Anything, "order-1").Return(receivedOrder(), nil)

		params := validParams()
		params.UserID = 9
		_, err := svc.Create(context.Background(), params)
		assert.ErrorIs(t, err, ErrNotOrderOwner)
	})

	t.Run("Product not in order", func(t *testing.T) {
		repo := new(MockRepository)
		orders := new(MockOrderGetter)
		svc := NewService(repo, orders)

		orders.On("GetOrder", mock.Anything, "order-1").Return(receivedOrder(), nil)

		params := validParams()
		params.ProductID = "prod-9"
		_, err := svc.Create(context.Background(), params)
		assert.ErrorIs(t, err, ErrProductNotInOrder)
	})

	t.Run("Order not received yet", func(t *testing.T) {
		repo := new(MockRepository)
		orders := new(MockOrderGetter)
		svc := NewService(repo, orders)

		for _, status := range []order.Status{order.StatusPending, order.StatusPreparing, order.StatusShipped} {
			o := receivedOrder()
			o.Status = status
			orders.ExpectedCalls = nil
			orders.On("GetOrder", mock.Anything, "order-1").Return(o, nil)

			_, err := svc.Create(context.Background(), validParams())
			assert.ErrorIs(t, err, ErrOrderNotReceived)
		}
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Already rated line", func(t *testing.T) {
		repo := new(MockRepository)
		orders := new(MockOrderGetter)
		svc := NewService(repo, orders)

		orders.On("GetOrder", mock.Anything, "order-1").Return(receivedOrder(), nil)

		params := validParams()
		params.ProductID = "prod-2"
		_, err := svc.Create(context.Background(), params)
		assert.ErrorIs(t, err, ErrAlreadyReviewed)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Ownership outranks missing product", func(t *testing.T) {
		repo := new(MockRepository)
		orders := new(MockOrderGetter)
		svc := NewService(repo, orders)

		orders.On("GetOrder", mock.Anything, "order-1").Return(receivedOrder(), nil)

		// Wrong user AND unknown product: ownership is checked first.
		params := validParams()
		params.UserID = 9
		params.ProductID = "prod-9"
		_, err := svc.Create(context.Background(), params)
		assert.ErrorIs(t, err, ErrNotOrderOwner)
	})

	t.Run("Repository duplicate surfaces as already reviewed", func(t *testing.T) {
		repo := new(MockRepository)
		orders := new(MockOrderGetter)
		svc := NewService(repo, orders)

		// The line flag lags behind a concurrent insert; the unique index is
		// the backstop.
		o := receivedOrder()
		orders.On("GetOrder", mock.Anything, "order-1").Return(o, nil)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil, ErrAlreadyReviewed)

		_, err := svc.Create(context.Background(), validParams())
		assert.ErrorIs(t, err, ErrAlreadyReviewed)
	})
}

func TestService_ListByProduct(t *testing.T) {
	repo := new(MockRepository)
	orders := new(MockOrderGetter)
	svc := NewService(repo, orders)

	repo.On("ListByProduct", mock.Anything, "prod-1").
		Return([]*ProductReview{{Username: "maria"}}, nil)

	reviews, err := svc.ListByProduct(context.Background(), "prod-1")
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
}
