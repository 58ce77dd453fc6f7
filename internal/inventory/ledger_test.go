package inventory

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStockStore struct {
	mock.Mock
}

func (m *MockStockStore) ReserveStock(ctx context.Context, id string, qty int) (int, error) {
	args := m.Called(ctx, id, qty)
	return args.Int(0), args.Error(1)
}

func (m *MockStockStore) ReleaseStock(ctx context.Context, id string, qty int) error {
	args := m.Called(ctx, id, qty)
	return args.Error(0)
}

func (m *MockStockStore) AdjustStock(ctx context.Context, id string, delta int) (int, error) {
	args := m.Called(ctx, id, delta)
	return args.Int(0), args.Error(1)
}

func (m *MockStockStore) GetStock(ctx context.Context, id string) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func TestLedger_Reserve(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		store := new(MockStockStore)
		ledger := NewLedger(store)

		store.On("ReserveStock", mock.Anything, "prod-1", 2).Return(3, nil)

		newStock, err := ledger.Reserve(context.Background(), "prod-1", 2)
		require.NoError(t, err)
		assert.Equal(t, 3, newStock)
		store.AssertExpectations(t)
	})

	t.Run("Insufficient stock", func(t *testing.T) {
		store := new(MockStockStore)
		ledger := NewLedger(store)

		store.On("ReserveStock", mock.Anything, "prod-1", 5).Return(0, sql.ErrNoRows)
		store.On("GetStock", mock.Anything, "prod-1").Return(1, nil)

		_, err := ledger.Reserve(context.Background(), "prod-1", 5)

		var insufficient *InsufficientStockError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, "prod-1", insufficient.ProductID)
		assert.Equal(t, 5, insufficient.Requested)
		assert.Equal(t, 1, insufficient.Available)
	})

	t.Run("Invalid quantity", func(t *testing.T) {
		store := new(MockStockStore)
		ledger := NewLedger(store)

		_, err := ledger.Reserve(context.Background(), "prod-1", 0)
		assert.Error(t, err)
		store.AssertNotCalled(t, "ReserveStock")
	})

	t.Run("Store failure", func(t *testing.T) {
		store := new(MockStockStore)
		ledger := NewLedger(store)

		store.On("ReserveStock", mock.Anything, "prod-1", 2).Return(0, errors.New("db down"))

		_, err := ledger.Reserve(context.Background(), "prod-1", 2)
		assert.Error(t, err)

		var insufficient *InsufficientStockError
		assert.False(t, errors.As(err, &insufficient))
	})
}

func TestLedger_Release(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		store := new(MockStockStore)
		ledger := NewLedger(store)

		store.On("ReleaseStock", mock.Anything, "prod-1", 2).Return(nil)

		assert.NoError(t, ledger.Release(context.Background(), "prod-1", 2))
	})

	t.Run("Invalid quantity", func(t *testing.T) {
		store := new(MockStockStore)
		ledger := NewLedger(store)

		assert.Error(t, ledger.Release(context.Background(), "prod-1", -1))
		store.AssertNotCalled(t, "ReleaseStock")
	})
}

func TestLedger_Adjust(t *testing.T) {
	t.Run("Restock", func(t *testing.T) {
		store := new(MockStockStore)
		ledger := NewLedger(store)

		store.On("AdjustStock", mock.Anything, "prod-1", 10).Return(15, nil)

		newStock, err := ledger.Adjust(context.Background(), "prod-1", 10)
		require.NoError(t, err)
		assert.Equal(t, 15, newStock)
	})

	t.Run("Rejected negative result", func(t *testing.T) {
		store := new(MockStockStore)
		ledger := NewLedger(store)

		store.On("AdjustStock", mock.Anything, "prod-1", -99).Return(0, sql.ErrNoRows)

		_, err := ledger.Adjust(context.Background(), "prod-1", -99)
		assert.Error(t, err)
	})
}

func TestInsufficientStockError_Message(t *testing.T) {
	err := &InsufficientStockError{ProductID: "prod-9", Requested: 3, Available: 1}
	assert.Contains(t, err.Error(), "prod-9")
	assert.Contains(t, err.Error(), "requested 3")
	assert.Contains(t, err.Error(), "available 1")
}
