package repo

import (
	"errors"
	"testing"
	"time"

	"github.com/rogerio-castellano/inventory-console/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingMovementRepository struct {
	MovementRepository
}

func (failingMovementRepository) Log(models.StockMovement) (models.StockMovement, error) {
	return models.StockMovement{}, errors.New("disk full")
}

func TestSeparateStockRecorder_RecordsBoth(t *testing.T) {
	now := time.Now()
	products := NewInMemoryProductRepository(FixtureProducts(now)...)
	movements := NewInMemoryMovementRepository()
	rec := NewSeparateStockRecorder(products, movements)

	p, m, err := rec.RecordStock(models.StockMovement{ProductID: 2, MovementType: models.MovementIn, Quantity: 4, Reason: "Restock"})
	require.NoError(t, err)
	assert.Equal(t, 7, p.CurrentStock)
	assert.Equal(t, 3, m.PreviousStock)
	assert.Equal(t, 7, m.NewStock)
	assert.Equal(t, p.Name, m.ProductName)

	all, err := movements.All()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSeparateStockRecorder_RestoresStockWhenLogFails(t *testing.T) {
	now := time.Now()
	products := NewInMemoryProductRepository(FixtureProducts(now)...)
	rec := NewSeparateStockRecorder(products, failingMovementRepository{})

	_, _, err := rec.RecordStock(models.StockMovement{ProductID: 2, MovementType: models.MovementOut, Quantity: 2})
	require.ErrorContains(t, err, "disk full")

	p, err := products.GetByID(2)
	require.NoError(t, err)
	assert.Equal(t, 3, p.CurrentStock)
}

func TestSeparateStockRecorder_UnknownProduct(t *testing.T) {
	movements := NewInMemoryMovementRepository()
	rec := NewSeparateStockRecorder(NewInMemoryProductRepository(), movements)

	_, _, err := rec.RecordStock(models.StockMovement{ProductID: 9, MovementType: models.MovementIn, Quantity: 1})
	assert.ErrorIs(t, err, ErrProductNotFound)

	all, _ := movements.All()
	assert.Empty(t, all)
}

func TestObservedStockRecorder_Publishes(t *testing.T) {
	now := time.Now()
	inner := NewInMemoryProductRepository(FixtureProducts(now)...)
	observed, err := NewObservedProductRepository(inner)
	require.NoError(t, err)
	rec := NewObservedStockRecorder(NewSeparateStockRecorder(inner, NewInMemoryMovementRepository()), observed)

	_, _, err = rec.RecordStock(models.StockMovement{ProductID: 2, MovementType: models.MovementAdjustment, Quantity: 30})
	require.NoError(t, err)

	for _, p := range observed.Changes().Value() {
		if p.ID == 2 {
			assert.Equal(t, 30, p.CurrentStock)
		}
	}
}

func TestInMemoryRepositories_ReturnDetachedCopies(t *testing.T) {
	now := time.Now()
	products := NewInMemoryProductRepository()
	created, err := products.Create(models.Product{Name: "Shelf", SKU: "SHELF-1", Dimensions: &models.Dimensions{Length: 1, Width: 1, Height: 1}})
	require.NoError(t, err)

	got, err := products.GetByID(created.ID)
	require.NoError(t, err)
	got.Dimensions.Length = 99
	created.Dimensions.Width = 99

	again, err := products.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Dimensions{Length: 1, Width: 1, Height: 1}, *again.Dimensions)

	suppliers := NewInMemorySupplierRepository(FixtureSuppliers(now)...)
	s, err := suppliers.GetByID(1)
	require.NoError(t, err)
	s.ShippingAddress = &models.Address{City: "Elsewhere"}
	s.Tags = append(s.Tags[:0], "changed")
	if s.Metrics != nil {
		s.Metrics.TotalOrders = -1
	}

	fresh, err := suppliers.GetByID(1)
	require.NoError(t, err)
	assert.NotEqual(t, []string{"changed"}, fresh.Tags)
	if fresh.Metrics != nil {
		assert.NotEqual(t, -1, fresh.Metrics.TotalOrders)
	}
}
