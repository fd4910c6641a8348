//go:build integration

package repo_test

import (
	"sync"
	"testing"
	"time"

	"github.com/rogerio-castellano/inventory-console/internal/db/dbtest"
	"github.com/rogerio-castellano/inventory-console/internal/models"
	"github.com/rogerio-castellano/inventory-console/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresProductRepository(t *testing.T) {
	database := dbtest.Start(t)
	products := repo.NewPostgresProductRepository(database)

	seed := func(t *testing.T) {
		dbtest.Truncate(t, database)
		for _, p := range repo.FixtureProducts(time.Now()) {
			_, err := products.Create(p)
			require.NoError(t, err)
		}
	}

	t.Run("create and read back", func(t *testing.T) {
		seed(t)
		p, err := products.GetBySKU("dell-ins-15")
		require.NoError(t, err)
		assert.Equal(t, 1, p.ID)
		assert.Equal(t, 1200.0, p.SellingPrice)

		_, err = products.Create(models.Product{Name: "Copy", SKU: "DELL-INS-15"})
		assert.ErrorIs(t, err, repo.ErrDuplicatedValueUnique)
	})

	t.Run("dimensions round trip", func(t *testing.T) {
		seed(t)
		created, err := products.Create(models.Product{
			Name: "Shelf", SKU: "SHELF-1", Dimensions: &models.Dimensions{Length: 80, Width: 30, Height: 180},
		})
		require.NoError(t, err)

		got, err := products.GetByID(created.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Dimensions)
		assert.Equal(t, 180.0, got.Dimensions.Height)
	})

	t.Run("filter sort paginate", func(t *testing.T) {
		seed(t)
		limit := 1
		got, total, err := products.Filter(repo.ProductFilter{Category: "Electronics", SortBy: "selling_price", SortDesc: true, Limit: &limit})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		require.Len(t, got, 1)
		assert.Equal(t, "Laptop Dell Inspiron 15", got[0].Name)

		low, err := products.LowStock()
		require.NoError(t, err)
		assert.Len(t, low, 2)
	})

	t.Run("name filter matches wildcards literally", func(t *testing.T) {
		seed(t)
		_, err := products.Create(models.Product{Name: "Toner 100% black", SKU: "TONER-100"})
		require.NoError(t, err)

		got, total, err := products.Filter(repo.ProductFilter{Name: "100%"})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, got, 1)
		assert.Equal(t, "TONER-100", got[0].SKU)

		_, total, err = products.Filter(repo.ProductFilter{Name: "_"})
		require.NoError(t, err)
		assert.Zero(t, total)

		found, err := products.Search("%")
		require.NoError(t, err)
		assert.Len(t, found, 1)
	})

	t.Run("adjust stock", func(t *testing.T) {
		seed(t)
		p, previous, err := products.AdjustStock(2, models.MovementOut, 10)
		require.NoError(t, err)
		assert.Equal(t, 3, previous)
		assert.Equal(t, 0, p.CurrentStock)

		_, _, err = products.AdjustStock(99, models.MovementIn, 1)
		assert.ErrorIs(t, err, repo.ErrProductNotFound)
	})

	t.Run("concurrent adjustments are not lost", func(t *testing.T) {
		seed(t)
		var wg sync.WaitGroup
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _, err := products.AdjustStock(1, models.MovementIn, 1)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		p, err := products.GetByID(1)
		require.NoError(t, err)
		assert.Equal(t, 45, p.CurrentStock)
	})

	t.Run("delete", func(t *testing.T) {
		seed(t)
		deleted, err := products.Delete(4)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = products.Delete(4)
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestPostgresMovementRepository(t *testing.T) {
	database := dbtest.Start(t)
	movements := repo.NewPostgresMovementRepository(database)

	now := time.Now().UTC().Truncate(time.Second)
	for _, m := range repo.FixtureMovements(now) {
		_, err := movements.Log(m)
		require.NoError(t, err)
	}

	all, total, err := movements.List(repo.MovementFilter{})
	require.NoError(t, err)
	assert.Equal(t, 8, total)
	assert.True(t, all[0].Timestamp.After(all[1].Timestamp))

	forLaptop, total, err := movements.GetByProductID(1, repo.MovementFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, forLaptop, 3)

	since := now.AddDate(0, 0, -30)
	_, total, err = movements.List(repo.MovementFilter{Since: &since, Type: models.MovementOut})
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	recent, err := movements.Recent(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "Wireless Mouse", recent[0].ProductName)
}

func TestPostgresStockRecorder(t *testing.T) {
	database := dbtest.Start(t)
	products := repo.NewPostgresProductRepository(database)
	movements := repo.NewPostgresMovementRepository(database)
	rec := repo.NewPostgresStockRecorder(database)
	dbtest.Truncate(t, database)

	for _, p := range repo.FixtureProducts(time.Now()) {
		_, err := products.Create(p)
		require.NoError(t, err)
	}

	p, m, err := rec.RecordStock(models.StockMovement{ProductID: 2, MovementType: models.MovementOut, Quantity: 10, Reason: "Sale"})
	require.NoError(t, err)
	assert.Zero(t, p.CurrentStock)
	assert.Equal(t, 3, m.PreviousStock)
	assert.NotZero(t, m.ID)

	logged, total, err := movements.GetByProductID(2, repo.MovementFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Office Chair Ergonomic", logged[0].ProductName)

	_, _, err = rec.RecordStock(models.StockMovement{ProductID: 99, MovementType: models.MovementIn, Quantity: 1})
	assert.ErrorIs(t, err, repo.ErrProductNotFound)
	_, total, err = movements.List(repo.MovementFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}
