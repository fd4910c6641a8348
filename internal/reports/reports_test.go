package reports

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/rogerio-castellano/inventory-console/internal/models"
	"github.com/rogerio-castellano/inventory-console/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var now = time.Date(2025, time.June, 18, 12, 0, 0, 0, time.UTC)

func fixtureInput() Input {
	return Input{
		Products:  repo.FixtureProducts(now),
		Suppliers: repo.FixtureSuppliers(now),
		Orders:    repo.FixturePurchaseOrders(now),
		Movements: repo.FixtureMovements(now),
	}
}

func TestDashboardStats(t *testing.T) {
	stats := DashboardStats(fixtureInput(), now)

	assert.Equal(t, 4, stats.TotalProducts)
	// 25*800 + 3*150 + 0*5 + 45*15
	assert.Equal(t, 21125.0, stats.TotalValue)
	assert.Equal(t, 2, stats.LowStockItems)
	assert.Equal(t, 1, stats.OutOfStockItems)
	assert.Equal(t, 3, stats.TotalSuppliers)
	assert.Equal(t, 2, stats.PendingOrders)
	assert.Equal(t, 3, stats.RecentMovements)
}

func TestMonthlyTrend(t *testing.T) {
	mk := func(daysAgo int) models.StockMovement {
		return models.StockMovement{MovementType: models.MovementIn, Quantity: 1, Timestamp: now.AddDate(0, 0, -daysAgo)}
	}
	// now is June 18: 1..17 days ago is June, 20..40 days ago is May
	in := Input{Movements: []models.StockMovement{mk(1), mk(2), mk(3), mk(20), mk(25)}}
	assert.Equal(t, 50.0, DashboardStats(in, now).MonthlyTrend)

	in = Input{Movements: []models.StockMovement{mk(1)}}
	assert.Zero(t, DashboardStats(in, now).MonthlyTrend)
}

func TestStockLevelChart(t *testing.T) {
	chart := StockLevelChart(repo.FixtureProducts(now))

	assert.Equal(t, []string{"Electronics", "Furniture", "Office Supplies"}, chart.Labels)
	require.Len(t, chart.Datasets, 1)
	assert.Equal(t, "Stock by Category", chart.Datasets[0].Label)
	assert.Equal(t, []float64{70, 3, 0}, chart.Datasets[0].Data)
	assert.Equal(t, "#FF6384", chart.Datasets[0].BackgroundColor[0])
}

func TestValueChart(t *testing.T) {
	chart := ValueChart(repo.FixtureProducts(now))

	assert.Equal(t, "Inventory Value by Category", chart.Datasets[0].Label)
	assert.Equal(t, []float64{20675, 450, 0}, chart.Datasets[0].Data)
	assert.Equal(t, "rgba(255, 99, 132, 0.2)", chart.Datasets[0].BackgroundColor[0])
	assert.Equal(t, "rgba(255, 99, 132, 1)", chart.Datasets[0].BorderColor[0])
}

func TestMonthlyMovementChart(t *testing.T) {
	chart := MonthlyMovementChart(repo.FixtureMovements(now), now, 6)

	assert.Equal(t, []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}, chart.Labels)
	require.Len(t, chart.Datasets, 2)
	assert.Equal(t, "Stock In", chart.Datasets[0].Label)
	assert.Equal(t, "Stock Out", chart.Datasets[1].Label)

	var in, out float64
	for i := range chart.Labels {
		in += chart.Datasets[0].Data[i]
		out += chart.Datasets[1].Data[i]
	}
	assert.Equal(t, 120.0, in)
	assert.Equal(t, 60.0, out)
	assert.Equal(t, 20.0, chart.Datasets[0].Data[0])
}

func TestTopProducts(t *testing.T) {
	top := TopProducts(repo.FixtureProducts(now), 2)

	require.Len(t, top, 2)
	assert.Equal(t, "Laptop Dell Inspiron 15", top[0].Name)
	assert.Equal(t, 30000.0, top[0].Value)
	assert.Equal(t, "Wireless Mouse", top[1].Name)
}

func TestRecentMovements(t *testing.T) {
	recent := RecentMovements(repo.FixtureMovements(now), 10)

	require.Len(t, recent, 8)
	assert.Equal(t, 8, recent[0].ID)
	assert.Equal(t, 1, recent[7].ID)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "STOCK LEVEL Report", Title("stock-level"))
	assert.Equal(t, "SUPPLIER PERFORMANCE Report", Title("supplier-performance"))
	assert.Equal(t, "LOW STOCK Report", Title("low-stock"))
}

func TestGenerate(t *testing.T) {
	in := fixtureInput()

	t.Run("stock level", func(t *testing.T) {
		r, err := Generate(models.ReportStockLevel, in, models.ReportFilter{}, "admin", now)
		require.NoError(t, err)
		assert.Len(t, r.Data, 4)
		assert.Equal(t, "Low Stock", r.Data[1]["status"])
		assert.NotNil(t, r.ChartData)
		assert.Equal(t, "admin", r.GeneratedBy)
	})

	t.Run("low stock shortage", func(t *testing.T) {
		r, err := Generate(models.ReportLowStock, in, models.ReportFilter{}, "admin", now)
		require.NoError(t, err)
		require.Len(t, r.Data, 2)
		assert.Equal(t, 2, r.Data[0]["shortage"])
		assert.Equal(t, 10, r.Data[1]["shortage"])
	})

	t.Run("valuation by category", func(t *testing.T) {
		r, err := Generate(models.ReportValuation, in, models.ReportFilter{Category: "electronics"}, "admin", now)
		require.NoError(t, err)
		require.Len(t, r.Data, 2)
		assert.Equal(t, 20675.0, Totals(r, "total_cost_value"))
	})

	t.Run("movement date range", func(t *testing.T) {
		start := now.AddDate(0, 0, -30)
		r, err := Generate(models.ReportMovement, in, models.ReportFilter{StartDate: &start, MovementType: models.MovementOut}, "admin", now)
		require.NoError(t, err)
		require.Len(t, r.Data, 2)
		assert.Equal(t, "Wireless Mouse", r.Data[0]["product"])
	})

	t.Run("supplier performance", func(t *testing.T) {
		r, err := Generate(models.ReportSupplierPerformance, in, models.ReportFilter{}, "admin", now)
		require.NoError(t, err)
		require.Len(t, r.Data, 3)
		assert.Equal(t, "Tech Solutions Inc.", r.Data[0]["supplier"])
		assert.Equal(t, 100.0, r.Data[0]["on_time_delivery"])
		assert.Equal(t, 90.0, r.Data[0]["quality_score"])
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := Generate("forecast", in, models.ReportFilter{}, "admin", now)
		assert.ErrorIs(t, err, ErrUnknownReportType)
	})
}

func TestAnalytics(t *testing.T) {
	a := Analytics(repo.FixtureSuppliers(now))

	assert.Equal(t, 3, a.Total)
	assert.Equal(t, 3, a.ByStatus[models.SupplierStatusActive])
	assert.Equal(t, 2, a.ByRiskLevel[models.RiskLow])
	assert.Equal(t, 4.23, a.AverageRating)
	require.Len(t, a.TopRated, 3)
	assert.Equal(t, "Tech Solutions Inc.", a.TopRated[0].Name)
}

func TestPerformanceLateDelivery(t *testing.T) {
	expected := now.AddDate(0, 0, -10)
	late := now.AddDate(0, 0, -5)
	orders := []models.PurchaseOrder{
		{SupplierID: 1, Status: models.OrderStatusDelivered, ExpectedDeliveryDate: expected, ActualDeliveryDate: &late, Total: 100},
		{SupplierID: 1, Status: models.OrderStatusDelivered, ExpectedDeliveryDate: expected, ActualDeliveryDate: &expected, Total: 50.5},
		{SupplierID: 1, Status: models.OrderStatusPending, Total: 10},
	}

	perf := Performance([]models.Supplier{{ID: 1, Name: "Acme", Rating: 3.5}}, orders)

	require.Len(t, perf, 1)
	assert.Equal(t, 3, perf[0].TotalOrders)
	assert.Equal(t, 50.0, perf[0].OnTimeDelivery)
	assert.Equal(t, 70.0, perf[0].QualityScore)
	assert.Equal(t, 160.5, perf[0].TotalValue)
}

func TestWriteCSV(t *testing.T) {
	r, err := Generate(models.ReportLowStock, fixtureInput(), models.ReportFilter{}, "admin", now)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, r))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, r.Columns, records[0])
	assert.Equal(t, "Office Chair Ergonomic", records[1][0])
}

func TestWriteXLSX(t *testing.T) {
	r, err := Generate(models.ReportValuation, fixtureInput(), models.ReportFilter{}, "admin", now)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, r))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(f.GetActiveSheetIndex()))
	require.NoError(t, err)
	assert.Equal(t, "VALUATION Report", rows[0][0])
	assert.Equal(t, r.Columns, rows[2])
	assert.Len(t, rows, 3+len(r.Data)+1)
	assert.Equal(t, "Total", rows[len(rows)-1][0])
}
