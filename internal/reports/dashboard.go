// Package reports turns the inventory collections into dashboard figures,
// chart datasets and tabular reports.
package reports

import (
	"cmp"
	"slices"
	"time"

	"github.com/rogerio-castellano/inventory-console/internal/models"
	"github.com/shopspring/decimal"
)

// Input is a snapshot of every collection a report can draw from.
type Input struct {
	Products  []models.Product
	Suppliers []models.Supplier
	Orders    []models.PurchaseOrder
	Movements []models.StockMovement
}

const recentWindow = 30 * 24 * time.Hour

var stockPalette = []string{"#FF6384", "#36A2EB", "#FFCE56", "#4BC0C0", "#9966FF", "#FF9F40"}

var valueRGB = []string{"255, 99, 132", "54, 162, 235", "255, 205, 86", "75, 192, 192", "153, 102, 255", "255, 159, 64"}

func stockValue(p models.Product, price float64) decimal.Decimal {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(p.CurrentStock)))
}

func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func DashboardStats(in Input, now time.Time) models.DashboardStats {
	stats := models.DashboardStats{
		TotalProducts:  len(in.Products),
		TotalSuppliers: len(in.Suppliers),
	}

	total := decimal.Zero
	for _, p := range in.Products {
		total = total.Add(stockValue(p, p.CostPrice))
		if p.IsLowStock() {
			stats.LowStockItems++
		}
		if p.IsOutOfStock() {
			stats.OutOfStockItems++
		}
	}
	stats.TotalValue = round2(total)

	for _, o := range in.Orders {
		if o.IsOpen() {
			stats.PendingOrders++
		}
	}

	thisMonth := monthStart(now)
	lastMonth := thisMonth.AddDate(0, -1, 0)
	var current, previous int
	for _, m := range in.Movements {
		if !m.Timestamp.Before(now.Add(-recentWindow)) && !m.Timestamp.After(now) {
			stats.RecentMovements++
		}
		switch {
		case !m.Timestamp.Before(thisMonth) && !m.Timestamp.After(now):
			current++
		case !m.Timestamp.Before(lastMonth) && m.Timestamp.Before(thisMonth):
			previous++
		}
	}
	stats.MonthlyTrend = monthlyTrend(current, previous)

	return stats
}

// monthlyTrend is the percentage change from previous to current, one decimal place.
func monthlyTrend(current, previous int) float64 {
	if previous == 0 {
		return 0
	}
	change := decimal.NewFromInt(int64(current - previous)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(previous)))
	return change.Round(1).InexactFloat64()
}

// byCategory sums a per-product value into categories kept in first-seen order.
func byCategory(products []models.Product, value func(models.Product) decimal.Decimal) ([]string, []float64) {
	labels := []string{}
	sums := map[string]decimal.Decimal{}
	for _, p := range products {
		if _, seen := sums[p.Category]; !seen {
			labels = append(labels, p.Category)
			sums[p.Category] = decimal.Zero
		}
		sums[p.Category] = sums[p.Category].Add(value(p))
	}

	data := make([]float64, len(labels))
	for i, l := range labels {
		data[i] = round2(sums[l])
	}
	return labels, data
}

func StockLevelChart(products []models.Product) models.ChartData {
	labels, data := byCategory(products, func(p models.Product) decimal.Decimal {
		return decimal.NewFromInt(int64(p.CurrentStock))
	})
	return models.ChartData{
		Labels: labels,
		Datasets: []models.ChartDataset{{
			Label:           "Stock by Category",
			Data:            data,
			BackgroundColor: stockPalette,
			BorderColor:     stockPalette,
			BorderWidth:     1,
		}},
	}
}

func ValueChart(products []models.Product) models.ChartData {
	labels, data := byCategory(products, func(p models.Product) decimal.Decimal {
		return stockValue(p, p.CostPrice)
	})

	background := make([]string, len(valueRGB))
	border := make([]string, len(valueRGB))
	for i, rgb := range valueRGB {
		background[i] = "rgba(" + rgb + ", 0.2)"
		border[i] = "rgba(" + rgb + ", 1)"
	}

	return models.ChartData{
		Labels: labels,
		Datasets: []models.ChartDataset{{
			Label:           "Inventory Value by Category",
			Data:            data,
			BackgroundColor: background,
			BorderColor:     border,
			BorderWidth:     1,
		}},
	}
}

// MonthlyMovementChart sums in and out quantities for the last months calendar
// months, the current one included, oldest first.
func MonthlyMovementChart(movements []models.StockMovement, now time.Time, months int) models.ChartData {
	if months < 1 {
		months = 1
	}
	first := monthStart(now).AddDate(0, -(months - 1), 0)

	labels := make([]string, months)
	in := make([]float64, months)
	out := make([]float64, months)
	for i := range months {
		labels[i] = first.AddDate(0, i, 0).Format("Jan")
	}

	for _, m := range movements {
		if m.Timestamp.Before(first) || m.Timestamp.After(now) {
			continue
		}
		ts := m.Timestamp.In(now.Location())
		idx := (ts.Year()-first.Year())*12 + int(ts.Month()) - int(first.Month())
		if idx < 0 || idx >= months {
			continue
		}
		switch m.MovementType {
		case models.MovementIn:
			in[idx] += float64(m.Quantity)
		case models.MovementOut:
			out[idx] += float64(m.Quantity)
		}
	}

	return models.ChartData{
		Labels: labels,
		Datasets: []models.ChartDataset{
			{
				Label:           "Stock In",
				Data:            in,
				BackgroundColor: []string{"rgba(75, 192, 192, 0.2)"},
				BorderColor:     []string{"rgba(75, 192, 192, 1)"},
				BorderWidth:     2,
			},
			{
				Label:           "Stock Out",
				Data:            out,
				BackgroundColor: []string{"rgba(255, 99, 132, 0.2)"},
				BorderColor:     []string{"rgba(255, 99, 132, 1)"},
				BorderWidth:     2,
			},
		},
	}
}

// TopProducts ranks products by stock times selling price.
func TopProducts(products []models.Product, n int) []models.TopProduct {
	top := make([]models.TopProduct, 0, len(products))
	for _, p := range products {
		top = append(top, models.TopProduct{
			ID:       p.ID,
			Name:     p.Name,
			Value:    round2(stockValue(p, p.SellingPrice)),
			Stock:    p.CurrentStock,
			Category: p.Category,
		})
	}
	slices.SortStableFunc(top, func(a, b models.TopProduct) int { return cmp.Compare(b.Value, a.Value) })
	return top[:min(n, len(top))]
}

func RecentMovements(movements []models.StockMovement, n int) []models.StockMovement {
	sorted := slices.Clone(movements)
	slices.SortStableFunc(sorted, func(a, b models.StockMovement) int { return b.Timestamp.Compare(a.Timestamp) })
	return sorted[:min(n, len(sorted))]
}
