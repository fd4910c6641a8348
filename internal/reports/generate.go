package reports

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/inventory-console/internal/models"
	"github.com/shopspring/decimal"
)

var ErrUnknownReportType = errors.New("unknown report type")

// Types lists the report types Generate accepts.
var Types = []string{
	models.ReportStockLevel,
	models.ReportMovement,
	models.ReportValuation,
	models.ReportLowStock,
	models.ReportSupplierPerformance,
}

var descriptions = map[string]string{
	models.ReportStockLevel:          "Current stock of every product against its reorder levels",
	models.ReportMovement:            "Stock movements in the selected period",
	models.ReportValuation:           "Inventory value at cost and at selling price",
	models.ReportLowStock:            "Products at or below their minimum stock level",
	models.ReportSupplierPerformance: "Delivery and quality figures per supplier",
}

// Title replaces the first dash of the report type with a space and upper-cases it.
func Title(reportType string) string {
	return strings.ToUpper(strings.Replace(reportType, "-", " ", 1)) + " Report"
}

func Generate(reportType string, in Input, f models.ReportFilter, generatedBy string, now time.Time) (models.InventoryReport, error) {
	report := models.InventoryReport{
		ID:          uuid.NewString(),
		Title:       Title(reportType),
		Description: descriptions[reportType],
		Type:        reportType,
		GeneratedAt: now,
		GeneratedBy: generatedBy,
		Filters:     f,
	}

	products := filterProducts(in.Products, f)

	switch reportType {
	case models.ReportStockLevel:
		report.Columns = []string{"name", "sku", "category", "current_stock", "min_level", "max_level", "status"}
		for _, p := range products {
			report.Data = append(report.Data, map[string]any{
				"name":          p.Name,
				"sku":           p.SKU,
				"category":      p.Category,
				"current_stock": p.CurrentStock,
				"min_level":     p.MinStockLevel,
				"max_level":     p.MaxStockLevel,
				"status":        p.StockStatus(),
			})
		}
		chart := StockLevelChart(products)
		report.ChartData = &chart

	case models.ReportValuation:
		report.Columns = []string{"name", "sku", "category", "current_stock", "cost_price", "selling_price", "total_cost_value", "total_selling_value"}
		for _, p := range products {
			report.Data = append(report.Data, map[string]any{
				"name":                p.Name,
				"sku":                 p.SKU,
				"category":            p.Category,
				"current_stock":       p.CurrentStock,
				"cost_price":          p.CostPrice,
				"selling_price":       p.SellingPrice,
				"total_cost_value":    round2(stockValue(p, p.CostPrice)),
				"total_selling_value": round2(stockValue(p, p.SellingPrice)),
			})
		}
		chart := ValueChart(products)
		report.ChartData = &chart

	case models.ReportLowStock:
		report.Columns = []string{"name", "sku", "category", "current_stock", "min_level", "shortage", "supplier"}
		for _, p := range products {
			if !p.IsLowStock() {
				continue
			}
			report.Data = append(report.Data, map[string]any{
				"name":          p.Name,
				"sku":           p.SKU,
				"category":      p.Category,
				"current_stock": p.CurrentStock,
				"min_level":     p.MinStockLevel,
				"shortage":      p.MinStockLevel - p.CurrentStock,
				"supplier":      p.SupplierName,
			})
		}

	case models.ReportMovement:
		report.Columns = []string{"date", "product", "type", "quantity", "previous_stock", "new_stock", "reason", "user"}
		movements := filterMovements(in.Movements, f)
		for _, m := range RecentMovements(movements, len(movements)) {
			report.Data = append(report.Data, map[string]any{
				"date":           m.Timestamp.Format(time.RFC3339),
				"product":        m.ProductName,
				"type":           m.MovementType,
				"quantity":       m.Quantity,
				"previous_stock": m.PreviousStock,
				"new_stock":      m.NewStock,
				"reason":         m.Reason,
				"user":           m.UserName,
			})
		}
		chart := MonthlyMovementChart(movements, now, 6)
		report.ChartData = &chart

	case models.ReportSupplierPerformance:
		report.Columns = []string{"supplier", "rating", "total_orders", "on_time_delivery", "quality_score", "total_value"}
		suppliers := in.Suppliers
		if f.SupplierID != 0 {
			suppliers = nil
			for _, s := range in.Suppliers {
				if s.ID == f.SupplierID {
					suppliers = append(suppliers, s)
				}
			}
		}
		for _, perf := range Performance(suppliers, in.Orders) {
			report.Data = append(report.Data, map[string]any{
				"supplier":         perf.Name,
				"rating":           perf.Rating,
				"total_orders":     perf.TotalOrders,
				"on_time_delivery": perf.OnTimeDelivery,
				"quality_score":    perf.QualityScore,
				"total_value":      perf.TotalValue,
			})
		}

	default:
		return models.InventoryReport{}, ErrUnknownReportType
	}

	if report.Data == nil {
		report.Data = []map[string]any{}
	}
	return report, nil
}

func filterProducts(products []models.Product, f models.ReportFilter) []models.Product {
	out := []models.Product{}
	for _, p := range products {
		if f.ProductID != 0 && p.ID != f.ProductID {
			continue
		}
		if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
			continue
		}
		if f.SupplierID != 0 && p.SupplierID != f.SupplierID {
			continue
		}
		if f.Status != "" && p.Status != f.Status && p.StockStatus() != f.Status {
			continue
		}
		out = append(out, p)
	}
	return out
}

func filterMovements(movements []models.StockMovement, f models.ReportFilter) []models.StockMovement {
	out := []models.StockMovement{}
	for _, m := range movements {
		if f.ProductID != 0 && m.ProductID != f.ProductID {
			continue
		}
		if f.MovementType != "" && m.MovementType != f.MovementType {
			continue
		}
		if f.StartDate != nil && m.Timestamp.Before(*f.StartDate) {
			continue
		}
		if f.EndDate != nil && m.Timestamp.After(*f.EndDate) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Totals sums a numeric column across report rows.
func Totals(report models.InventoryReport, column string) float64 {
	sum := decimal.Zero
	for _, row := range report.Data {
		switch v := row[column].(type) {
		case int:
			sum = sum.Add(decimal.NewFromInt(int64(v)))
		case float64:
			sum = sum.Add(decimal.NewFromFloat(v))
		}
	}
	return round2(sum)
}
