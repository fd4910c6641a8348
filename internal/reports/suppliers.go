package reports

import (
	"cmp"
	"slices"

	"github.com/rogerio-castellano/inventory-console/internal/models"
	"github.com/shopspring/decimal"
)

type SupplierSummary struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
}

type SupplierAnalytics struct {
	Total         int               `json:"total"`
	ByStatus      map[string]int    `json:"by_status"`
	ByType        map[string]int    `json:"by_type"`
	ByRiskLevel   map[string]int    `json:"by_risk_level"`
	AverageRating float64           `json:"average_rating"`
	TopRated      []SupplierSummary `json:"top_rated"`
}

type SupplierPerformance struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	Rating         float64 `json:"rating"`
	TotalOrders    int     `json:"total_orders"`
	OnTimeDelivery float64 `json:"on_time_delivery"`
	QualityScore   float64 `json:"quality_score"`
	TotalValue     float64 `json:"total_value"`
}

func Analytics(suppliers []models.Supplier) SupplierAnalytics {
	a := SupplierAnalytics{
		Total:       len(suppliers),
		ByStatus:    map[string]int{},
		ByType:      map[string]int{},
		ByRiskLevel: map[string]int{},
		TopRated:    []SupplierSummary{},
	}

	ratings := decimal.Zero
	for _, s := range suppliers {
		a.ByStatus[s.Status]++
		a.ByType[s.Type]++
		a.ByRiskLevel[s.RiskLevel]++
		ratings = ratings.Add(decimal.NewFromFloat(s.Rating))
		a.TopRated = append(a.TopRated, SupplierSummary{ID: s.ID, Name: s.Name, Rating: s.Rating})
	}
	if len(suppliers) > 0 {
		a.AverageRating = ratings.Div(decimal.NewFromInt(int64(len(suppliers)))).Round(2).InexactFloat64()
	}

	slices.SortStableFunc(a.TopRated, func(x, y SupplierSummary) int { return cmp.Compare(y.Rating, x.Rating) })
	a.TopRated = a.TopRated[:min(5, len(a.TopRated))]
	return a
}

// Performance scores each supplier from its purchase orders. On-time delivery
// is the share of delivered orders that arrived by their expected date.
func Performance(suppliers []models.Supplier, orders []models.PurchaseOrder) []SupplierPerformance {
	out := make([]SupplierPerformance, 0, len(suppliers))
	for _, s := range suppliers {
		var count, delivered, onTime int
		value := decimal.Zero
		for _, o := range orders {
			if o.SupplierID != s.ID {
				continue
			}
			count++
			value = value.Add(decimal.NewFromFloat(o.Total))
			if o.Status != models.OrderStatusDelivered || o.ActualDeliveryDate == nil {
				continue
			}
			delivered++
			if !o.ActualDeliveryDate.After(o.ExpectedDeliveryDate) {
				onTime++
			}
		}

		perf := SupplierPerformance{
			ID:           s.ID,
			Name:         s.Name,
			Rating:       s.Rating,
			TotalOrders:  count,
			QualityScore: decimal.NewFromFloat(s.Rating).Mul(decimal.NewFromInt(20)).Round(1).InexactFloat64(),
			TotalValue:   round2(value),
		}
		if delivered > 0 {
			perf.OnTimeDelivery = decimal.NewFromInt(int64(onTime * 100)).
				Div(decimal.NewFromInt(int64(delivered))).Round(1).InexactFloat64()
		}
		out = append(out, perf)
	}
	return out
}
