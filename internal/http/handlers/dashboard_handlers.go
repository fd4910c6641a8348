package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/inventory-console/internal/reports"
)

const (
	topProductsCount    = 5
	movementChartMonths = 6
)

// loadInput snapshots every collection the dashboard and reports read from.
func loadInput() (reports.Input, error) {
	var (
		in  reports.Input
		err error
	)
	if in.Products, err = productRepo.GetAll(); err != nil {
		return in, fmt.Errorf("products: %w", err)
	}
	if in.Movements, err = movementRepo.All(); err != nil {
		return in, fmt.Errorf("movements: %w", err)
	}
	if supplierRepo != nil {
		if in.Suppliers, err = supplierRepo.GetAll(); err != nil {
			return in, fmt.Errorf("suppliers: %w", err)
		}
	}
	if purchaseOrderRepo != nil {
		if in.Orders, err = purchaseOrderRepo.GetAll(); err != nil {
			return in, fmt.Errorf("purchase orders: %w", err)
		}
	}
	return in, nil
}

func withInput(w http.ResponseWriter) (reports.Input, bool) {
	in, err := loadInput()
	if err != nil {
		log.Printf("could not load dashboard data: %v", err)
		http.Error(w, "failed to fetch dashboard data", http.StatusInternalServerError)
		return in, false
	}
	return in, true
}

// GetDashboardStatsHandler godoc
// @Summary Headline figures for the dashboard
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.DashboardStats
// @Failure 500 {string} string "Internal error"
// @Router /dashboard/stats [get]
// @Security BearerAuth
func GetDashboardStatsHandler(w http.ResponseWriter, r *http.Request) {
	in, ok := withInput(w)
	if !ok {
		return
	}
	respond(w, http.StatusOK, reports.DashboardStats(in, now()))
}

// GetDashboardChartHandler godoc
// @Summary Chart datasets for the dashboard
// @Tags dashboard
// @Produce json
// @Param chart path string true "stock-levels, value or monthly-movements"
// @Param months query int false "Months shown by monthly-movements (default 6)"
// @Success 200 {object} models.ChartData
// @Failure 404 {string} string "Unknown chart"
// @Router /dashboard/charts/{chart} [get]
// @Security BearerAuth
func GetDashboardChartHandler(w http.ResponseWriter, r *http.Request) {
	in, ok := withInput(w)
	if !ok {
		return
	}

	switch chi.URLParam(r, "chart") {
	case "stock-levels":
		respond(w, http.StatusOK, reports.StockLevelChart(in.Products))
	case "value":
		respond(w, http.StatusOK, reports.ValueChart(in.Products))
	case "monthly-movements":
		months := movementChartMonths
		if raw := r.URL.Query().Get("months"); raw != "" {
			v, err := strconv.Atoi(raw)
			if err != nil || v < 1 || v > 24 {
				http.Error(w, "months must be between 1 and 24", http.StatusBadRequest)
				return
			}
			months = v
		}
		respond(w, http.StatusOK, reports.MonthlyMovementChart(in.Movements, now(), months))
	default:
		http.Error(w, "unknown chart", http.StatusNotFound)
	}
}

// GetTopProductsHandler godoc
// @Summary The five products holding the most stock value
// @Tags dashboard
// @Produce json
// @Success 200 {array} models.TopProduct
// @Router /dashboard/top-products [get]
// @Security BearerAuth
func GetTopProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productRepo.GetAll()
	if err != nil {
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, reports.TopProducts(products, topProductsCount))
}

// GetDashboardRecentMovementsHandler godoc
// @Summary The ten newest stock movements
// @Tags dashboard
// @Produce json
// @Success 200 {array} models.StockMovement
// @Router /dashboard/recent-movements [get]
// @Security BearerAuth
func GetDashboardRecentMovementsHandler(w http.ResponseWriter, r *http.Request) {
	movements, err := movementRepo.All()
	if err != nil {
		http.Error(w, "could not retrieve movements", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, reports.RecentMovements(movements, recentMovementsCount))
}
