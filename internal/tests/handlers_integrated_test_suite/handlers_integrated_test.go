//go:build integration

package handlers_integrated_test_suite

import (
	"net/http"
	"testing"

	handler "github.com/rogerio-castellano/inventory-console/internal/http/handlers"
	"github.com/rogerio-castellano/inventory-console/internal/models"
)

func TestHandlersOverPostgres(t *testing.T) {
	s := newSuite(t)

	t.Run("Create and fetch product", func(t *testing.T) {
		s.reset(t)
		w := s.do(http.MethodPost, "/products", handler.ProductRequest{
			Name: "Standing Desk", Description: "Height adjustable standing desk", SKU: "DESK-STD-01",
			Category: "Furniture", SupplierID: 2, CostPrice: 220, SellingPrice: 399,
			CurrentStock: 6, MinStockLevel: 2, MaxStockLevel: 20, Unit: "piece",
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		created, _ := decode[handler.ProductResponse](w)
		if created.ID != 5 || created.SupplierName != "Furniture Plus" {
			t.Errorf("unexpected product %+v", created.Product)
		}

		w = s.do(http.MethodGet, "/products/5", nil)
		got, _ := decode[handler.ProductResponse](w)
		if got.SKU != "DESK-STD-01" || got.StockStatus != models.StockStatusIn {
			t.Errorf("unexpected product read back %+v", got)
		}

		w = s.do(http.MethodPost, "/products", handler.ProductRequest{
			Name: "Desk copy", Description: "Same SKU as the standing desk", SKU: "DESK-STD-01",
			Category: "Furniture", SupplierID: 2, CostPrice: 1, SellingPrice: 2, MaxStockLevel: 1, Unit: "piece",
		})
		if w.Code != http.StatusConflict {
			t.Errorf("expected 409 for a duplicated SKU, got %d", w.Code)
		}
	})

	t.Run("Stock movement is persisted", func(t *testing.T) {
		s.reset(t)
		w := s.do(http.MethodPost, "/products/3/stock", handler.StockMovementRequest{
			MovementType: models.MovementIn, Quantity: 50, Reason: "Restock", Reference: "PO-1002",
		})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		result, _ := decode[handler.StockMovementResult](w)
		if result.Product.CurrentStock != 50 || result.Movement.PreviousStock != 0 || result.Movement.UserName != "admin" {
			t.Errorf("unexpected result %+v", result)
		}

		w = s.do(http.MethodGet, "/products/3/movements?type=in", nil)
		movements, _ := decode[handler.MovementsSearchResult](w)
		if movements.Meta.TotalCount != 2 || movements.Data[0].Reference != "PO-1002" {
			t.Errorf("expected the restock first of 2 incoming movements, got %+v", movements)
		}

		w = s.do(http.MethodPost, "/products/3/stock", handler.StockMovementRequest{
			MovementType: models.MovementOut, Quantity: 80, Reason: "Large order",
		})
		result, _ = decode[handler.StockMovementResult](w)
		if result.Product.CurrentStock != 0 {
			t.Errorf("expected outgoing stock to stop at 0, got %d", result.Product.CurrentStock)
		}
	})

	t.Run("Filter and delete", func(t *testing.T) {
		s.reset(t)
		w := s.do(http.MethodGet, "/products/filter?category=Electronics&sortBy=selling_price&sortDir=desc", nil)
		resp, _ := decode[handler.ProductsSearchResult](w)
		if resp.Meta.TotalCount != 2 || resp.Data[0].SKU != "DELL-INS-15" {
			t.Errorf("unexpected filter result %+v", resp)
		}

		if w := s.do(http.MethodDelete, "/products/4", nil); w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
		if w := s.do(http.MethodDelete, "/products/4", nil); w.Code != http.StatusNotFound {
			t.Errorf("expected 404 on second delete, got %d", w.Code)
		}
	})

	t.Run("Import updates existing SKUs", func(t *testing.T) {
		s.reset(t)
		csv := "name,sku,category,cost_price,selling_price,current_stock,min_stock_level,max_stock_level,unit\n" +
			"Wireless Mouse,MOUSE-WL-001,Electronics,14,24,60,10,80,piece\n" +
			"USB-C Hub,HUB-USBC-7,Electronics,20,35,12,4,40,piece\n"
		w := s.importCSV(csv, "update")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		result, _ := decode[handler.ImportProductsResult](w)
		if result.ImportedProductsCount != 2 || len(result.Errors) != 0 {
			t.Fatalf("unexpected import result %+v", result)
		}

		w = s.do(http.MethodGet, "/products/4", nil)
		mouse, _ := decode[handler.ProductResponse](w)
		if mouse.CurrentStock != 60 || mouse.MaxStockLevel != 80 {
			t.Errorf("expected the mouse updated in place, got %+v", mouse.Product)
		}
	})

	t.Run("Dashboard reads Postgres", func(t *testing.T) {
		s.reset(t)
		w := s.do(http.MethodGet, "/dashboard/stats", nil)
		stats, _ := decode[models.DashboardStats](w)
		if stats.TotalProducts != 4 || stats.TotalValue != 21125 || stats.RecentMovements != 3 {
			t.Errorf("unexpected stats %+v", stats)
		}
	})
}
