package handlers_test_suite

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	handler "github.com/rogerio-castellano/inventory-console/internal/http/handlers"
	"github.com/rogerio-castellano/inventory-console/internal/models"
)

func TestAdjustStockHandler(t *testing.T) {
	tests := []struct {
		name          string
		movement      handler.StockMovementRequest
		expectedStock int
	}{
		{"Stock in", handler.StockMovementRequest{MovementType: models.MovementIn, Quantity: 10, Reason: "Restock"}, 35},
		{"Stock out", handler.StockMovementRequest{MovementType: models.MovementOut, Quantity: 5, Reason: "Sale"}, 20},
		{"Stock out clamps at zero", handler.StockMovementRequest{MovementType: models.MovementOut, Quantity: 40, Reason: "Write-off"}, 0},
		{"Adjustment sets the level", handler.StockMovementRequest{MovementType: models.MovementAdjustment, Quantity: 7, Reason: "Count"}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter()

			w := moveStock(r, 1, tt.movement)
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
			}
			resp, err := decode[handler.StockMovementResult](w)
			if err != nil {
				t.Fatalf("error decoding response: %v", err)
			}
			if resp.Product.CurrentStock != tt.expectedStock {
				t.Errorf("expected stock %d, got %d", tt.expectedStock, resp.Product.CurrentStock)
			}
			if resp.Movement.PreviousStock != 25 || resp.Movement.NewStock != tt.expectedStock {
				t.Errorf("expected movement 25 -> %d, got %d -> %d", tt.expectedStock, resp.Movement.PreviousStock, resp.Movement.NewStock)
			}
			if resp.Movement.UserName != "admin" || resp.Movement.UserID != 1 {
				t.Errorf("expected the movement to be attributed to admin, got %q (%d)", resp.Movement.UserName, resp.Movement.UserID)
			}
		})
	}
}

func TestAdjustStockHandler_Invalid(t *testing.T) {
	r := newRouter()

	tests := []struct {
		name       string
		productID  string
		body       any
		expectCode int
	}{
		{"Unknown type", "1", handler.StockMovementRequest{MovementType: "transfer", Quantity: 1, Reason: "x"}, http.StatusBadRequest},
		{"Negative quantity", "1", handler.StockMovementRequest{MovementType: models.MovementIn, Quantity: -1, Reason: "x"}, http.StatusBadRequest},
		{"Missing reason", "1", handler.StockMovementRequest{MovementType: models.MovementIn, Quantity: 1}, http.StatusBadRequest},
		{"Unknown product", "99", handler.StockMovementRequest{MovementType: models.MovementIn, Quantity: 1, Reason: "x"}, http.StatusNotFound},
		{"Invalid product ID", "abc", handler.StockMovementRequest{MovementType: models.MovementIn, Quantity: 1, Reason: "x"}, http.StatusBadRequest},
		{"Malformed JSON", "1", `{"movement_type": "in",`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := authed(r, http.MethodPost, "/products/"+tt.productID+"/stock", tt.body)
			if w.Code != tt.expectCode {
				t.Errorf("expected %d, got %d", tt.expectCode, w.Code)
			}
		})
	}
}

func TestGetMovementsHandler(t *testing.T) {
	r := newRouter()
	moveStock(r, 1, handler.StockMovementRequest{MovementType: models.MovementOut, Quantity: 2, Reason: "Sale"})

	t.Run("All movements of a product, newest first", func(t *testing.T) {
		w := authed(r, http.MethodGet, "/products/1/movements", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}
		resp, _ := decode[handler.MovementsSearchResult](w)
		if resp.Meta.TotalCount != 4 || len(resp.Data) != 4 {
			t.Fatalf("expected 4 movements, got %d (total %d)", len(resp.Data), resp.Meta.TotalCount)
		}
		if resp.Data[0].Reason != "Sale" {
			t.Errorf("expected the new movement first, got %q", resp.Data[0].Reason)
		}
	})

	t.Run("Since and type", func(t *testing.T) {
		since := time.Now().AddDate(0, 0, -30).Format(time.RFC3339)
		w := authed(r, http.MethodGet, "/products/1/movements?type=in&since="+url.QueryEscape(since), nil)
		resp, _ := decode[handler.MovementsSearchResult](w)
		if resp.Meta.TotalCount != 1 {
			t.Errorf("expected only the purchase order receipt, got %d", resp.Meta.TotalCount)
		}
	})

	t.Run("Until a date includes that whole day", func(t *testing.T) {
		today := time.Now().UTC().Format(time.DateOnly)
		w := authed(r, http.MethodGet, "/products/1/movements?until="+today, nil)
		resp, _ := decode[handler.MovementsSearchResult](w)
		if resp.Meta.TotalCount != 4 || resp.Data[0].Reason != "Sale" {
			t.Errorf("expected today's sale within the range, got %d movements", resp.Meta.TotalCount)
		}
	})

	t.Run("Pagination", func(t *testing.T) {
		w := authed(r, http.MethodGet, "/products/1/movements?offset=1&limit=2", nil)
		resp, _ := decode[handler.MovementsSearchResult](w)
		if len(resp.Data) != 2 || resp.Meta.TotalCount != 4 {
			t.Errorf("expected a page of 2 out of 4, got %d of %d", len(resp.Data), resp.Meta.TotalCount)
		}
	})

	t.Run("Unknown product", func(t *testing.T) {
		if w := authed(r, http.MethodGet, "/products/99/movements", nil); w.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", w.Code)
		}
	})

	for _, bad := range []string{"since=yesterday", "until=2025-13-01", "type=transfer", "limit=0"} {
		t.Run("rejects "+bad, func(t *testing.T) {
			if w := authed(r, http.MethodGet, "/products/1/movements?"+bad, nil); w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestListAndRecentMovementsHandlers(t *testing.T) {
	r := newRouter()

	w := authed(r, http.MethodGet, "/movements?productId=3", nil)
	resp, _ := decode[handler.MovementsSearchResult](w)
	if resp.Meta.TotalCount != 2 {
		t.Errorf("expected 2 paper movements, got %d", resp.Meta.TotalCount)
	}

	for i := range 3 {
		moveStock(r, 4, handler.StockMovementRequest{MovementType: models.MovementIn, Quantity: i + 1, Reason: "Restock"})
	}
	w = authed(r, http.MethodGet, "/movements/recent", nil)
	recent, _ := decode[[]models.StockMovement](w)
	if len(recent) != 10 {
		t.Fatalf("expected the 10 newest of 11 movements, got %d", len(recent))
	}
	if recent[0].Quantity != 3 {
		t.Errorf("expected the last restock first, got quantity %d", recent[0].Quantity)
	}
}

func TestExportMovementsHandler(t *testing.T) {
	r := newRouter()

	t.Run("CSV", func(t *testing.T) {
		w := authed(r, http.MethodGet, "/products/1/movements/export?format=csv", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}
		if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
			t.Errorf("expected text/csv, got %s", ct)
		}
		if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "movements.csv") {
			t.Errorf("expected an attachment, got %q", cd)
		}
		records, err := csv.NewReader(w.Body).ReadAll()
		if err != nil {
			t.Fatalf("invalid CSV: %v", err)
		}
		if len(records) != 4 || records[0][2] != "movement_type" {
			t.Errorf("expected header plus 3 rows, got %v", records)
		}
	})

	t.Run("JSON", func(t *testing.T) {
		w := authed(r, http.MethodGet, "/products/1/movements/export?format=json", nil)
		var movements []models.StockMovement
		if err := json.NewDecoder(w.Body).Decode(&movements); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(movements) != 3 {
			t.Errorf("expected 3 movements, got %d", len(movements))
		}
	})

	t.Run("Unknown format", func(t *testing.T) {
		if w := authed(r, http.MethodGet, "/products/1/movements/export?format=xml", nil); w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})
}
