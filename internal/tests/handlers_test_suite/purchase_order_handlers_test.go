package handlers_test_suite

import (
	"net/http"
	"testing"
	"time"

	handler "github.com/rogerio-castellano/inventory-console/internal/http/handlers"
	"github.com/rogerio-castellano/inventory-console/internal/models"
)

func TestGetPurchaseOrdersHandler(t *testing.T) {
	r := newRouter()

	t.Run("All", func(t *testing.T) {
		w := authed(r, http.MethodGet, "/purchase-orders", nil)
		resp, err := decode[[]models.PurchaseOrder](w)
		if err != nil {
			t.Fatalf("error decoding response: %v", err)
		}
		if len(resp) != 3 {
			t.Fatalf("expected 3 orders, got %d", len(resp))
		}
		if resp[0].OrderNumber != "PO-1001" || resp[0].Total != 2505 {
			t.Errorf("unexpected first order %s with total %.2f", resp[0].OrderNumber, resp[0].Total)
		}
	})

	t.Run("By supplier", func(t *testing.T) {
		w := authed(r, http.MethodGet, "/purchase-orders?supplierId=1", nil)
		resp, _ := decode[[]models.PurchaseOrder](w)
		if len(resp) != 1 || resp[0].OrderNumber != "PO-1000" || len(resp[0].Items) != 2 {
			t.Errorf("expected PO-1000 with 2 items, got %+v", resp)
		}
	})

	t.Run("By ID", func(t *testing.T) {
		w := authed(r, http.MethodGet, "/purchase-orders/2", nil)
		resp, _ := decode[models.PurchaseOrder](w)
		if resp.SupplierName != "Office Depot" || resp.Status != models.OrderStatusOrdered {
			t.Errorf("unexpected order %+v", resp)
		}
		if w := authed(r, http.MethodGet, "/purchase-orders/99", nil); w.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", w.Code)
		}
		if w := authed(r, http.MethodGet, "/purchase-orders/abc", nil); w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})
}

func TestCreatePurchaseOrderHandler(t *testing.T) {
	r := newRouter()
	expected := time.Now().AddDate(0, 0, 7).Format("2006-01-02")

	t.Run("Valid", func(t *testing.T) {
		w := authed(r, http.MethodPost, "/purchase-orders", handler.PurchaseOrderRequest{
			SupplierID:           1,
			ExpectedDeliveryDate: expected,
			Items: []handler.PurchaseOrderItemRequest{
				{ProductID: 1, Quantity: 2},
				{ProductID: 4, Quantity: 10, UnitPrice: 12.5},
			},
			Tax:      40,
			Shipping: 9.99,
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		resp, _ := decode[models.PurchaseOrder](w)
		if resp.ID != 4 || resp.SupplierName != "Tech Solutions Inc." || resp.Status != models.OrderStatusPending {
			t.Errorf("unexpected order %+v", resp)
		}
		if resp.Items[0].UnitPrice != 800 || resp.Items[0].SKU != "DELL-INS-15" {
			t.Errorf("expected cost price and SKU from the product, got %+v", resp.Items[0])
		}
		if resp.Subtotal != 1725 || resp.Total != 1774.99 {
			t.Errorf("expected subtotal 1725 and total 1774.99, got %.2f and %.2f", resp.Subtotal, resp.Total)
		}
		if resp.CreatedBy != "admin" {
			t.Errorf("expected created by admin, got %s", resp.CreatedBy)
		}
	})

	tests := []struct {
		name  string
		req   handler.PurchaseOrderRequest
		field string
	}{
		{"no items", handler.PurchaseOrderRequest{SupplierID: 1, ExpectedDeliveryDate: expected}, "items"},
		{"zero quantity", handler.PurchaseOrderRequest{
			SupplierID: 1, ExpectedDeliveryDate: expected,
			Items: []handler.PurchaseOrderItemRequest{{ProductID: 1}},
		}, "items[0].quantity"},
		{"bad date", handler.PurchaseOrderRequest{
			SupplierID: 1, ExpectedDeliveryDate: "next week",
			Items: []handler.PurchaseOrderItemRequest{{ProductID: 1, Quantity: 1}},
		}, "expected_delivery_date"},
		{"unknown supplier", handler.PurchaseOrderRequest{
			SupplierID: 42, ExpectedDeliveryDate: expected,
			Items: []handler.PurchaseOrderItemRequest{{ProductID: 1, Quantity: 1}},
		}, "supplier_id"},
		{"unknown product", handler.PurchaseOrderRequest{
			SupplierID: 1, ExpectedDeliveryDate: expected,
			Items: []handler.PurchaseOrderItemRequest{{ProductID: 42, Quantity: 1}},
		}, "items.product_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := authed(r, http.MethodPost, "/purchase-orders", tt.req)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			resp, _ := decode[handler.ValidationErrorsResult](w)
			found := false
			for _, e := range resp.Errors {
				if e.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("expected an error on %s, got %+v", tt.field, resp.Errors)
			}
		})
	}
}

func TestUpdatePurchaseOrderHandler(t *testing.T) {
	r := newRouter()

	t.Run("Deliver", func(t *testing.T) {
		w := authed(r, http.MethodPut, "/purchase-orders/2", map[string]any{
			"status":              "delivered",
			"received_quantities": map[string]int{"3": 78},
			"shipping":            0,
		})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		resp, _ := decode[models.PurchaseOrder](w)
		if resp.Status != models.OrderStatusDelivered || resp.ActualDeliveryDate == nil {
			t.Errorf("expected a delivered order with a delivery date, got %+v", resp)
		}
		if resp.Items[0].ReceivedQuantity != 78 {
			t.Errorf("expected 78 received, got %d", resp.Items[0].ReceivedQuantity)
		}
		if resp.OrderNumber != "PO-1002" || resp.Total != 432 {
			t.Errorf("expected PO-1002 totalling 432 without shipping, got %s %.2f", resp.OrderNumber, resp.Total)
		}
	})

	t.Run("Explicit delivery date", func(t *testing.T) {
		w := authed(r, http.MethodPut, "/purchase-orders/1", map[string]any{
			"status": "delivered", "actual_delivery_date": "2025-03-01",
		})
		resp, _ := decode[models.PurchaseOrder](w)
		if resp.ActualDeliveryDate == nil || resp.ActualDeliveryDate.Format("2006-01-02") != "2025-03-01" {
			t.Errorf("expected delivery on 2025-03-01, got %v", resp.ActualDeliveryDate)
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		if w := authed(r, http.MethodPut, "/purchase-orders/1", map[string]any{"status": "lost"}); w.Code != http.StatusBadRequest {
			t.Errorf("expected 400 on status, got %d", w.Code)
		}
		if w := authed(r, http.MethodPut, "/purchase-orders/1", map[string]any{"tax": -1}); w.Code != http.StatusBadRequest {
			t.Errorf("expected 400 on tax, got %d", w.Code)
		}
		if w := authed(r, http.MethodPut, "/purchase-orders/99", map[string]any{"status": "ordered"}); w.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", w.Code)
		}
	})
}
