package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/rogerio-castellano/inventory-console/internal/models"
	repo "github.com/rogerio-castellano/inventory-console/internal/repo"
)

func purchaseOrderError(w http.ResponseWriter, err error) {
	if errors.Is(err, repo.ErrPurchaseOrderNotFound) {
		http.Error(w, "purchase order not found", http.StatusNotFound)
		return
	}
	log.Printf("purchase order request failed: %v", err)
	http.Error(w, "could not process purchase order", http.StatusInternalServerError)
}

// orderItems resolves product names, SKUs and default prices of the requested items.
func orderItems(w http.ResponseWriter, items []PurchaseOrderItemRequest) ([]models.PurchaseOrderItem, bool) {
	out := make([]models.PurchaseOrderItem, len(items))
	for i, item := range items {
		product, err := productRepo.GetByID(item.ProductID)
		if err != nil {
			if errors.Is(err, repo.ErrProductNotFound) {
				respond(w, http.StatusBadRequest, ValidationErrorsResult{Errors: []ValidationError{
					{Field: "items.product_id", Description: "product_id does not match any product"},
				}})
				return nil, false
			}
			http.Error(w, "could not fetch product", http.StatusInternalServerError)
			return nil, false
		}

		unitPrice := item.UnitPrice
		if unitPrice == 0 {
			unitPrice = product.CostPrice
		}
		out[i] = models.PurchaseOrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			SKU:         product.SKU,
			Quantity:    item.Quantity,
			UnitPrice:   unitPrice,
		}
	}
	return out, true
}

// GetPurchaseOrdersHandler godoc
// @Summary List purchase orders
// @Tags purchase-orders
// @Produce json
// @Param supplierId query int false "Only orders of this supplier"
// @Success 200 {array} models.PurchaseOrder
// @Router /purchase-orders [get]
// @Security BearerAuth
func GetPurchaseOrdersHandler(w http.ResponseWriter, r *http.Request) {
	var (
		orders []models.PurchaseOrder
		err    error
	)
	if supplierID := parseIntPtr(r.URL.Query().Get("supplierId")); supplierID != nil {
		orders, err = purchaseOrderRepo.BySupplier(*supplierID)
	} else {
		orders, err = purchaseOrderRepo.GetAll()
	}
	if err != nil {
		purchaseOrderError(w, err)
		return
	}
	respond(w, http.StatusOK, orders)
}

// GetPurchaseOrderHandler godoc
// @Summary Get purchase order by ID
// @Tags purchase-orders
// @Produce json
// @Param id path int true "Purchase order ID"
// @Success 200 {object} models.PurchaseOrder
// @Failure 404 {string} string "Not found"
// @Router /purchase-orders/{id} [get]
// @Security BearerAuth
func GetPurchaseOrderHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "purchase order")
	if !ok {
		return
	}
	order, err := purchaseOrderRepo.GetByID(id)
	if err != nil {
		purchaseOrderError(w, err)
		return
	}
	respond(w, http.StatusOK, order)
}

// CreatePurchaseOrderHandler godoc
// @Summary Create a purchase order
// @Description Item totals, subtotal and total are computed. Items without a unit price use the product cost price.
// @Tags purchase-orders
// @Accept json
// @Produce json
// @Param order body PurchaseOrderRequest true "Order to place"
// @Success 201 {object} models.PurchaseOrder
// @Failure 400 {object} ValidationErrorsResult
// @Router /purchase-orders [post]
// @Security BearerAuth
func CreatePurchaseOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req PurchaseOrderRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if rejectInvalid(w, req) {
		return
	}

	expected, err := parseTimeParam(req.ExpectedDeliveryDate)
	if err != nil {
		respond(w, http.StatusBadRequest, ValidationErrorsResult{Errors: []ValidationError{
			{Field: "expected_delivery_date", Description: "expected_delivery_date must be a date"},
		}})
		return
	}

	supplier, err := supplierRepo.GetByID(req.SupplierID)
	if err != nil {
		if errors.Is(err, repo.ErrSupplierNotFound) {
			respond(w, http.StatusBadRequest, ValidationErrorsResult{Errors: []ValidationError{
				{Field: "supplier_id", Description: "supplier_id does not match any supplier"},
			}})
			return
		}
		http.Error(w, "could not fetch supplier", http.StatusInternalServerError)
		return
	}

	items, ok := orderItems(w, req.Items)
	if !ok {
		return
	}

	created, err := purchaseOrderRepo.Create(models.PurchaseOrder{
		SupplierID:           supplier.ID,
		SupplierName:         supplier.Name,
		ExpectedDeliveryDate: *expected,
		Status:               req.Status,
		Items:                items,
		Tax:                  req.Tax,
		Shipping:             req.Shipping,
		Notes:                req.Notes,
		CreatedBy:            principal(r).Username,
	})
	if err != nil {
		purchaseOrderError(w, err)
		return
	}
	log.Printf("🧾 Purchase order %s placed with %s, total %.2f", created.OrderNumber, created.SupplierName, created.Total)
	respond(w, http.StatusCreated, created)
}

// UpdatePurchaseOrderHandler godoc
// @Summary Update status, costs or received quantities of a purchase order
// @Description Marking an order delivered without a delivery date stamps the current time.
// @Tags purchase-orders
// @Accept json
// @Produce json
// @Param id path int true "Purchase order ID"
// @Param order body PurchaseOrderUpdateRequest true "Changes"
// @Success 200 {object} models.PurchaseOrder
// @Failure 400 {object} ValidationErrorsResult
// @Failure 404 {string} string "Not found"
// @Router /purchase-orders/{id} [put]
// @Security BearerAuth
func UpdatePurchaseOrderHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "purchase order")
	if !ok {
		return
	}

	var req PurchaseOrderUpdateRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if rejectInvalid(w, req) {
		return
	}

	order, err := purchaseOrderRepo.GetByID(id)
	if err != nil {
		purchaseOrderError(w, err)
		return
	}

	if req.Status != "" {
		order.Status = req.Status
	}
	if req.Tax != nil {
		order.Tax = *req.Tax
	}
	if req.Shipping != nil {
		order.Shipping = *req.Shipping
	}
	if req.Notes != nil {
		order.Notes = *req.Notes
	}
	for i, item := range order.Items {
		if received, ok := req.ReceivedQuantities[item.ProductID]; ok {
			order.Items[i].ReceivedQuantity = max(0, received)
		}
	}

	delivered, err := parseTimeParam(req.ActualDeliveryDate)
	if err != nil {
		respond(w, http.StatusBadRequest, ValidationErrorsResult{Errors: []ValidationError{
			{Field: "actual_delivery_date", Description: "actual_delivery_date must be a date"},
		}})
		return
	}
	if delivered != nil {
		order.ActualDeliveryDate = delivered
	}
	if order.Status == models.OrderStatusDelivered && order.ActualDeliveryDate == nil {
		t := now()
		order.ActualDeliveryDate = &t
	}

	updated, err := purchaseOrderRepo.Update(order)
	if err != nil {
		purchaseOrderError(w, err)
		return
	}
	respond(w, http.StatusOK, updated)
}
