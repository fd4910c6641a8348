package models

import "time"

const (
	OrderStatusPending   = "pending"
	OrderStatusOrdered   = "ordered"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

type PurchaseOrderItem struct {
	ID               int     `json:"id"`
	ProductID        int     `json:"product_id"`
	ProductName      string  `json:"product_name"`
	SKU              string  `json:"sku"`
	Quantity         int     `json:"quantity"`
	UnitPrice        float64 `json:"unit_price"`
	TotalPrice       float64 `json:"total_price"`
	ReceivedQuantity int     `json:"received_quantity"`
}

type PurchaseOrder struct {
	ID                   int                 `json:"id"`
	OrderNumber          string              `json:"order_number"`
	SupplierID           int                 `json:"supplier_id"`
	SupplierName         string              `json:"supplier_name"`
	OrderDate            time.Time           `json:"order_date"`
	ExpectedDeliveryDate time.Time           `json:"expected_delivery_date"`
	ActualDeliveryDate   *time.Time          `json:"actual_delivery_date,omitempty"`
	Status               string              `json:"status"`
	Items                []PurchaseOrderItem `json:"items"`
	Subtotal             float64             `json:"subtotal"`
	Tax                  float64             `json:"tax"`
	Shipping             float64             `json:"shipping"`
	Total                float64             `json:"total"`
	Notes                string              `json:"notes,omitempty"`
	CreatedBy            string              `json:"created_by,omitempty"`
	CreatedAt            time.Time           `json:"created_at"`
	UpdatedAt            time.Time           `json:"updated_at"`
}

// IsOpen reports whether the order is still awaiting delivery.
func (o PurchaseOrder) IsOpen() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusOrdered
}
