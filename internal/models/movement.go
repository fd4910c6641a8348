package models

import "time"

const (
	MovementIn         = "in"
	MovementOut        = "out"
	MovementAdjustment = "adjustment"
)

// StockMovement records a single change to a product's stock level.
type StockMovement struct {
	ID            int       `json:"id"`
	ProductID     int       `json:"product_id"`
	ProductName   string    `json:"product_name"`
	MovementType  string    `json:"movement_type"`
	Quantity      int       `json:"quantity"`
	PreviousStock int       `json:"previous_stock"`
	NewStock      int       `json:"new_stock"`
	Reason        string    `json:"reason"`
	Reference     string    `json:"reference,omitempty"`
	Cost          float64   `json:"cost,omitempty"`
	UserID        int       `json:"user_id"`
	UserName      string    `json:"user_name"`
	Timestamp     time.Time `json:"timestamp"`
	Notes         string    `json:"notes,omitempty"`
}
