package models

import "time"

const (
	NotificationInfo    = "info"
	NotificationWarning = "warning"
	NotificationError   = "error"
	NotificationSuccess = "success"
)

type NotificationItem struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	IsRead    bool      `json:"is_read"`
	ActionURL string    `json:"action_url,omitempty"`
	ProductID int       `json:"product_id,omitempty"`
}

type DashboardStats struct {
	TotalProducts   int     `json:"total_products"`
	TotalValue      float64 `json:"total_value"`
	LowStockItems   int     `json:"low_stock_items"`
	OutOfStockItems int     `json:"out_of_stock_items"`
	TotalSuppliers  int     `json:"total_suppliers"`
	PendingOrders   int     `json:"pending_orders"`
	RecentMovements int     `json:"recent_movements"`
	MonthlyTrend    float64 `json:"monthly_trend"`
}

type ChartDataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor []string  `json:"background_color,omitempty"`
	BorderColor     []string  `json:"border_color,omitempty"`
	BorderWidth     int       `json:"border_width,omitempty"`
}

type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

type TopProduct struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
	Stock    int     `json:"stock"`
	Category string  `json:"category"`
}

const (
	ReportStockLevel          = "stock-level"
	ReportMovement            = "movement"
	ReportValuation           = "valuation"
	ReportLowStock            = "low-stock"
	ReportSupplierPerformance = "supplier-performance"
)

type ReportFilter struct {
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	ProductID    int        `json:"product_id,omitempty"`
	Category     string     `json:"category,omitempty"`
	SupplierID   int        `json:"supplier_id,omitempty"`
	MovementType string     `json:"movement_type,omitempty"`
	Status       string     `json:"status,omitempty"`
}

// InventoryReport is a tabular report. Columns fixes the order of the keys in each Data row.
type InventoryReport struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Type        string           `json:"type"`
	Columns     []string         `json:"columns"`
	Data        []map[string]any `json:"data"`
	ChartData   *ChartData       `json:"chart_data,omitempty"`
	GeneratedAt time.Time        `json:"generated_at"`
	GeneratedBy string           `json:"generated_by"`
	Filters     ReportFilter     `json:"filters"`
}
