package models

import "time"

const (
	ProductStatusActive       = "active"
	ProductStatusInactive     = "inactive"
	ProductStatusDiscontinued = "discontinued"
)

const (
	StockStatusOut = "Out of Stock"
	StockStatusLow = "Low Stock"
	StockStatusIn  = "In Stock"
)

// Product represents a product entity in the inventory system.
type Product struct {
	ID            int         `json:"id"`
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	SKU           string      `json:"sku"`
	Category      string      `json:"category"`
	SupplierID    int         `json:"supplier_id"`
	SupplierName  string      `json:"supplier_name"`
	CostPrice     float64     `json:"cost_price"`
	SellingPrice  float64     `json:"selling_price"`
	CurrentStock  int         `json:"current_stock"`
	MinStockLevel int         `json:"min_stock_level"`
	MaxStockLevel int         `json:"max_stock_level"`
	Unit          string      `json:"unit"`
	Status        string      `json:"status"`
	ImageURL      string      `json:"image_url,omitempty"`
	Barcode       string      `json:"barcode,omitempty"`
	Location      string      `json:"location,omitempty"`
	Weight        float64     `json:"weight,omitempty"`
	Dimensions    *Dimensions `json:"dimensions,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// IsLowStock reports whether the stock is at or below the reorder level.
func (p Product) IsLowStock() bool {
	return p.CurrentStock <= p.MinStockLevel
}

func (p Product) IsOutOfStock() bool {
	return p.CurrentStock == 0
}

// StockStatus returns the label shown next to a product's stock level.
func (p Product) StockStatus() string {
	switch {
	case p.IsOutOfStock():
		return StockStatusOut
	case p.IsLowStock():
		return StockStatusLow
	default:
		return StockStatusIn
	}
}

type ProductCategory struct {
	ID               int       `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	ParentCategoryID int       `json:"parent_category_id,omitempty"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
}

// Clone returns a copy of p that shares no pointers with it.
func (p Product) Clone() Product {
	if p.Dimensions != nil {
		d := *p.Dimensions
		p.Dimensions = &d
	}
	return p
}
