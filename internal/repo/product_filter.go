package repo

type ProductFilter struct {
	Name       string
	Category   string
	Status     string
	SupplierID *int
	MinPrice   *float64
	MaxPrice   *float64
	MinQty     *int
	MaxQty     *int
	LowStock   bool
	SortBy     string
	SortDesc   bool
	Offset     *int
	Limit      *int
}

// ProductSortFields maps accepted sort keys to their column names.
var ProductSortFields = map[string]string{
	"id":            "id",
	"name":          "name",
	"sku":           "sku",
	"current_stock": "current_stock",
	"selling_price": "selling_price",
	"created_at":    "created_at",
}
