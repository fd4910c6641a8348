package handlers

import (
	"github.com/rogerio-castellano/inventory-console/internal/models"
)

type ProductRequest struct {
	Name          string             `json:"name" validate:"required,min=2"`
	Description   string             `json:"description" validate:"required,min=10"`
	SKU           string             `json:"sku" validate:"required,sku"`
	Category      string             `json:"category" validate:"required"`
	SupplierID    int                `json:"supplier_id" validate:"required"`
	CostPrice     float64            `json:"cost_price" validate:"gte=0.01"`
	SellingPrice  float64            `json:"selling_price" validate:"gte=0.01"`
	CurrentStock  int                `json:"current_stock" validate:"gte=0"`
	MinStockLevel int                `json:"min_stock_level" validate:"gte=0"`
	MaxStockLevel int                `json:"max_stock_level" validate:"gte=1"`
	Unit          string             `json:"unit" validate:"required"`
	Status        string             `json:"status" validate:"omitempty,oneof=active inactive discontinued"`
	ImageURL      string             `json:"image_url,omitempty" validate:"omitempty,url"`
	Barcode       string             `json:"barcode,omitempty"`
	Location      string             `json:"location,omitempty"`
	Weight        float64            `json:"weight,omitempty" validate:"gte=0"`
	Dimensions    *models.Dimensions `json:"dimensions,omitempty"`
}

type ProductResponse struct {
	models.Product
	LowStock    bool   `json:"low_stock"`
	StockStatus string `json:"stock_status"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type ProductsSearchResult struct {
	Data []ProductResponse `json:"data"`
	Meta Meta              `json:"meta,omitempty"`
}

type StockMovementRequest struct {
	MovementType string  `json:"movement_type" validate:"required,oneof=in out adjustment"`
	Quantity     int     `json:"quantity" validate:"gte=0"`
	Reason       string  `json:"reason" validate:"required"`
	Reference    string  `json:"reference,omitempty"`
	Cost         float64 `json:"cost,omitempty" validate:"gte=0"`
	Notes        string  `json:"notes,omitempty"`
}

type StockMovementResult struct {
	Product  ProductResponse      `json:"product"`
	Movement models.StockMovement `json:"movement"`
}

type MovementsSearchResult struct {
	Data []models.StockMovement `json:"data"`
	Meta Meta                   `json:"meta,omitempty"`
}

type ImportProductsResult struct {
	ImportedProductsCount int               `json:"imported"`
	Errors                []ValidationError `json:"errors"`
}

type SupplierRequest struct {
	Name                       string              `json:"name" validate:"required,min=2,max=100"`
	Type                       string              `json:"type" validate:"required,oneof=manufacturer distributor wholesaler service-provider other"`
	Categories                 []string            `json:"categories" validate:"required,min=1"`
	Contact                    models.ContactInfo  `json:"contact"`
	BillingAddress             models.Address      `json:"billing_address"`
	ShippingAddress            *models.Address     `json:"shipping_address,omitempty"`
	BusinessRegistrationNumber string              `json:"business_registration_number,omitempty"`
	TaxID                      string              `json:"tax_id,omitempty"`
	VATNumber                  string              `json:"vat_number,omitempty"`
	DUNS                       string              `json:"duns,omitempty"`
	PaymentTerms               string              `json:"payment_terms" validate:"required"`
	CreditLimit                float64             `json:"credit_limit" validate:"gte=0"`
	Currency                   string              `json:"currency" validate:"required,len=3"`
	Banking                    *models.BankingInfo `json:"banking,omitempty"`
	LeadTime                   int                 `json:"lead_time" validate:"gte=0"`
	MinimumOrderValue          float64             `json:"minimum_order_value" validate:"gte=0"`
	ShippingMethods            []string            `json:"shipping_methods,omitempty"`
	Incoterms                  string              `json:"incoterms,omitempty"`
	Certifications             []string            `json:"certifications,omitempty"`
	ComplianceStatus           string              `json:"compliance_status,omitempty" validate:"omitempty,oneof=compliant pending non-compliant"`
	Status                     string              `json:"status,omitempty" validate:"omitempty,oneof=active inactive suspended pending-approval"`
	Priority                   string              `json:"priority,omitempty" validate:"omitempty,oneof=high medium low"`
	Rating                     float64             `json:"rating" validate:"gte=0,lte=5"`
	RiskLevel                  string              `json:"risk_level,omitempty" validate:"omitempty,oneof=low medium high"`
	Notes                      string              `json:"notes,omitempty"`
	Tags                       []string            `json:"tags,omitempty"`
}

type SupplierOptions struct {
	Types          []models.Option `json:"types"`
	PaymentTerms   []string        `json:"payment_terms"`
	Currencies     []string        `json:"currencies"`
	Categories     []string        `json:"categories"`
	Certifications []string        `json:"certifications"`
	SortFields     []string        `json:"sort_fields"`
}

type BulkDeleteRequest struct {
	IDs []int `json:"ids" validate:"required,min=1"`
}

type BulkDeleteResult struct {
	Deleted int `json:"deleted"`
}

type PurchaseOrderItemRequest struct {
	ProductID int     `json:"product_id" validate:"required"`
	Quantity  int     `json:"quantity" validate:"gte=1"`
	UnitPrice float64 `json:"unit_price" validate:"gte=0"`
}

type PurchaseOrderRequest struct {
	SupplierID           int                        `json:"supplier_id" validate:"required"`
	ExpectedDeliveryDate string                     `json:"expected_delivery_date" validate:"required"`
	Status               string                     `json:"status,omitempty" validate:"omitempty,oneof=pending ordered delivered cancelled"`
	Items                []PurchaseOrderItemRequest `json:"items" validate:"required,min=1,dive"`
	Tax                  float64                    `json:"tax" validate:"gte=0"`
	Shipping             float64                    `json:"shipping" validate:"gte=0"`
	Notes                string                     `json:"notes,omitempty"`
}

type PurchaseOrderUpdateRequest struct {
	Status             string     `json:"status,omitempty" validate:"omitempty,oneof=pending ordered delivered cancelled"`
	ActualDeliveryDate string     `json:"actual_delivery_date,omitempty"`
	Tax                *float64   `json:"tax,omitempty" validate:"omitempty,gte=0"`
	Shipping           *float64   `json:"shipping,omitempty" validate:"omitempty,gte=0"`
	Notes              *string    `json:"notes,omitempty"`
	ReceivedQuantities map[int]int `json:"received_quantities,omitempty"`
}

type NotificationRequest struct {
	Type      string `json:"type" validate:"required,oneof=info warning error success"`
	Title     string `json:"title" validate:"required"`
	Message   string `json:"message" validate:"required"`
	ActionURL string `json:"action_url,omitempty"`
	ProductID int    `json:"product_id,omitempty"`
}

type NotificationsResult struct {
	Data        []models.NotificationItem `json:"data"`
	UnreadCount int                       `json:"unread_count"`
}

type CredentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Token        string      `json:"token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresIn    int         `json:"expires_in"`
	User         models.User `json:"user"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type CreateUserRequest struct {
	Username   string `json:"username" validate:"required,min=3"`
	Password   string `json:"password" validate:"required,min=6"`
	Email      string `json:"email" validate:"required,email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Role       string `json:"role" validate:"required,oneof=admin manager staff viewer"`
	Department string `json:"department,omitempty"`
}

type MessageResult struct {
	Message string `json:"message"`
}
