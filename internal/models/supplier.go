package models

import (
	"slices"
	"time"
)

const (
	SupplierStatusActive          = "active"
	SupplierStatusInactive        = "inactive"
	SupplierStatusSuspended       = "suspended"
	SupplierStatusPendingApproval = "pending-approval"
)

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

const (
	ComplianceCompliant    = "compliant"
	CompliancePending      = "pending"
	ComplianceNonCompliant = "non-compliant"
)

type Address struct {
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	ZipCode string `json:"zip_code" validate:"required"`
	Country string `json:"country" validate:"required"`
}

type ContactInfo struct {
	ContactPerson  string `json:"contact_person" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"required,phone"`
	AlternatePhone string `json:"alternate_phone,omitempty" validate:"omitempty,phone"`
	Fax            string `json:"fax,omitempty" validate:"omitempty,phone"`
	Website        string `json:"website,omitempty" validate:"omitempty,url"`
}

type BankingInfo struct {
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	RoutingNumber string `json:"routing_number,omitempty"`
	SwiftCode     string `json:"swift_code,omitempty"`
	IBAN          string `json:"iban,omitempty"`
}

type SupplierMetrics struct {
	TotalOrders        int        `json:"total_orders"`
	TotalValue         float64    `json:"total_value"`
	OnTimeDeliveryRate float64    `json:"on_time_delivery_rate"`
	QualityScore       float64    `json:"quality_score"`
	AverageLeadTime    float64    `json:"average_lead_time"`
	DefectRate         float64    `json:"defect_rate"`
	LastOrderDate      *time.Time `json:"last_order_date,omitempty"`
}

type SupplierDocument struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	URL        string     `json:"url"`
	UploadedAt time.Time  `json:"uploaded_at"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

type Supplier struct {
	ID                         int                `json:"id"`
	Name                       string             `json:"name"`
	SupplierCode               string             `json:"supplier_code"`
	Type                       string             `json:"type"`
	Categories                 []string           `json:"categories"`
	Contact                    ContactInfo        `json:"contact"`
	BillingAddress             Address            `json:"billing_address"`
	ShippingAddress            *Address           `json:"shipping_address,omitempty"`
	BusinessRegistrationNumber string             `json:"business_registration_number,omitempty"`
	TaxID                      string             `json:"tax_id,omitempty"`
	VATNumber                  string             `json:"vat_number,omitempty"`
	DUNS                       string             `json:"duns,omitempty"`
	PaymentTerms               string             `json:"payment_terms"`
	CreditLimit                float64            `json:"credit_limit"`
	Currency                   string             `json:"currency"`
	Banking                    *BankingInfo       `json:"banking,omitempty"`
	LeadTime                   int                `json:"lead_time"`
	MinimumOrderValue          float64            `json:"minimum_order_value"`
	ShippingMethods            []string           `json:"shipping_methods,omitempty"`
	Incoterms                  string             `json:"incoterms,omitempty"`
	Certifications             []string           `json:"certifications,omitempty"`
	ComplianceStatus           string             `json:"compliance_status"`
	Status                     string             `json:"status"`
	Priority                   string             `json:"priority"`
	Rating                     float64            `json:"rating"`
	RiskLevel                  string             `json:"risk_level"`
	Metrics                    *SupplierMetrics   `json:"metrics,omitempty"`
	Notes                      string             `json:"notes,omitempty"`
	Tags                       []string           `json:"tags,omitempty"`
	Documents                  []SupplierDocument `json:"documents,omitempty"`
	CreatedBy                  string             `json:"created_by,omitempty"`
	UpdatedBy                  string             `json:"updated_by,omitempty"`
	CreatedAt                  time.Time          `json:"created_at"`
	UpdatedAt                  time.Time          `json:"updated_at"`
	LastContactDate            *time.Time         `json:"last_contact_date,omitempty"`
}

// Option is a value/label pair offered to supplier forms.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var SupplierTypes = []Option{
	{Value: "manufacturer", Label: "Manufacturer"},
	{Value: "distributor", Label: "Distributor"},
	{Value: "wholesaler", Label: "Wholesaler"},
	{Value: "service-provider", Label: "Service Provider"},
	{Value: "other", Label: "Other"},
}

var PaymentTerms = []string{"Net 15", "Net 30", "Net 45", "Net 60", "Due on Receipt", "Cash in Advance", "2/10 Net 30"}

var Currencies = []string{"USD", "EUR", "GBP", "CAD", "AUD", "JPY", "CNY"}

var SupplierCategories = []string{
	"Electronics", "Office Supplies", "Furniture", "Raw Materials", "Packaging",
	"Logistics", "IT Services", "Maintenance", "Cleaning Supplies", "Safety Equipment",
}

var Certifications = []string{"ISO 9001", "ISO 14001", "ISO 45001", "ISO 27001", "CE", "RoHS", "FSC", "Fair Trade"}

// Clone returns a copy of s that shares no pointers or slices with it.
func (s Supplier) Clone() Supplier {
	s.Categories = slices.Clone(s.Categories)
	s.ShippingMethods = slices.Clone(s.ShippingMethods)
	s.Certifications = slices.Clone(s.Certifications)
	s.Tags = slices.Clone(s.Tags)
	s.Documents = slices.Clone(s.Documents)
	if s.ShippingAddress != nil {
		a := *s.ShippingAddress
		s.ShippingAddress = &a
	}
	if s.Banking != nil {
		b := *s.Banking
		s.Banking = &b
	}
	if s.Metrics != nil {
		m := *s.Metrics
		s.Metrics = &m
	}
	if s.LastContactDate != nil {
		t := *s.LastContactDate
		s.LastContactDate = &t
	}
	return s
}
