package repo

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/rogerio-castellano/inventory-console/internal/models"
)

const (
	DefaultPageSize = 25
	MaxPageSize     = 100
)

// SupplierFilters narrows a supplier listing. Empty lists and zero values impose no constraint.
type SupplierFilters struct {
	Search         string
	Status         []string
	Type           []string
	Category       []string
	Priority       []string
	RiskLevel      []string
	MinRating      *float64
	MaxCreditLimit *float64
	Tags           []string
}

type SupplierSort struct {
	Field string
	Desc  bool
}

type Pagination struct {
	Page     int
	PageSize int
}

type SupplierPage struct {
	Data       []models.Supplier `json:"data"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

var SupplierSortFields = []string{"name", "rating", "created_at", "last_contact_date", "total_orders", "total_value"}

func containsFold(values []string, v string) bool {
	return slices.ContainsFunc(values, func(s string) bool { return strings.EqualFold(s, v) })
}

func overlaps(wanted, have []string) bool {
	return slices.ContainsFunc(have, func(h string) bool { return containsFold(wanted, h) })
}

func matchesSupplier(s models.Supplier, f SupplierFilters) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(s.Name), q) &&
			!strings.Contains(strings.ToLower(s.SupplierCode), q) &&
			!strings.Contains(strings.ToLower(s.Contact.ContactPerson), q) &&
			!strings.Contains(strings.ToLower(s.Contact.Email), q) {
			return false
		}
	}
	if len(f.Status) > 0 && !containsFold(f.Status, s.Status) {
		return false
	}
	if len(f.Type) > 0 && !containsFold(f.Type, s.Type) {
		return false
	}
	if len(f.Category) > 0 && !overlaps(f.Category, s.Categories) {
		return false
	}
	if len(f.Priority) > 0 && !containsFold(f.Priority, s.Priority) {
		return false
	}
	if len(f.RiskLevel) > 0 && !containsFold(f.RiskLevel, s.RiskLevel) {
		return false
	}
	if f.MinRating != nil && s.Rating < *f.MinRating {
		return false
	}
	if f.MaxCreditLimit != nil && s.CreditLimit > *f.MaxCreditLimit {
		return false
	}
	if len(f.Tags) > 0 && !overlaps(f.Tags, s.Tags) {
		return false
	}
	return true
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func supplierMetrics(s models.Supplier) models.SupplierMetrics {
	if s.Metrics == nil {
		return models.SupplierMetrics{}
	}
	return *s.Metrics
}

func compareSuppliers(field string) func(a, b models.Supplier) int {
	switch field {
	case "rating":
		return func(a, b models.Supplier) int { return cmp.Compare(a.Rating, b.Rating) }
	case "created_at":
		return func(a, b models.Supplier) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case "last_contact_date":
		return func(a, b models.Supplier) int {
			return timeOrZero(a.LastContactDate).Compare(timeOrZero(b.LastContactDate))
		}
	case "total_orders":
		return func(a, b models.Supplier) int {
			return cmp.Compare(supplierMetrics(a).TotalOrders, supplierMetrics(b).TotalOrders)
		}
	case "total_value":
		return func(a, b models.Supplier) int {
			return cmp.Compare(supplierMetrics(a).TotalValue, supplierMetrics(b).TotalValue)
		}
	default:
		return func(a, b models.Supplier) int {
			return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
	}
}

// QuerySuppliers filters, sorts and paginates suppliers. Total counts matches before paging.
func QuerySuppliers(all []models.Supplier, f SupplierFilters, s SupplierSort, p Pagination) SupplierPage {
	filtered := []models.Supplier{}
	for _, sup := range all {
		if matchesSupplier(sup, f) {
			filtered = append(filtered, sup)
		}
	}

	compare := compareSuppliers(s.Field)
	slices.SortStableFunc(filtered, func(a, b models.Supplier) int {
		if s.Desc {
			return compare(b, a)
		}
		return compare(a, b)
	})

	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	p.PageSize = min(p.PageSize, MaxPageSize)

	total := len(filtered)
	offset := (p.Page - 1) * p.PageSize
	limit := p.PageSize

	return SupplierPage{
		Data:       page(filtered, &offset, &limit),
		Total:      total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: (total + p.PageSize - 1) / p.PageSize,
	}
}
