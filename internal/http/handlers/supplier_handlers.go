package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/rogerio-castellano/inventory-console/internal/models"
	repo "github.com/rogerio-castellano/inventory-console/internal/repo"
	"github.com/rogerio-castellano/inventory-console/internal/reports"
)

func requestFromSupplier(s models.Supplier) SupplierRequest {
	return SupplierRequest{
		Name:                       s.Name,
		Type:                       s.Type,
		Categories:                 slices.Clone(s.Categories),
		Contact:                    s.Contact,
		BillingAddress:             s.BillingAddress,
		ShippingAddress:            s.ShippingAddress,
		BusinessRegistrationNumber: s.BusinessRegistrationNumber,
		TaxID:                      s.TaxID,
		VATNumber:                  s.VATNumber,
		DUNS:                       s.DUNS,
		PaymentTerms:               s.PaymentTerms,
		CreditLimit:                s.CreditLimit,
		Currency:                   s.Currency,
		Banking:                    s.Banking,
		LeadTime:                   s.LeadTime,
		MinimumOrderValue:          s.MinimumOrderValue,
		ShippingMethods:            slices.Clone(s.ShippingMethods),
		Incoterms:                  s.Incoterms,
		Certifications:             slices.Clone(s.Certifications),
		ComplianceStatus:           s.ComplianceStatus,
		Status:                     s.Status,
		Priority:                   s.Priority,
		Rating:                     s.Rating,
		RiskLevel:                  s.RiskLevel,
		Notes:                      s.Notes,
		Tags:                       slices.Clone(s.Tags),
	}
}

// applyTo copies the editable fields of req onto s.
func (req SupplierRequest) applyTo(s models.Supplier) models.Supplier {
	s.Name = strings.TrimSpace(req.Name)
	s.Type = req.Type
	s.Categories = req.Categories
	s.Contact = req.Contact
	s.BillingAddress = req.BillingAddress
	s.ShippingAddress = req.ShippingAddress
	s.BusinessRegistrationNumber = req.BusinessRegistrationNumber
	s.TaxID = req.TaxID
	s.VATNumber = req.VATNumber
	s.DUNS = req.DUNS
	s.PaymentTerms = req.PaymentTerms
	s.CreditLimit = req.CreditLimit
	s.Currency = strings.ToUpper(req.Currency)
	s.Banking = req.Banking
	s.LeadTime = req.LeadTime
	s.MinimumOrderValue = req.MinimumOrderValue
	s.ShippingMethods = req.ShippingMethods
	s.Incoterms = req.Incoterms
	s.Certifications = req.Certifications
	s.ComplianceStatus = req.ComplianceStatus
	s.Status = req.Status
	s.Priority = req.Priority
	s.Rating = req.Rating
	s.RiskLevel = req.RiskLevel
	s.Notes = req.Notes
	s.Tags = req.Tags
	return s
}

func supplierError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, repo.ErrSupplierNotFound):
		http.Error(w, "supplier not found", http.StatusNotFound)
	case errors.Is(err, repo.ErrDuplicatedValueUnique):
		http.Error(w, fmt.Sprintf("could not %s supplier: name duplicated", action), http.StatusConflict)
	default:
		log.Printf("could not %s supplier: %v", action, err)
		http.Error(w, fmt.Sprintf("could not %s supplier", action), http.StatusInternalServerError)
	}
}

// QuerySuppliersHandler godoc
// @Summary Filter, sort and paginate suppliers
// @Tags suppliers
// @Produce json
// @Param search query string false "Matches name, code, contact person or email"
// @Param status query []string false "Statuses (comma separated)"
// @Param type query []string false "Types (comma separated)"
// @Param category query []string false "Categories, any overlap matches"
// @Param priority query []string false "Priorities"
// @Param riskLevel query []string false "Risk levels"
// @Param minRating query number false "Minimum rating"
// @Param maxCreditLimit query number false "Maximum credit limit"
// @Param tags query []string false "Tags, any overlap matches"
// @Param sortBy query string false "name, rating, created_at, last_contact_date, total_orders or total_value"
// @Param sortDir query string false "asc or desc"
// @Param page query int false "Page number, from 1"
// @Param pageSize query int false "Page size (max 100)"
// @Success 200 {object} repo.SupplierPage
// @Failure 400 {string} string "Invalid query"
// @Router /suppliers [get]
// @Security BearerAuth
func QuerySuppliersHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filters := repo.SupplierFilters{
		Search:         q.Get("search"),
		Status:         splitList(q["status"]),
		Type:           splitList(q["type"]),
		Category:       splitList(q["category"]),
		Priority:       splitList(q["priority"]),
		RiskLevel:      splitList(q["riskLevel"]),
		MinRating:      parseFloatPtr(q.Get("minRating")),
		MaxCreditLimit: parseFloatPtr(q.Get("maxCreditLimit")),
		Tags:           splitList(q["tags"]),
	}

	sort := repo.SupplierSort{Field: q.Get("sortBy"), Desc: strings.EqualFold(q.Get("sortDir"), "desc")}
	if sort.Field != "" && !slices.Contains(repo.SupplierSortFields, sort.Field) {
		http.Error(w, "invalid sort field", http.StatusBadRequest)
		return
	}

	var pagination repo.Pagination
	for _, p := range []struct {
		name string
		dst  *int
	}{{"page", &pagination.Page}, {"pageSize", &pagination.PageSize}} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			http.Error(w, fmt.Sprintf("%s must be a positive number", p.name), http.StatusBadRequest)
			return
		}
		*p.dst = v
	}

	result, err := supplierRepo.Query(filters, sort, pagination)
	if err != nil {
		log.Printf("could not query suppliers: %v", err)
		http.Error(w, "could not query suppliers", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, result)
}

// GetSupplierOptionsHandler godoc
// @Summary Reference data for supplier forms
// @Tags suppliers
// @Produce json
// @Success 200 {object} SupplierOptions
// @Router /suppliers/options [get]
// @Security BearerAuth
func GetSupplierOptionsHandler(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, SupplierOptions{
		Types:          models.SupplierTypes,
		PaymentTerms:   models.PaymentTerms,
		Currencies:     models.Currencies,
		Categories:     models.SupplierCategories,
		Certifications: models.Certifications,
		SortFields:     repo.SupplierSortFields,
	})
}

// GetSupplierAnalyticsHandler godoc
// @Summary Supplier counts, average rating and top rated suppliers
// @Tags suppliers
// @Produce json
// @Success 200 {object} reports.SupplierAnalytics
// @Router /suppliers/analytics [get]
// @Security BearerAuth
func GetSupplierAnalyticsHandler(w http.ResponseWriter, r *http.Request) {
	suppliers, err := supplierRepo.GetAll()
	if err != nil {
		http.Error(w, "could not fetch suppliers", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, reports.Analytics(suppliers))
}

// GetSupplierPerformanceHandler godoc
// @Summary Delivery and quality figures per supplier
// @Tags suppliers
// @Produce json
// @Success 200 {array} reports.SupplierPerformance
// @Router /suppliers/performance [get]
// @Security BearerAuth
func GetSupplierPerformanceHandler(w http.ResponseWriter, r *http.Request) {
	suppliers, err := supplierRepo.GetAll()
	if err != nil {
		http.Error(w, "could not fetch suppliers", http.StatusInternalServerError)
		return
	}
	orders, err := purchaseOrderRepo.GetAll()
	if err != nil {
		http.Error(w, "could not fetch purchase orders", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, reports.Performance(suppliers, orders))
}

// ExportSuppliersHandler godoc
// @Summary Export every supplier as CSV
// @Tags suppliers
// @Produce text/csv
// @Success 200 {file} file
// @Router /suppliers/export [get]
// @Security BearerAuth
func ExportSuppliersHandler(w http.ResponseWriter, r *http.Request) {
	suppliers, err := supplierRepo.GetAll()
	if err != nil {
		http.Error(w, "could not fetch suppliers", http.StatusInternalServerError)
		return
	}

	attachment(w, "text/csv", "suppliers.csv")
	csvWriter := csv.NewWriter(w)
	_ = csvWriter.Write([]string{"code", "name", "type", "status", "priority", "risk_level", "rating",
		"contact_person", "email", "phone", "city", "country", "payment_terms", "currency", "categories"})
	for _, s := range suppliers {
		_ = csvWriter.Write([]string{
			s.SupplierCode,
			s.Name,
			s.Type,
			s.Status,
			s.Priority,
			s.RiskLevel,
			strconv.FormatFloat(s.Rating, 'f', 1, 64),
			s.Contact.ContactPerson,
			s.Contact.Email,
			s.Contact.Phone,
			s.BillingAddress.City,
			s.BillingAddress.Country,
			s.PaymentTerms,
			s.Currency,
			strings.Join(s.Categories, "; "),
		})
	}
	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		log.Printf("could not write suppliers CSV: %v", err)
	}
}

// GetSupplierHandler godoc
// @Summary Get supplier by ID
// @Tags suppliers
// @Produce json
// @Param id path int true "Supplier ID"
// @Success 200 {object} models.Supplier
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Router /suppliers/{id} [get]
// @Security BearerAuth
func GetSupplierHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "supplier")
	if !ok {
		return
	}
	supplier, err := supplierRepo.GetByID(id)
	if err != nil {
		supplierError(w, err, "fetch")
		return
	}
	respond(w, http.StatusOK, supplier)
}

// CreateSupplierHandler godoc
// @Summary Create a supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Param supplier body SupplierRequest true "Supplier to add"
// @Success 201 {object} models.Supplier
// @Failure 400 {object} ValidationErrorsResult
// @Failure 409 {string} string "Name duplicated"
// @Router /suppliers [post]
// @Security BearerAuth
func CreateSupplierHandler(w http.ResponseWriter, r *http.Request) {
	req := SupplierRequest{Currency: "USD"}
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if rejectInvalid(w, req) {
		return
	}

	supplier := req.applyTo(models.Supplier{CreatedBy: principal(r).Username})
	created, err := supplierRepo.Create(supplier)
	if err != nil {
		supplierError(w, err, "create")
		return
	}
	log.Printf("🏭 Supplier created: %s (%s)", created.Name, created.SupplierCode)
	respond(w, http.StatusCreated, created)
}

// UpdateSupplierHandler godoc
// @Summary Update a supplier
// @Description Fields missing from the body keep their current value.
// @Tags suppliers
// @Accept json
// @Produce json
// @Param id path int true "Supplier ID"
// @Param supplier body SupplierRequest true "Fields to change"
// @Success 200 {object} models.Supplier
// @Failure 400 {object} ValidationErrorsResult
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Name duplicated"
// @Router /suppliers/{id} [put]
// @Security BearerAuth
func UpdateSupplierHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "supplier")
	if !ok {
		return
	}

	existing, err := supplierRepo.GetByID(id)
	if err != nil {
		supplierError(w, err, "fetch")
		return
	}

	req := requestFromSupplier(existing)
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if rejectInvalid(w, req) {
		return
	}

	supplier := req.applyTo(existing)
	supplier.UpdatedBy = principal(r).Username
	updated, err := supplierRepo.Update(supplier)
	if err != nil {
		supplierError(w, err, "update")
		return
	}
	respond(w, http.StatusOK, updated)
}

// DeleteSupplierHandler godoc
// @Summary Delete a supplier
// @Tags suppliers
// @Param id path int true "Supplier ID"
// @Success 204 "Deleted successfully"
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Router /suppliers/{id} [delete]
// @Security BearerAuth
func DeleteSupplierHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "supplier")
	if !ok {
		return
	}

	deleted, err := supplierRepo.Delete(id)
	if err != nil {
		supplierError(w, err, "delete")
		return
	}
	if !deleted {
		http.Error(w, "supplier not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// BulkDeleteSuppliersHandler godoc
// @Summary Delete several suppliers
// @Tags suppliers
// @Accept json
// @Produce json
// @Param ids body BulkDeleteRequest true "Supplier IDs"
// @Success 200 {object} BulkDeleteResult
// @Failure 400 {object} ValidationErrorsResult
// @Router /suppliers/bulk-delete [post]
// @Security BearerAuth
func BulkDeleteSuppliersHandler(w http.ResponseWriter, r *http.Request) {
	var req BulkDeleteRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if rejectInvalid(w, req) {
		return
	}

	deleted, err := supplierRepo.BulkDelete(req.IDs)
	if err != nil {
		supplierError(w, err, "delete")
		return
	}
	log.Printf("🗑️ %d of %d suppliers deleted", deleted, len(req.IDs))
	respond(w, http.StatusOK, BulkDeleteResult{Deleted: deleted})
}

func setSupplierStatus(w http.ResponseWriter, r *http.Request, status string) {
	id, ok := urlID(w, r, "supplier")
	if !ok {
		return
	}
	supplier, err := supplierRepo.SetStatus(id, status)
	if err != nil {
		supplierError(w, err, "update")
		return
	}
	respond(w, http.StatusOK, supplier)
}

// ActivateSupplierHandler godoc
// @Summary Mark a supplier active
// @Tags suppliers
// @Produce json
// @Param id path int true "Supplier ID"
// @Success 200 {object} models.Supplier
// @Failure 404 {string} string "Not found"
// @Router /suppliers/{id}/activate [post]
// @Security BearerAuth
func ActivateSupplierHandler(w http.ResponseWriter, r *http.Request) {
	setSupplierStatus(w, r, models.SupplierStatusActive)
}

// DeactivateSupplierHandler godoc
// @Summary Mark a supplier inactive
// @Tags suppliers
// @Produce json
// @Param id path int true "Supplier ID"
// @Success 200 {object} models.Supplier
// @Failure 404 {string} string "Not found"
// @Router /suppliers/{id}/deactivate [post]
// @Security BearerAuth
func DeactivateSupplierHandler(w http.ResponseWriter, r *http.Request) {
	setSupplierStatus(w, r, models.SupplierStatusInactive)
}

// DuplicateSupplierHandler godoc
// @Summary Copy a supplier under a new name
// @Description The copy is named "<name> (Copy)", waits for approval and drops registration ids, metrics and documents.
// @Tags suppliers
// @Produce json
// @Param id path int true "Supplier ID"
// @Success 201 {object} models.Supplier
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Name duplicated"
// @Router /suppliers/{id}/duplicate [post]
// @Security BearerAuth
func DuplicateSupplierHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "supplier")
	if !ok {
		return
	}

	original, err := supplierRepo.GetByID(id)
	if err != nil {
		supplierError(w, err, "fetch")
		return
	}

	duplicate := requestFromSupplier(original).applyTo(models.Supplier{})
	duplicate.Name = original.Name + " (Copy)"
	duplicate.Status = models.SupplierStatusPendingApproval
	duplicate.BusinessRegistrationNumber = ""
	duplicate.TaxID = ""
	duplicate.VATNumber = ""
	duplicate.DUNS = ""
	duplicate.CreatedBy = principal(r).Username

	created, err := supplierRepo.Create(duplicate)
	if err != nil {
		supplierError(w, err, "duplicate")
		return
	}
	respond(w, http.StatusCreated, created)
}
