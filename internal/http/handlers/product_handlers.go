package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gosimple/slug"
	models "github.com/rogerio-castellano/inventory-console/internal/models"
	repo "github.com/rogerio-castellano/inventory-console/internal/repo"
)

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		Product:     p,
		LowStock:    p.IsLowStock(),
		StockStatus: p.StockStatus(),
	}
}

func toProductResponses(products []models.Product) []ProductResponse {
	resp := make([]ProductResponse, len(products))
	for i, p := range products {
		resp[i] = toProductResponse(p)
	}
	return resp
}

// generateSKU keeps the first six letters or digits of the transliterated name
// and appends the last four digits of the current millisecond timestamp.
func generateSKU(name string, at time.Time) string {
	cleaned := strings.ToUpper(strings.ReplaceAll(slug.Make(name), "-", ""))
	if len(cleaned) > 6 {
		cleaned = cleaned[:6]
	}
	stamp := fmt.Sprintf("%04d", at.UnixMilli()%10000)
	if cleaned == "" {
		return "SKU-" + stamp
	}
	return cleaned + "-" + stamp
}

// newSKU generates a SKU for name, adding a numeric suffix while the
// generated one is already taken.
func newSKU(name string, at time.Time) (string, error) {
	base := generateSKU(name, at)
	sku := base
	for n := 2; ; n++ {
		_, err := productRepo.GetBySKU(sku)
		if errors.Is(err, repo.ErrProductNotFound) {
			return sku, nil
		}
		if err != nil {
			return "", err
		}
		sku = fmt.Sprintf("%s-%d", base, n)
	}
}

func requestFromProduct(p models.Product) ProductRequest {
	return ProductRequest{
		Name:          p.Name,
		Description:   p.Description,
		SKU:           p.SKU,
		Category:      p.Category,
		SupplierID:    p.SupplierID,
		CostPrice:     p.CostPrice,
		SellingPrice:  p.SellingPrice,
		CurrentStock:  p.CurrentStock,
		MinStockLevel: p.MinStockLevel,
		MaxStockLevel: p.MaxStockLevel,
		Unit:          p.Unit,
		Status:        p.Status,
		ImageURL:      p.ImageURL,
		Barcode:       p.Barcode,
		Location:      p.Location,
		Weight:        p.Weight,
		Dimensions:    p.Dimensions,
	}
}

// productFromRequest validates req and resolves its supplier. It answers the
// request itself and returns false when the product cannot be built.
func productFromRequest(w http.ResponseWriter, req ProductRequest) (models.Product, bool) {
	if req.Status == "" {
		req.Status = models.ProductStatusActive
	}
	if rejectInvalid(w, req) {
		return models.Product{}, false
	}

	p := models.Product{
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		SKU:           req.SKU,
		Category:      req.Category,
		SupplierID:    req.SupplierID,
		CostPrice:     req.CostPrice,
		SellingPrice:  req.SellingPrice,
		CurrentStock:  req.CurrentStock,
		MinStockLevel: req.MinStockLevel,
		MaxStockLevel: req.MaxStockLevel,
		Unit:          req.Unit,
		Status:        req.Status,
		ImageURL:      req.ImageURL,
		Barcode:       req.Barcode,
		Location:      req.Location,
		Weight:        req.Weight,
		Dimensions:    req.Dimensions,
	}

	if supplierRepo != nil {
		supplier, err := supplierRepo.GetByID(req.SupplierID)
		if errors.Is(err, repo.ErrSupplierNotFound) {
			respond(w, http.StatusBadRequest, ValidationErrorsResult{Errors: []ValidationError{
				{Field: "supplier_id", Description: "supplier_id does not match any supplier"},
			}})
			return models.Product{}, false
		}
		if err != nil {
			http.Error(w, "could not fetch supplier", http.StatusInternalServerError)
			return models.Product{}, false
		}
		p.SupplierName = supplier.Name
	}
	return p, true
}

// CreateProductHandler godoc
// @Summary Create a new product
// @Description Adds a product to the inventory. An empty SKU is generated from the name.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} ProductResponse
// @Failure 400 {object} ValidationErrorsResult
// @Failure 409 {string} string "SKU duplicated"
// @Router /products [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.SKU) == "" {
		sku, err := newSKU(req.Name, now())
		if err != nil {
			http.Error(w, "could not generate SKU", http.StatusInternalServerError)
			return
		}
		req.SKU = sku
	}

	product, ok := productFromRequest(w, req)
	if !ok {
		return
	}

	created, err := productRepo.Create(product)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			http.Error(w, "could not create product: SKU duplicated", http.StatusConflict)
			return
		}
		log.Printf("could not create product %q: %v", product.Name, err)
		http.Error(w, "could not create product", http.StatusInternalServerError)
		return
	}

	log.Printf("📦 Product created: %s (%s)", created.Name, created.SKU)
	respond(w, http.StatusCreated, toProductResponse(created))
}

// GetProductsHandler godoc
// @Summary List all products
// @Tags products
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ProductResponse
// @Failure 500 {string} string "Internal error"
// @Router /products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productRepo.GetAll()
	if err != nil {
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, toProductResponses(products))
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [get]
func GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "product")
	if !ok {
		return
	}

	product, err := productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, toProductResponse(product))
}

// SearchProductsHandler godoc
// @Summary Search products by name, SKU or category
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search text"
// @Success 200 {array} ProductResponse
// @Failure 500 {string} string "Internal error"
// @Router /products/search [get]
func SearchProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productRepo.Search(r.URL.Query().Get("q"))
	if err != nil {
		http.Error(w, "could not search products", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, toProductResponses(products))
}

// FilterProductsHandler godoc
// @Summary Filter, sort and paginate products
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param name query string false "Filter by name"
// @Param category query string false "Filter by category"
// @Param status query string false "Filter by status"
// @Param supplierId query int false "Filter by supplier"
// @Param minPrice query number false "Minimum selling price"
// @Param maxPrice query number false "Maximum selling price"
// @Param minQty query int false "Minimum stock"
// @Param maxQty query int false "Maximum stock"
// @Param lowStock query bool false "Only products at or below their minimum level"
// @Param sortBy query string false "id, name, sku, current_stock, selling_price or created_at"
// @Param sortDir query string false "asc or desc"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} ProductsSearchResult
// @Failure 400 {string} string "Invalid query"
// @Failure 500 {string} string "Internal error"
// @Router /products/filter [get]
func FilterProductsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	offset, limit, ok := pageParams(w, r)
	if !ok {
		return
	}

	filter := repo.ProductFilter{
		Name:       q.Get("name"),
		Category:   q.Get("category"),
		Status:     q.Get("status"),
		SupplierID: parseIntPtr(q.Get("supplierId")),
		MinPrice:   parseFloatPtr(q.Get("minPrice")),
		MaxPrice:   parseFloatPtr(q.Get("maxPrice")),
		MinQty:     parseIntPtr(q.Get("minQty")),
		MaxQty:     parseIntPtr(q.Get("maxQty")),
		LowStock:   q.Get("lowStock") == "true",
		SortBy:     q.Get("sortBy"),
		SortDesc:   strings.EqualFold(q.Get("sortDir"), "desc"),
		Offset:     offset,
		Limit:      limit,
	}

	if _, known := repo.ProductSortFields[filter.SortBy]; filter.SortBy != "" && !known {
		http.Error(w, "invalid sort field", http.StatusBadRequest)
		return
	}

	products, total, err := productRepo.Filter(filter)
	if err != nil {
		log.Printf("could not filter products: %v", err)
		http.Error(w, "could not filter products", http.StatusInternalServerError)
		return
	}

	respond(w, http.StatusOK, ProductsSearchResult{
		Data: toProductResponses(products),
		Meta: Meta{TotalCount: total},
	})
}

// GetLowStockProductsHandler godoc
// @Summary Products at or below their minimum stock level
// @Tags products
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ProductResponse
// @Router /products/low-stock [get]
func GetLowStockProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productRepo.LowStock()
	if err != nil {
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, toProductResponses(products))
}

// GetOutOfStockProductsHandler godoc
// @Summary Products with no stock left
// @Tags products
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ProductResponse
// @Router /products/out-of-stock [get]
func GetOutOfStockProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productRepo.OutOfStock()
	if err != nil {
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, toProductResponses(products))
}

// GetCategoriesHandler godoc
// @Summary List product categories
// @Tags products
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ProductCategory
// @Router /categories [get]
func GetCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := categoryRepo.GetAll()
	if err != nil {
		http.Error(w, "could not fetch categories", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, categories)
}

// UpdateProductHandler godoc
// @Summary Replace a product
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param product body ProductRequest true "Updated product"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} ValidationErrorsResult
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "SKU duplicated"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [put]
// @Security BearerAuth
func UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "product")
	if !ok {
		return
	}

	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	saveProduct(w, id, req)
}

// PatchProductHandler godoc
// @Summary Update some fields of a product
// @Description Fields missing from the body keep their current value; the merged product is validated.
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param product body ProductRequest true "Fields to change"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} ValidationErrorsResult
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "SKU duplicated"
// @Router /products/{id} [patch]
// @Security BearerAuth
func PatchProductHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "product")
	if !ok {
		return
	}

	existing, err := productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return
	}

	// Decoding over the current values leaves absent fields untouched.
	req := requestFromProduct(existing)
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	saveProduct(w, id, req)
}

func saveProduct(w http.ResponseWriter, id int, req ProductRequest) {
	product, ok := productFromRequest(w, req)
	if !ok {
		return
	}
	product.ID = id

	updated, err := productRepo.Update(product)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrProductNotFound):
			http.Error(w, "product not found", http.StatusNotFound)
		case errors.Is(err, repo.ErrDuplicatedValueUnique):
			http.Error(w, "could not update product: SKU duplicated", http.StatusConflict)
		default:
			log.Printf("could not update product %d: %v", id, err)
			http.Error(w, "could not update product", http.StatusInternalServerError)
		}
		return
	}
	respond(w, http.StatusOK, toProductResponse(updated))
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Tags products
// @Param id path int true "Product ID"
// @Success 204 "Deleted successfully"
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [delete]
// @Security BearerAuth
func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "product")
	if !ok {
		return
	}

	deleted, err := productRepo.Delete(id)
	if err != nil {
		http.Error(w, "could not delete product", http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	log.Printf("🗑️ Product %d deleted", id)
	w.WriteHeader(http.StatusNoContent)
}
