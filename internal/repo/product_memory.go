package repo

import (
	"cmp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rogerio-castellano/inventory-console/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products []models.Product
	nextID   int
	now      func() time.Time
}

// NewInMemoryProductRepository creates a repository holding the given products.
func NewInMemoryProductRepository(seed ...models.Product) *InMemoryProductRepository {
	r := &InMemoryProductRepository{
		products: []models.Product{},
		nextID:   1,
		now:      time.Now,
	}
	for _, p := range seed {
		r.products = append(r.products, p.Clone())
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
	}
	return r
}

func matchesFilter(p models.Product, pf ProductFilter) bool {
	if pf.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(pf.Name)) {
		return false
	}
	if pf.Category != "" && !strings.EqualFold(p.Category, pf.Category) {
		return false
	}
	if pf.Status != "" && p.Status != pf.Status {
		return false
	}
	if pf.SupplierID != nil && p.SupplierID != *pf.SupplierID {
		return false
	}
	if pf.MinPrice != nil && p.SellingPrice < *pf.MinPrice {
		return false
	}
	if pf.MaxPrice != nil && p.SellingPrice > *pf.MaxPrice {
		return false
	}
	if pf.MinQty != nil && p.CurrentStock < *pf.MinQty {
		return false
	}
	if pf.MaxQty != nil && p.CurrentStock > *pf.MaxQty {
		return false
	}
	if pf.LowStock && !p.IsLowStock() {
		return false
	}
	return true
}

func compareProducts(field string) func(a, b models.Product) int {
	switch field {
	case "name":
		return func(a, b models.Product) int { return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)) }
	case "sku":
		return func(a, b models.Product) int { return cmp.Compare(a.SKU, b.SKU) }
	case "current_stock":
		return func(a, b models.Product) int { return cmp.Compare(a.CurrentStock, b.CurrentStock) }
	case "selling_price":
		return func(a, b models.Product) int { return cmp.Compare(a.SellingPrice, b.SellingPrice) }
	case "created_at":
		return func(a, b models.Product) int { return a.CreatedAt.Compare(b.CreatedAt) }
	default:
		return func(a, b models.Product) int { return cmp.Compare(a.ID, b.ID) }
	}
}

func (r *InMemoryProductRepository) Filter(pf ProductFilter) ([]models.Product, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filtered := []models.Product{}
	for _, p := range r.products {
		if matchesFilter(p, pf) {
			filtered = append(filtered, p.Clone())
		}
	}

	compare := compareProducts(pf.SortBy)
	slices.SortStableFunc(filtered, func(a, b models.Product) int {
		if pf.SortDesc {
			return compare(b, a)
		}
		return compare(a, b)
	})

	return page(filtered, pf.Offset, pf.Limit), len(filtered), nil
}

// Create adds a new product to the repository.
func (r *InMemoryProductRepository) Create(product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.skuTaken(product.SKU, 0) {
		return models.Product{}, ErrDuplicatedValueUnique
	}

	now := r.now()
	product.ID = r.nextID
	product.CreatedAt = now
	product.UpdatedAt = now
	r.nextID++
	r.products = append(r.products, product.Clone())
	return product, nil
}

func (r *InMemoryProductRepository) skuTaken(sku string, exceptID int) bool {
	if sku == "" {
		return false
	}
	for _, p := range r.products {
		if p.ID != exceptID && strings.EqualFold(p.SKU, sku) {
			return true
		}
	}
	return false
}

// GetAll retrieves a copy of all products.
func (r *InMemoryProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneProducts(r.products), nil
}

// GetByID retrieves a product by its ID.
func (r *InMemoryProductRepository) GetByID(id int) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			return p.Clone(), nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) GetByName(name string) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if strings.EqualFold(p.Name, name) {
			return p.Clone(), nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) GetBySKU(sku string) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if strings.EqualFold(p.SKU, sku) {
			return p.Clone(), nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Update replaces an existing product, keeping its creation date.
func (r *InMemoryProductRepository) Update(product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == product.ID {
			if r.skuTaken(product.SKU, product.ID) {
				return models.Product{}, ErrDuplicatedValueUnique
			}
			product.CreatedAt = p.CreatedAt
			product.UpdatedAt = r.now()
			r.products[i] = product.Clone()
			return product, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Delete removes a product from the repository by its ID.
func (r *InMemoryProductRepository) Delete(id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id {
			r.products = slices.Delete(r.products, i, i+1)
			return true, nil
		}
	}
	return false, nil
}

// Search matches name, SKU or category, ignoring case.
func (r *InMemoryProductRepository) Search(query string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	found := []models.Product{}
	for _, p := range r.products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.SKU), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			found = append(found, p.Clone())
		}
	}
	return found, nil
}

func (r *InMemoryProductRepository) LowStock() ([]models.Product, error) {
	return r.where(models.Product.IsLowStock), nil
}

func (r *InMemoryProductRepository) OutOfStock() ([]models.Product, error) {
	return r.where(models.Product.IsOutOfStock), nil
}

func (r *InMemoryProductRepository) where(keep func(models.Product) bool) []models.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Product{}
	for _, p := range r.products {
		if keep(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}

// AdjustStock implements ProductRepository.
func (r *InMemoryProductRepository) AdjustStock(id int, movementType string, quantity int) (models.Product, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID != id {
			continue
		}
		next, err := nextStock(p.CurrentStock, movementType, quantity)
		if err != nil {
			return models.Product{}, 0, err
		}
		previous := p.CurrentStock
		p.CurrentStock = next
		p.UpdatedAt = r.now()
		r.products[i] = p
		return p.Clone(), previous, nil
	}
	return models.Product{}, 0, ErrProductNotFound
}

func cloneProducts(products []models.Product) []models.Product {
	out := make([]models.Product, len(products))
	for i, p := range products {
		out[i] = p.Clone()
	}
	return out
}

func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = []models.Product{}
}

// InMemoryCategoryRepository serves the fixed category list.
type InMemoryCategoryRepository struct {
	categories []models.ProductCategory
}

func NewInMemoryCategoryRepository(categories ...models.ProductCategory) *InMemoryCategoryRepository {
	return &InMemoryCategoryRepository{categories: categories}
}

func (r *InMemoryCategoryRepository) GetAll() ([]models.ProductCategory, error) {
	return slices.Clone(r.categories), nil
}
