package repo

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rogerio-castellano/inventory-console/internal/models"
)

type SupplierRepository interface {
	Create(s models.Supplier) (models.Supplier, error)
	GetAll() ([]models.Supplier, error)
	GetByID(id int) (models.Supplier, error)
	Update(s models.Supplier) (models.Supplier, error)
	Delete(id int) (bool, error)
	BulkDelete(ids []int) (int, error)
	SetStatus(id int, status string) (models.Supplier, error)
	Query(f SupplierFilters, s SupplierSort, p Pagination) (SupplierPage, error)
}

type InMemorySupplierRepository struct {
	mu        sync.RWMutex
	suppliers []models.Supplier
	nextID    int
	now       func() time.Time
}

func NewInMemorySupplierRepository(seed ...models.Supplier) *InMemorySupplierRepository {
	r := &InMemorySupplierRepository{
		suppliers: []models.Supplier{},
		nextID:    1,
		now:       time.Now,
	}
	for _, s := range seed {
		r.suppliers = append(r.suppliers, s.Clone())
		if s.ID >= r.nextID {
			r.nextID = s.ID + 1
		}
	}
	return r
}

func (r *InMemorySupplierRepository) nameTaken(name string, exceptID int) bool {
	for _, s := range r.suppliers {
		if s.ID != exceptID && strings.EqualFold(strings.TrimSpace(s.Name), strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}

// Create stores a supplier, filling in its code and default statuses when absent.
func (r *InMemorySupplierRepository) Create(s models.Supplier) (models.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nameTaken(s.Name, 0) {
		return models.Supplier{}, ErrDuplicatedValueUnique
	}

	now := r.now()
	s.ID = r.nextID
	r.nextID++
	if s.SupplierCode == "" {
		s.SupplierCode = fmt.Sprintf("SUP-%04d", s.ID)
	}
	if s.Status == "" {
		s.Status = models.SupplierStatusActive
	}
	if s.Priority == "" {
		s.Priority = models.PriorityMedium
	}
	if s.RiskLevel == "" {
		s.RiskLevel = models.RiskLow
	}
	if s.ComplianceStatus == "" {
		s.ComplianceStatus = models.CompliancePending
	}
	s.CreatedAt = now
	s.UpdatedAt = now
	r.suppliers = append(r.suppliers, s.Clone())
	return s, nil
}

func (r *InMemorySupplierRepository) GetAll() ([]models.Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Supplier, len(r.suppliers))
	for i, s := range r.suppliers {
		out[i] = s.Clone()
	}
	return out, nil
}

func (r *InMemorySupplierRepository) GetByID(id int) (models.Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.suppliers {
		if s.ID == id {
			return s.Clone(), nil
		}
	}
	return models.Supplier{}, ErrSupplierNotFound
}

// Update replaces a supplier, keeping its creation date.
func (r *InMemorySupplierRepository) Update(s models.Supplier) (models.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.suppliers {
		if existing.ID == s.ID {
			if r.nameTaken(s.Name, s.ID) {
				return models.Supplier{}, ErrDuplicatedValueUnique
			}
			s.CreatedAt = existing.CreatedAt
			s.UpdatedAt = r.now()
			r.suppliers[i] = s.Clone()
			return s, nil
		}
	}
	return models.Supplier{}, ErrSupplierNotFound
}

func (r *InMemorySupplierRepository) Delete(id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.suppliers {
		if s.ID == id {
			r.suppliers = slices.Delete(r.suppliers, i, i+1)
			return true, nil
		}
	}
	return false, nil
}

// BulkDelete removes every listed supplier and returns how many existed.
func (r *InMemorySupplierRepository) BulkDelete(ids []int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	before := len(r.suppliers)
	r.suppliers = slices.DeleteFunc(r.suppliers, func(s models.Supplier) bool {
		return slices.Contains(ids, s.ID)
	})
	return before - len(r.suppliers), nil
}

func (r *InMemorySupplierRepository) SetStatus(id int, status string) (models.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.suppliers {
		if s.ID == id {
			s.Status = status
			s.UpdatedAt = r.now()
			r.suppliers[i] = s
			return s.Clone(), nil
		}
	}
	return models.Supplier{}, ErrSupplierNotFound
}

func (r *InMemorySupplierRepository) Query(f SupplierFilters, s SupplierSort, p Pagination) (SupplierPage, error) {
	all, _ := r.GetAll()
	return QuerySuppliers(all, f, s, p), nil
}
