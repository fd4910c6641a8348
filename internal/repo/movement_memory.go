package repo

import (
	"slices"
	"sync"
	"time"

	"github.com/rogerio-castellano/inventory-console/internal/models"
)

type InMemoryMovementRepository struct {
	mu        sync.RWMutex
	movements []models.StockMovement
	nextID    int
}

func NewInMemoryMovementRepository(seed ...models.StockMovement) *InMemoryMovementRepository {
	r := &InMemoryMovementRepository{
		movements: []models.StockMovement{},
		nextID:    1,
	}
	for _, m := range seed {
		r.AddMovement(m)
	}
	return r
}

// AddMovement stores a movement as given, keeping its timestamp.
func (r *InMemoryMovementRepository) AddMovement(m models.StockMovement) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m.ID == 0 {
		m.ID = r.nextID
	}
	if m.ID >= r.nextID {
		r.nextID = m.ID + 1
	}
	r.movements = append(r.movements, m)
}

// Log inserts a new inventory movement
func (r *InMemoryMovementRepository) Log(m models.StockMovement) (models.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m.ID = r.nextID
	r.nextID++
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now()
	}
	r.movements = append(r.movements, m)
	return m, nil
}

func matchesMovement(m models.StockMovement, mf MovementFilter) bool {
	if mf.ProductID != nil && m.ProductID != *mf.ProductID {
		return false
	}
	if mf.Type != "" && m.MovementType != mf.Type {
		return false
	}
	if mf.Since != nil && m.Timestamp.Before(*mf.Since) {
		return false
	}
	if mf.Until != nil && m.Timestamp.After(*mf.Until) {
		return false
	}
	return true
}

// newestFirst orders by timestamp descending, then by id descending.
func newestFirst(a, b models.StockMovement) int {
	if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
		return c
	}
	return b.ID - a.ID
}

// List returns the movements matching the filter, newest first, with the total before paging.
func (r *InMemoryMovementRepository) List(mf MovementFilter) ([]models.StockMovement, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filtered := []models.StockMovement{}
	for _, m := range r.movements {
		if matchesMovement(m, mf) {
			filtered = append(filtered, m)
		}
	}
	slices.SortStableFunc(filtered, newestFirst)

	return page(filtered, mf.Offset, mf.Limit), len(filtered), nil
}

// GetByProductID returns the movements of one product, optionally filtered by date range and paginated
func (r *InMemoryMovementRepository) GetByProductID(productID int, mf MovementFilter) ([]models.StockMovement, int, error) {
	mf.ProductID = &productID
	return r.List(mf)
}

func (r *InMemoryMovementRepository) Recent(n int) ([]models.StockMovement, error) {
	movements, _, err := r.List(MovementFilter{Limit: &n})
	return movements, err
}

func (r *InMemoryMovementRepository) All() ([]models.StockMovement, error) {
	movements, _, err := r.List(MovementFilter{})
	return movements, err
}
