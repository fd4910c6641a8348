package repo

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rogerio-castellano/inventory-console/internal/models"
	"github.com/shopspring/decimal"
)

type PurchaseOrderRepository interface {
	Create(o models.PurchaseOrder) (models.PurchaseOrder, error)
	GetAll() ([]models.PurchaseOrder, error)
	GetByID(id int) (models.PurchaseOrder, error)
	Update(o models.PurchaseOrder) (models.PurchaseOrder, error)
	BySupplier(supplierID int) ([]models.PurchaseOrder, error)
}

type InMemoryPurchaseOrderRepository struct {
	mu     sync.RWMutex
	orders []models.PurchaseOrder
	nextID int
	now    func() time.Time
}

func NewInMemoryPurchaseOrderRepository(seed ...models.PurchaseOrder) *InMemoryPurchaseOrderRepository {
	r := &InMemoryPurchaseOrderRepository{
		orders: []models.PurchaseOrder{},
		nextID: 1,
		now:    time.Now,
	}
	for _, o := range seed {
		r.orders = append(r.orders, o)
		if o.ID >= r.nextID {
			r.nextID = o.ID + 1
		}
	}
	return r
}

// ComputeTotals fills item totals, subtotal and total from quantities and prices.
func ComputeTotals(o models.PurchaseOrder) models.PurchaseOrder {
	subtotal := decimal.Zero
	for i, item := range o.Items {
		line := decimal.NewFromFloat(item.UnitPrice).Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2)
		o.Items[i].TotalPrice = line.InexactFloat64()
		if o.Items[i].ID == 0 {
			o.Items[i].ID = i + 1
		}
		subtotal = subtotal.Add(line)
	}
	o.Subtotal = subtotal.InexactFloat64()
	o.Total = subtotal.Add(decimal.NewFromFloat(o.Tax)).Add(decimal.NewFromFloat(o.Shipping)).Round(2).InexactFloat64()
	return o
}

func (r *InMemoryPurchaseOrderRepository) Create(o models.PurchaseOrder) (models.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	o.ID = r.nextID
	r.nextID++
	o.OrderNumber = fmt.Sprintf("PO-%d", now.UnixMilli())
	if o.Status == "" {
		o.Status = models.OrderStatusPending
	}
	if o.OrderDate.IsZero() {
		o.OrderDate = now
	}
	o.Items = slices.Clone(o.Items)
	o = ComputeTotals(o)
	o.CreatedAt = now
	o.UpdatedAt = now
	r.orders = append(r.orders, o)
	return o, nil
}

func (r *InMemoryPurchaseOrderRepository) GetAll() ([]models.PurchaseOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.orders), nil
}

func (r *InMemoryPurchaseOrderRepository) GetByID(id int) (models.PurchaseOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.ID == id {
			o.Items = slices.Clone(o.Items)
			return o, nil
		}
	}
	return models.PurchaseOrder{}, ErrPurchaseOrderNotFound
}

// Update replaces an order, keeping its number and creation date and recomputing totals.
func (r *InMemoryPurchaseOrderRepository) Update(o models.PurchaseOrder) (models.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.orders {
		if existing.ID == o.ID {
			o.OrderNumber = existing.OrderNumber
			o.CreatedAt = existing.CreatedAt
			o.UpdatedAt = r.now()
			o.Items = slices.Clone(o.Items)
			o = ComputeTotals(o)
			r.orders[i] = o
			return o, nil
		}
	}
	return models.PurchaseOrder{}, ErrPurchaseOrderNotFound
}

func (r *InMemoryPurchaseOrderRepository) BySupplier(supplierID int) ([]models.PurchaseOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.PurchaseOrder{}
	for _, o := range r.orders {
		if o.SupplierID == supplierID {
			out = append(out, o)
		}
	}
	return out, nil
}
