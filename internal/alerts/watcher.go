package alerts

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/rogerio-castellano/inventory-console/internal/events"
	"github.com/rogerio-castellano/inventory-console/internal/models"
	"github.com/rogerio-castellano/inventory-console/internal/repo"
	"github.com/rogerio-castellano/inventory-console/internal/telemetry"
)

// Watcher turns product snapshots into notifications and alerts whenever a
// product enters the low-stock or out-of-stock state.
type Watcher struct {
	products      *events.Subject[[]models.Product]
	notifications repo.NotificationRepository
	dispatcher    *Dispatcher

	mu     sync.Mutex
	states map[int]string
}

func NewWatcher(products *events.Subject[[]models.Product], notifications repo.NotificationRepository, dispatcher *Dispatcher) *Watcher {
	return &Watcher{
		products:      products,
		notifications: notifications,
		dispatcher:    dispatcher,
		states:        map[int]string{},
	}
}

// Run consumes snapshots until ctx is done. The first snapshot only sets the baseline.
func (w *Watcher) Run(ctx context.Context) {
	ch, cancel := w.products.Subscribe()
	defer cancel()

	first := true
	for {
		select {
		case <-ctx.Done():
			return
		case products, ok := <-ch:
			if !ok {
				return
			}
			if first {
				w.Baseline(products)
				first = false
				continue
			}
			w.Check(products)
		}
	}
}

func stateOf(p models.Product) string {
	switch {
	case p.IsOutOfStock():
		return KindOutOfStock
	case p.IsLowStock():
		return KindLowStock
	default:
		return ""
	}
}

func (w *Watcher) Baseline(products []models.Product) {
	w.mu.Lock()
	defer w.mu.Unlock()

	clear(w.states)
	for _, p := range products {
		w.states[p.ID] = stateOf(p)
	}
	updateGauges(products)
}

// Check compares products with the last snapshot and returns the alerts it raised.
func (w *Watcher) Check(products []models.Product) []StockAlert {
	w.mu.Lock()
	defer w.mu.Unlock()

	var raised []StockAlert
	next := make(map[int]string, len(products))
	for _, p := range products {
		state := stateOf(p)
		next[p.ID] = state
		if state == "" || state == w.states[p.ID] {
			continue
		}

		a := StockAlert{
			ProductID:   p.ID,
			ProductName: p.Name,
			SKU:         p.SKU,
			Kind:        state,
			Stock:       p.CurrentStock,
			MinLevel:    p.MinStockLevel,
		}
		if err := w.dispatcher.Raise(a); err != nil {
			log.Printf("Failed to record stock alert for %s: %v", p.Name, err)
		}
		if _, err := w.notifications.Add(notificationFor(p, state)); err != nil {
			log.Printf("Failed to add notification for %s: %v", p.Name, err)
		}
		raised = append(raised, a)
	}
	w.states = next
	updateGauges(products)
	return raised
}

func notificationFor(p models.Product, state string) models.NotificationItem {
	n := models.NotificationItem{
		ActionURL: fmt.Sprintf("/products/%d", p.ID),
		ProductID: p.ID,
	}
	if state == KindOutOfStock {
		n.Type = models.NotificationError
		n.Title = "Out of Stock"
		n.Message = fmt.Sprintf("%s is out of stock", p.Name)
		return n
	}
	n.Type = models.NotificationWarning
	n.Title = "Low Stock Alert"
	n.Message = fmt.Sprintf("%s is running low on stock (%d remaining)", p.Name, p.CurrentStock)
	return n
}

func updateGauges(products []models.Product) {
	var low, out int
	for _, p := range products {
		if p.IsLowStock() {
			low++
		}
		if p.IsOutOfStock() {
			out++
		}
	}
	telemetry.LowStockProducts.Set(float64(low))
	telemetry.OutOfStockProducts.Set(float64(out))
}
