package handlers

import (
	"sync"
	"time"

	"github.com/rogerio-castellano/inventory-console/internal/auth"
	"github.com/rogerio-castellano/inventory-console/internal/events"
	repo "github.com/rogerio-castellano/inventory-console/internal/repo"
)

var (
	productRepo       repo.ProductRepository
	categoryRepo      repo.CategoryRepository
	movementRepo      repo.MovementRepository
	supplierRepo      repo.SupplierRepository
	purchaseOrderRepo repo.PurchaseOrderRepository
	notificationRepo  repo.NotificationRepository
	userRepo          repo.UserRepository
	stockRecorder     repo.StockRecorder

	refreshStore auth.RefreshStore = auth.NewMemoryRefreshStore("")
	refreshTTL                     = 7 * 24 * time.Hour
	bcryptCost                     = 10

	streamsMu sync.RWMutex
	streams   = map[string]events.Source{}

	now = time.Now
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
	stockRecorder = nil
}

func SetCategoryRepo(r repo.CategoryRepository) {
	categoryRepo = r
}

func SetMovementRepo(r repo.MovementRepository) {
	movementRepo = r
	stockRecorder = nil
}

// SetStockRecorder makes stock adjustments go through rec. Without one, or
// after the product or movement repository is replaced, they go through both
// repositories in turn.
func SetStockRecorder(rec repo.StockRecorder) {
	stockRecorder = rec
}

func recorder() repo.StockRecorder {
	if stockRecorder != nil {
		return stockRecorder
	}
	return repo.NewSeparateStockRecorder(productRepo, movementRepo)
}

func SetSupplierRepo(r repo.SupplierRepository) {
	supplierRepo = r
}

func SetPurchaseOrderRepo(r repo.PurchaseOrderRepository) {
	purchaseOrderRepo = r
}

func SetNotificationRepo(r repo.NotificationRepository) {
	notificationRepo = r
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

// SetRefreshStore replaces the store holding refresh tokens and the lifetime of new ones.
func SetRefreshStore(s auth.RefreshStore, ttl time.Duration) {
	refreshStore = s
	refreshTTL = ttl
}

func SetBcryptCost(cost int) {
	bcryptCost = cost
}

// SetStream exposes src on GET /events/{name}.
func SetStream(name string, src events.Source) {
	streamsMu.Lock()
	defer streamsMu.Unlock()
	streams[name] = src
}

func stream(name string) (events.Source, bool) {
	streamsMu.RLock()
	defer streamsMu.RUnlock()
	src, ok := streams[name]
	return src, ok
}
