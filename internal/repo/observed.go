package repo

import (
	"log"
	"sync"

	"github.com/rogerio-castellano/inventory-console/internal/events"
	"github.com/rogerio-castellano/inventory-console/internal/models"
)

// ObservedProductRepository publishes the full product list after every successful mutation.
type ObservedProductRepository struct {
	ProductRepository
	subject *events.Subject[[]models.Product]
	mu      sync.Mutex
}

func NewObservedProductRepository(inner ProductRepository) (*ObservedProductRepository, error) {
	all, err := inner.GetAll()
	if err != nil {
		return nil, err
	}
	return &ObservedProductRepository{ProductRepository: inner, subject: events.NewSubject(all)}, nil
}

func (r *ObservedProductRepository) Changes() *events.Subject[[]models.Product] {
	return r.subject
}

func (r *ObservedProductRepository) publish() {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.ProductRepository.GetAll()
	if err != nil {
		log.Printf("could not publish product snapshot: %v", err)
		return
	}
	r.subject.Publish(all)
}

func (r *ObservedProductRepository) Create(p models.Product) (models.Product, error) {
	created, err := r.ProductRepository.Create(p)
	if err == nil {
		r.publish()
	}
	return created, err
}

func (r *ObservedProductRepository) Update(p models.Product) (models.Product, error) {
	updated, err := r.ProductRepository.Update(p)
	if err == nil {
		r.publish()
	}
	return updated, err
}

func (r *ObservedProductRepository) Delete(id int) (bool, error) {
	deleted, err := r.ProductRepository.Delete(id)
	if err == nil && deleted {
		r.publish()
	}
	return deleted, err
}

func (r *ObservedProductRepository) AdjustStock(id int, movementType string, quantity int) (models.Product, int, error) {
	p, previous, err := r.ProductRepository.AdjustStock(id, movementType, quantity)
	if err == nil {
		r.publish()
	}
	return p, previous, err
}

// ObservedSupplierRepository publishes the full supplier list after every successful mutation.
type ObservedSupplierRepository struct {
	SupplierRepository
	subject *events.Subject[[]models.Supplier]
	mu      sync.Mutex
}

func NewObservedSupplierRepository(inner SupplierRepository) (*ObservedSupplierRepository, error) {
	all, err := inner.GetAll()
	if err != nil {
		return nil, err
	}
	return &ObservedSupplierRepository{SupplierRepository: inner, subject: events.NewSubject(all)}, nil
}

func (r *ObservedSupplierRepository) Changes() *events.Subject[[]models.Supplier] {
	return r.subject
}

func (r *ObservedSupplierRepository) publish() {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.SupplierRepository.GetAll()
	if err != nil {
		log.Printf("could not publish supplier snapshot: %v", err)
		return
	}
	r.subject.Publish(all)
}

func (r *ObservedSupplierRepository) Create(s models.Supplier) (models.Supplier, error) {
	created, err := r.SupplierRepository.Create(s)
	if err == nil {
		r.publish()
	}
	return created, err
}

func (r *ObservedSupplierRepository) Update(s models.Supplier) (models.Supplier, error) {
	updated, err := r.SupplierRepository.Update(s)
	if err == nil {
		r.publish()
	}
	return updated, err
}

func (r *ObservedSupplierRepository) Delete(id int) (bool, error) {
	deleted, err := r.SupplierRepository.Delete(id)
	if err == nil && deleted {
		r.publish()
	}
	return deleted, err
}

func (r *ObservedSupplierRepository) BulkDelete(ids []int) (int, error) {
	n, err := r.SupplierRepository.BulkDelete(ids)
	if err == nil && n > 0 {
		r.publish()
	}
	return n, err
}

func (r *ObservedSupplierRepository) SetStatus(id int, status string) (models.Supplier, error) {
	s, err := r.SupplierRepository.SetStatus(id, status)
	if err == nil {
		r.publish()
	}
	return s, err
}

// ObservedNotificationRepository publishes the notification list after every change.
type ObservedNotificationRepository struct {
	NotificationRepository
	subject *events.Subject[[]models.NotificationItem]
	mu      sync.Mutex
}

func NewObservedNotificationRepository(inner NotificationRepository) (*ObservedNotificationRepository, error) {
	all, err := inner.List()
	if err != nil {
		return nil, err
	}
	return &ObservedNotificationRepository{NotificationRepository: inner, subject: events.NewSubject(all)}, nil
}

func (r *ObservedNotificationRepository) Changes() *events.Subject[[]models.NotificationItem] {
	return r.subject
}

func (r *ObservedNotificationRepository) publish() {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.NotificationRepository.List()
	if err != nil {
		log.Printf("could not publish notifications: %v", err)
		return
	}
	r.subject.Publish(all)
}

func (r *ObservedNotificationRepository) Add(n models.NotificationItem) (models.NotificationItem, error) {
	added, err := r.NotificationRepository.Add(n)
	if err == nil {
		r.publish()
	}
	return added, err
}

func (r *ObservedNotificationRepository) MarkRead(id string) (bool, error) {
	ok, err := r.NotificationRepository.MarkRead(id)
	if err == nil && ok {
		r.publish()
	}
	return ok, err
}

func (r *ObservedNotificationRepository) MarkAllRead() error {
	err := r.NotificationRepository.MarkAllRead()
	if err == nil {
		r.publish()
	}
	return err
}
