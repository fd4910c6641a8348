package repo

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/inventory-console/internal/models"
)

type NotificationRepository interface {
	List() ([]models.NotificationItem, error)
	// Add stamps an id and time on n, marks it unread and puts it first.
	Add(n models.NotificationItem) (models.NotificationItem, error)
	MarkRead(id string) (bool, error)
	MarkAllRead() error
	UnreadCount() (int, error)
}

type InMemoryNotificationRepository struct {
	mu            sync.RWMutex
	notifications []models.NotificationItem
}

// NewInMemoryNotificationRepository keeps the seed in the given order, newest first.
func NewInMemoryNotificationRepository(seed ...models.NotificationItem) *InMemoryNotificationRepository {
	return &InMemoryNotificationRepository{notifications: slices.Clone(seed)}
}

func (r *InMemoryNotificationRepository) List() ([]models.NotificationItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.notifications), nil
}

func (r *InMemoryNotificationRepository) Add(n models.NotificationItem) (models.NotificationItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n.ID = uuid.NewString()
	n.Timestamp = time.Now()
	n.IsRead = false
	r.notifications = slices.Insert(r.notifications, 0, n)
	return n, nil
}

func (r *InMemoryNotificationRepository) MarkRead(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.notifications {
		if r.notifications[i].ID == id {
			r.notifications[i].IsRead = true
			return true, nil
		}
	}
	return false, nil
}

func (r *InMemoryNotificationRepository) MarkAllRead() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.notifications {
		r.notifications[i].IsRead = true
	}
	return nil
}

func (r *InMemoryNotificationRepository) UnreadCount() (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, n := range r.notifications {
		if !n.IsRead {
			count++
		}
	}
	return count, nil
}
