package repo

import (
	"testing"
	"time"

	"github.com/rogerio-castellano/inventory-console/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestInMemoryMovementRepository_ListNewestFirst(t *testing.T) {
	now := time.Now()
	r := NewInMemoryMovementRepository(FixtureMovements(now)...)

	all, total, err := r.List(MovementFilter{})
	require.NoError(t, err)
	assert.Equal(t, 8, total)
	assert.True(t, all[0].Timestamp.After(all[1].Timestamp))

	logged, err := r.Log(models.StockMovement{ProductID: 2, MovementType: models.MovementIn, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 9, logged.ID)
	assert.False(t, logged.Timestamp.IsZero())

	recent, err := r.Recent(3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, logged.ID, recent[0].ID)
}

func TestInMemoryMovementRepository_Filters(t *testing.T) {
	now := time.Now()
	r := NewInMemoryMovementRepository(FixtureMovements(now)...)

	byProduct, total, err := r.GetByProductID(1, MovementFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, byProduct, 3)

	outs, _, _ := r.List(MovementFilter{Type: models.MovementOut})
	for _, m := range outs {
		assert.Equal(t, models.MovementOut, m.MovementType)
	}

	since := now.AddDate(0, 0, -30)
	recent, total, _ := r.List(MovementFilter{Since: &since})
	assert.Equal(t, 3, total)
	assert.Len(t, recent, 3)

	limit, offset := 2, 2
	paged, total, _ := r.List(MovementFilter{Limit: &limit, Offset: &offset})
	assert.Equal(t, 8, total)
	assert.Len(t, paged, 2)
}

func TestInMemoryPurchaseOrderRepository_ComputesTotals(t *testing.T) {
	r := NewInMemoryPurchaseOrderRepository()

	o, err := r.Create(models.PurchaseOrder{
		SupplierID: 1,
		Items: []models.PurchaseOrderItem{
			{ProductID: 1, Quantity: 3, UnitPrice: 19.99},
			{ProductID: 2, Quantity: 1, UnitPrice: 0.03},
		},
		Tax:      5.5,
		Shipping: 10,
	})
	require.NoError(t, err)

	assert.Contains(t, o.OrderNumber, "PO-")
	assert.Equal(t, models.OrderStatusPending, o.Status)
	assert.Equal(t, 59.97, o.Items[0].TotalPrice)
	assert.Equal(t, 60.0, o.Subtotal)
	assert.Equal(t, 75.5, o.Total)

	o.Status = models.OrderStatusOrdered
	o.Items[0].Quantity = 1
	updated, err := r.Update(o)
	require.NoError(t, err)
	assert.Equal(t, 20.02, updated.Subtotal)
	assert.Equal(t, o.OrderNumber, updated.OrderNumber)

	_, err = r.GetByID(99)
	assert.ErrorIs(t, err, ErrPurchaseOrderNotFound)
}

func TestInMemoryNotificationRepository(t *testing.T) {
	r := NewInMemoryNotificationRepository(FixtureNotifications(time.Now())...)

	unread, _ := r.UnreadCount()
	assert.Equal(t, 2, unread)

	added, err := r.Add(models.NotificationItem{Type: models.NotificationSuccess, Title: "Saved", Message: "Product saved", IsRead: true})
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)
	assert.False(t, added.IsRead)

	list, _ := r.List()
	assert.Equal(t, added.ID, list[0].ID)

	ok, _ := r.MarkRead(added.ID)
	assert.True(t, ok)
	ok, _ = r.MarkRead("missing")
	assert.False(t, ok)

	require.NoError(t, r.MarkAllRead())
	unread, _ = r.UnreadCount()
	assert.Zero(t, unread)
}

func TestSeedUsers(t *testing.T) {
	r := NewInMemoryUserRepository()
	require.NoError(t, SeedUsers(r, bcrypt.MinCost))

	admin, err := r.GetByUsername("admin")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.Contains(t, admin.Permissions, models.PermissionDelete)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("admin123")))

	staff, _ := r.GetByUsername("staff")
	assert.Equal(t, []string{models.PermissionRead}, staff.Permissions)

	_, err = r.GetByUsername("ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = r.CreateUser(models.User{Username: "ADMIN"})
	assert.ErrorIs(t, err, ErrDuplicatedValueUnique)
}

func TestObservedProductRepository_PublishesAfterMutations(t *testing.T) {
	observed, err := NewObservedProductRepository(seededProducts())
	require.NoError(t, err)

	ch, cancel := observed.Changes().Subscribe()
	defer cancel()
	initial := <-ch
	assert.Len(t, initial, 4)

	_, err = observed.Create(models.Product{Name: "Desk", SKU: "DESK-1"})
	require.NoError(t, err)
	assert.Len(t, <-ch, 5)

	_, _, err = observed.AdjustStock(1, models.MovementOut, 25)
	require.NoError(t, err)
	snapshot := <-ch
	assert.Equal(t, 0, snapshot[0].CurrentStock)

	deleted, _ := observed.Delete(404)
	assert.False(t, deleted)
	select {
	case <-ch:
		t.Fatal("no snapshot expected after a no-op delete")
	default:
	}
}
