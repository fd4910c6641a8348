package alerts

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rogerio-castellano/inventory-console/internal/events"
	"github.com/rogerio-castellano/inventory-console/internal/models"
	"github.com/rogerio-castellano/inventory-console/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	subject, contentType, body string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *fakeMailer) Send(subject, contentType, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{subject, contentType, body})
	return nil
}

func (m *fakeMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func product(id, stock, minLevel int) models.Product {
	return models.Product{ID: id, Name: "Widget", SKU: "WDG-1", CurrentStock: stock, MinStockLevel: minLevel}
}

func TestWatcherRaisesOnTransitionsOnly(t *testing.T) {
	alertLog := NewMemoryAlertLog()
	notifications := repo.NewInMemoryNotificationRepository()
	w := NewWatcher(events.NewSubject([]models.Product{}), notifications, NewDispatcher(alertLog, nil, false))

	w.Baseline([]models.Product{product(1, 20, 5)})

	raised := w.Check([]models.Product{product(1, 4, 5)})
	require.Len(t, raised, 1)
	assert.Equal(t, KindLowStock, raised[0].Kind)

	assert.Empty(t, w.Check([]models.Product{product(1, 3, 5)}), "still low, no new alert")

	raised = w.Check([]models.Product{product(1, 0, 5)})
	require.Len(t, raised, 1)
	assert.Equal(t, KindOutOfStock, raised[0].Kind)

	assert.Empty(t, w.Check([]models.Product{product(1, 30, 5)}))

	raised = w.Check([]models.Product{product(1, 30, 5), product(2, 0, 1)})
	require.Len(t, raised, 1, "a product created out of stock alerts immediately")
	assert.Equal(t, 2, raised[0].ProductID)

	list, _ := notifications.List()
	require.Len(t, list, 3)
	assert.Equal(t, "Out of Stock", list[0].Title)
	assert.Equal(t, "/products/2", list[0].ActionURL)
	assert.Equal(t, "Low Stock Alert", list[2].Title)
	assert.Equal(t, "Widget is running low on stock (4 remaining)", list[2].Message)

	logged, _ := alertLog.Drain()
	assert.Len(t, logged, 3)
}

func TestWatcherRunFollowsSubject(t *testing.T) {
	subject := events.NewSubject([]models.Product{product(1, 20, 5)})
	notifications := repo.NewInMemoryNotificationRepository()
	w := NewWatcher(subject, notifications, NewDispatcher(NewMemoryAlertLog(), nil, false))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		w.mu.Lock()
		defer w.mu.Unlock()
		return len(w.states) == 1
	}, time.Second, 5*time.Millisecond)
	subject.Publish([]models.Product{product(1, 2, 5)})

	require.Eventually(t, func() bool {
		n, _ := notifications.UnreadCount()
		return n == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

func TestDispatcherDailySummary(t *testing.T) {
	mailer := &fakeMailer{}
	d := NewDispatcher(NewMemoryAlertLog(), mailer, false)

	require.NoError(t, d.SendDailySummary())
	assert.Zero(t, mailer.count(), "nothing to report")

	require.NoError(t, d.Raise(StockAlert{ProductName: "Chair", SKU: "CH-1", Kind: KindLowStock, Stock: 2, MinLevel: 5}))
	require.NoError(t, d.Raise(StockAlert{ProductName: "Paper", SKU: "PA-1", Kind: KindOutOfStock}))
	require.NoError(t, d.Raise(StockAlert{ProductName: "Chair", SKU: "CH-1", Kind: KindOutOfStock}))
	assert.Zero(t, mailer.count(), "no immediate mail unless enabled")

	require.NoError(t, d.SendDailySummary())
	require.Equal(t, 1, mailer.count())
	mail := mailer.sent[0]
	assert.Equal(t, "text/html", mail.contentType)
	assert.Contains(t, mail.body, "Total alerts: <strong>3</strong>")
	assert.Contains(t, mail.body, "<li>Chair: 2</li>")
	assert.Contains(t, mail.body, "<li><code>out-of-stock</code>: 2</li>")

	require.NoError(t, d.SendDailySummary())
	assert.Equal(t, 1, mailer.count(), "log is cleared after the digest")
}

func TestBuildSummaryEscapesProductText(t *testing.T) {
	body := BuildSummary([]StockAlert{{
		ProductID: 9, ProductName: "<script>alert(1)</script>", SKU: "A&B", Kind: "low", Stock: 1, MinLevel: 5, Time: time.Now(),
	}})

	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.Contains(t, body, "A&amp;B")
}

func TestDispatcherImmediateMail(t *testing.T) {
	mailer := &fakeMailer{}
	d := NewDispatcher(NewMemoryAlertLog(), mailer, true)

	require.NoError(t, d.Raise(StockAlert{ProductName: "Chair", Kind: KindLowStock}))

	require.Eventually(t, func() bool { return mailer.count() == 1 }, time.Second, 5*time.Millisecond)
	assert.Contains(t, mailer.sent[0].subject, "STOCK ALERT: Chair")
}

func TestNextRun(t *testing.T) {
	loc := time.UTC
	assert.Equal(t, time.Date(2025, 3, 1, 23, 59, 0, 0, loc), nextRun(time.Date(2025, 3, 1, 8, 0, 0, 0, loc)))
	assert.Equal(t, time.Date(2025, 3, 2, 23, 59, 0, 0, loc), nextRun(time.Date(2025, 3, 1, 23, 59, 30, 0, loc)))
}
