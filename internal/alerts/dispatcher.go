package alerts

import (
	"cmp"
	"context"
	"fmt"
	"html"
	"log"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/rogerio-castellano/inventory-console/internal/telemetry"
)

// Dispatcher records stock alerts and mails them, one by one when immediate
// mode is on and as a daily digest otherwise.
type Dispatcher struct {
	log       AlertLog
	mailer    Mailer
	immediate bool
	now       func() time.Time
}

// NewDispatcher builds a dispatcher. A nil mailer disables every email.
func NewDispatcher(alertLog AlertLog, mailer Mailer, immediate bool) *Dispatcher {
	return &Dispatcher{log: alertLog, mailer: mailer, immediate: immediate, now: time.Now}
}

func (d *Dispatcher) Raise(a StockAlert) error {
	if a.Time.IsZero() {
		a.Time = d.now()
	}
	log.Printf("⚠️ Stock alert: %s is %s (%d left, minimum %d)", a.ProductName, a.Kind, a.Stock, a.MinLevel)
	telemetry.StockAlerts.WithLabelValues(a.Kind).Inc()

	if d.immediate && d.mailer != nil {
		subject := fmt.Sprintf("⚠️ STOCK ALERT: %s %s", a.ProductName, a.Kind)
		body := fmt.Sprintf("Product: %s (%s)\nStatus: %s\nStock: %d\nMinimum: %d\nTime: %s",
			a.ProductName, a.SKU, a.Kind, a.Stock, a.MinLevel, a.Time.Format(time.RFC3339))
		go func() {
			if err := d.mailer.Send(subject, "text/plain", body); err != nil {
				log.Printf("Failed to send alert email: %v", err)
			}
		}()
	}

	return d.log.Append(a)
}

// SendDailySummary drains the alert log and mails the digest. An empty log sends nothing.
func (d *Dispatcher) SendDailySummary() error {
	entries, err := d.log.Drain()
	if err != nil {
		return fmt.Errorf("drain alert log: %w", err)
	}
	if len(entries) == 0 || d.mailer == nil {
		return nil
	}

	if err := d.mailer.Send("📊 Daily Stock Alert Report", "text/html", BuildSummary(entries)); err != nil {
		log.Printf("❌ Failed to send email: %v", err)
		return err
	}
	log.Println("📬 Daily stock alert summary sent via SMTP.")
	return nil
}

func nextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 0, 0, now.Location())
	if !now.Before(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// StartDailySummary sends the digest every day at 23:59 local time until ctx is done.
func (d *Dispatcher) StartDailySummary(ctx context.Context) {
	for {
		timer := time.NewTimer(time.Until(nextRun(d.now())))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			if err := d.SendDailySummary(); err != nil {
				log.Printf("Daily stock alert summary failed: %v", err)
			}
		}
	}
}

// BuildSummary renders the digest HTML: totals by product and kind, then the full log.
func BuildSummary(entries []StockAlert) string {
	productCounts := map[string]int{}
	kindCounts := map[string]int{}
	for _, e := range entries {
		productCounts[e.ProductName]++
		kindCounts[e.Kind]++
	}

	var sb strings.Builder
	sb.WriteString("<h2>📊 Daily Stock Alert Summary</h2>")
	fmt.Fprintf(&sb, "<p>Total alerts: <strong>%d</strong></p>", len(entries))

	sb.WriteString("<h3>📦 By Product</h3><ul>")
	for _, name := range slices.Sorted(maps.Keys(productCounts)) {
		fmt.Fprintf(&sb, "<li>%s: %d</li>", html.EscapeString(name), productCounts[name])
	}
	sb.WriteString("</ul>")

	sb.WriteString("<h3>🚦 By Status</h3><ul>")
	for _, kind := range slices.Sorted(maps.Keys(kindCounts)) {
		fmt.Fprintf(&sb, "<li><code>%s</code>: %d</li>", html.EscapeString(kind), kindCounts[kind])
	}
	sb.WriteString("</ul>")

	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b StockAlert) int { return cmp.Compare(a.Time.UnixNano(), b.Time.UnixNano()) })
	sb.WriteString("<h3>📋 Full Log</h3><ul>")
	for _, e := range sorted {
		fmt.Fprintf(&sb, "<li><b>%s</b> (%s) <code>%s</code> with %d left at %s</li>",
			html.EscapeString(e.ProductName), html.EscapeString(e.SKU), html.EscapeString(e.Kind), e.Stock, e.Time.Format(time.RFC822))
	}
	sb.WriteString("</ul>")
	return sb.String()
}
