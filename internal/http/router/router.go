package router

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	_ "github.com/rogerio-castellano/inventory-console/docs"
	"github.com/rogerio-castellano/inventory-console/internal/http/handlers"
	mw "github.com/rogerio-castellano/inventory-console/internal/http/middleware"
	rl "github.com/rogerio-castellano/inventory-console/internal/http/rate_limiter"
	"github.com/rogerio-castellano/inventory-console/internal/models"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type options struct {
	limiter *rl.Limiter
	latency time.Duration
	metrics bool
	proxied bool
}

type Option func(*options)

// WithLimiter rejects clients exceeding the limiter's rate with 429.
func WithLimiter(l *rl.Limiter) Option {
	return func(o *options) { o.limiter = l }
}

// WithLatency delays every API response by d.
func WithLatency(d time.Duration) Option {
	return func(o *options) { o.latency = d }
}

// WithMetrics records request metrics and serves them on /metrics.
func WithMetrics(enabled bool) Option {
	return func(o *options) { o.metrics = enabled }
}

// WithTrustedProxy takes the client address from X-Forwarded-For or X-Real-IP.
// Only enable it behind a proxy that sets those headers.
func WithTrustedProxy(trusted bool) Option {
	return func(o *options) { o.proxied = trusted }
}

func NewRouter(opts ...Option) http.Handler {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	r := chi.NewRouter()
	if o.proxied {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(chimiddleware.Recoverer)
	if o.metrics {
		r.Use(mw.Metrics)
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Printf("Failed to write health response: %v", err)
		}
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Group(func(r chi.Router) {
		if o.limiter != nil {
			r.Use(mw.RateLimit(o.limiter))
		}
		r.Use(mw.Latency(o.latency))

		r.Post("/login", handlers.LoginHandler)
		r.Post("/refresh", handlers.RefreshHandler)
		r.Post("/logout", handlers.LogoutHandler)

		r.Group(func(r chi.Router) {
			r.Use(mw.Auth)
			r.Use(mw.RequirePermission(models.PermissionRead))
			readRoutes(r)

			r.Group(func(r chi.Router) {
				r.Use(mw.RequirePermission(models.PermissionWrite))
				writeRoutes(r)
			})

			r.Group(func(r chi.Router) {
				r.Use(mw.RequirePermission(models.PermissionDelete))
				r.Delete("/products/{id}", handlers.DeleteProductHandler)
				r.Delete("/suppliers/{id}", handlers.DeleteSupplierHandler)
				r.Post("/suppliers/bulk-delete", handlers.BulkDeleteSuppliersHandler)
			})

			r.Group(func(r chi.Router) {
				r.Use(mw.RequirePermission(models.PermissionAdmin))
				r.Get("/admin/users", handlers.ListUsersHandler)
				r.Post("/admin/users", handlers.CreateUserHandler)
			})
		})
	})

	return r
}

func readRoutes(r chi.Router) {
	r.Get("/me", handlers.MeHandler)

	r.Get("/products", handlers.GetProductsHandler)
	r.Get("/products/search", handlers.SearchProductsHandler)
	r.Get("/products/filter", handlers.FilterProductsHandler)
	r.Get("/products/low-stock", handlers.GetLowStockProductsHandler)
	r.Get("/products/out-of-stock", handlers.GetOutOfStockProductsHandler)
	r.Get("/products/{id}", handlers.GetProductByIDHandler)
	r.Get("/products/{id}/movements", handlers.GetMovementsHandler)
	r.Get("/products/{id}/movements/export", handlers.ExportMovementsHandler)
	r.Get("/categories", handlers.GetCategoriesHandler)

	r.Get("/movements", handlers.ListMovementsHandler)
	r.Get("/movements/recent", handlers.RecentMovementsHandler)

	r.Get("/suppliers", handlers.QuerySuppliersHandler)
	r.Get("/suppliers/options", handlers.GetSupplierOptionsHandler)
	r.Get("/suppliers/analytics", handlers.GetSupplierAnalyticsHandler)
	r.Get("/suppliers/performance", handlers.GetSupplierPerformanceHandler)
	r.Get("/suppliers/export", handlers.ExportSuppliersHandler)
	r.Get("/suppliers/{id}", handlers.GetSupplierHandler)

	r.Get("/purchase-orders", handlers.GetPurchaseOrdersHandler)
	r.Get("/purchase-orders/{id}", handlers.GetPurchaseOrderHandler)

	r.Get("/dashboard/stats", handlers.GetDashboardStatsHandler)
	r.Get("/dashboard/charts/{chart}", handlers.GetDashboardChartHandler)
	r.Get("/dashboard/top-products", handlers.GetTopProductsHandler)
	r.Get("/dashboard/recent-movements", handlers.GetDashboardRecentMovementsHandler)

	// Marking notifications read only changes the reader's inbox.
	r.Get("/notifications", handlers.GetNotificationsHandler)
	r.Post("/notifications/{id}/read", handlers.MarkNotificationReadHandler)
	r.Post("/notifications/read-all", handlers.MarkAllNotificationsReadHandler)

	r.Get("/reports/{type}", handlers.GetReportHandler)
	r.Get("/events/{stream}", handlers.StreamEventsHandler)
}

func writeRoutes(r chi.Router) {
	r.Post("/products", handlers.CreateProductHandler)
	r.Put("/products/{id}", handlers.UpdateProductHandler)
	r.Patch("/products/{id}", handlers.PatchProductHandler)
	r.Post("/products/{id}/stock", handlers.AdjustStockHandler)
	r.Post("/products/import", handlers.ImportProductsHandler)

	r.Post("/suppliers", handlers.CreateSupplierHandler)
	r.Put("/suppliers/{id}", handlers.UpdateSupplierHandler)
	r.Post("/suppliers/{id}/activate", handlers.ActivateSupplierHandler)
	r.Post("/suppliers/{id}/deactivate", handlers.DeactivateSupplierHandler)
	r.Post("/suppliers/{id}/duplicate", handlers.DuplicateSupplierHandler)

	r.Post("/purchase-orders", handlers.CreatePurchaseOrderHandler)
	r.Put("/purchase-orders/{id}", handlers.UpdatePurchaseOrderHandler)

	r.Post("/notifications", handlers.CreateNotificationHandler)
}
