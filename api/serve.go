package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rogerio-castellano/inventory-console/internal/alerts"
	"github.com/rogerio-castellano/inventory-console/internal/auth"
	"github.com/rogerio-castellano/inventory-console/internal/config"
	"github.com/rogerio-castellano/inventory-console/internal/db"
	"github.com/rogerio-castellano/inventory-console/internal/http/handlers"
	rl "github.com/rogerio-castellano/inventory-console/internal/http/rate_limiter"
	"github.com/rogerio-castellano/inventory-console/internal/http/router"
	"github.com/rogerio-castellano/inventory-console/internal/redissvc"
	"github.com/rogerio-castellano/inventory-console/internal/repo"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 20 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API until SIGINT or SIGTERM.

With storage.driver=memory the server starts from the built-in sample data.
With storage.driver=postgres products and stock movements live in Postgres;
pending migrations are applied on start.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// openCatalog returns the product and movement repositories of the configured driver.
func openCatalog(cfg config.Config, now time.Time) (repo.ProductRepository, repo.MovementRepository, *sql.DB, error) {
	if cfg.Storage.Driver == config.DriverMemory {
		if !cfg.Storage.Seed {
			return repo.NewInMemoryProductRepository(), repo.NewInMemoryMovementRepository(), nil, nil
		}
		return repo.NewInMemoryProductRepository(repo.FixtureProducts(now)...),
			repo.NewInMemoryMovementRepository(repo.FixtureMovements(now)...), nil, nil
	}

	database, err := db.Connect(cfg.Storage.DSN)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := db.Migrate(database); err != nil {
		_ = database.Close()
		return nil, nil, nil, err
	}

	products := repo.NewPostgresProductRepository(database)
	movements := repo.NewPostgresMovementRepository(database)
	if cfg.Storage.Seed {
		if err := seedCatalog(products, movements, now); err != nil {
			_ = database.Close()
			return nil, nil, nil, err
		}
	}
	return products, movements, database, nil
}

// seedCatalog loads the sample products and movements into an empty database.
func seedCatalog(products repo.ProductRepository, movements repo.MovementRepository, now time.Time) error {
	existing, err := products.GetAll()
	if err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, p := range repo.FixtureProducts(now) {
		if _, err := products.Create(p); err != nil {
			return fmt.Errorf("seed product %s: %w", p.SKU, err)
		}
	}
	for _, m := range repo.FixtureMovements(now) {
		if _, err := movements.Log(m); err != nil {
			return fmt.Errorf("seed movement: %w", err)
		}
	}
	log.Println("🌱 Seeded sample products and movements")
	return nil
}

func serve(ctx context.Context, cfg config.Config) error {
	now := time.Now()
	auth.Configure(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	handlers.SetBcryptCost(cfg.Auth.BcryptCost)

	products, movements, database, err := openCatalog(cfg, now)
	if err != nil {
		return fmt.Errorf("❌ Could not open storage: %w", err)
	}
	if database != nil {
		defer database.Close()
	}

	var (
		suppliers     repo.SupplierRepository     = repo.NewInMemorySupplierRepository()
		orders        repo.PurchaseOrderRepository = repo.NewInMemoryPurchaseOrderRepository()
		notifications repo.NotificationRepository  = repo.NewInMemoryNotificationRepository()
		categories                                 = repo.NewInMemoryCategoryRepository(repo.FixtureCategories(now)...)
	)
	if cfg.Storage.Seed {
		suppliers = repo.NewInMemorySupplierRepository(repo.FixtureSuppliers(now)...)
		orders = repo.NewInMemoryPurchaseOrderRepository(repo.FixturePurchaseOrders(now)...)
		notifications = repo.NewInMemoryNotificationRepository(repo.FixtureNotifications(now)...)
	}

	observedProducts, err := repo.NewObservedProductRepository(products)
	if err != nil {
		return err
	}
	observedSuppliers, err := repo.NewObservedSupplierRepository(suppliers)
	if err != nil {
		return err
	}
	observedNotifications, err := repo.NewObservedNotificationRepository(notifications)
	if err != nil {
		return err
	}

	users := repo.NewInMemoryUserRepository()
	if err := repo.SeedUsers(users, cfg.Auth.BcryptCost); err != nil {
		return err
	}

	handlers.SetProductRepo(observedProducts)
	handlers.SetCategoryRepo(categories)
	handlers.SetMovementRepo(movements)
	if database != nil {
		handlers.SetStockRecorder(repo.NewObservedStockRecorder(repo.NewPostgresStockRecorder(database), observedProducts))
	}
	handlers.SetSupplierRepo(observedSuppliers)
	handlers.SetPurchaseOrderRepo(orders)
	handlers.SetNotificationRepo(observedNotifications)
	handlers.SetUserRepo(users)
	handlers.SetStream("products", observedProducts.Changes())
	handlers.SetStream("suppliers", observedSuppliers.Changes())
	handlers.SetStream("notifications", observedNotifications.Changes())

	g, ctx := errgroup.WithContext(ctx)

	var alertLog alerts.AlertLog = alerts.NewMemoryAlertLog()
	if cfg.Redis.Addr != "" {
		rs, err := redissvc.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("could not connect to Redis: %w", err)
		}
		defer rs.Close()
		handlers.SetRefreshStore(auth.NewRedisRefreshStore(rs), cfg.Auth.RefreshTTL)
		alertLog = alerts.NewRedisAlertLog(rs)
	} else {
		store := auth.NewMemoryRefreshStore(cfg.Auth.RefreshFile)
		handlers.SetRefreshStore(store, cfg.Auth.RefreshTTL)
		g.Go(func() error {
			store.StartCleanupLoop(ctx, 30*time.Minute)
			return nil
		})
	}

	var mailer alerts.Mailer
	if cfg.AlertsEnabled() {
		mailer = alerts.NewSMTPMailer(alerts.Config{
			From:         cfg.Alerts.From,
			To:           cfg.Alerts.To,
			SMTPServer:   cfg.Alerts.SMTPServer,
			SMTPPort:     cfg.Alerts.SMTPPort,
			SMTPUser:     cfg.Alerts.SMTPUser,
			SMTPPassword: cfg.Alerts.SMTPPassword,
			AuthDisabled: cfg.Alerts.AuthDisabled,
			Immediate:    cfg.Alerts.Immediate,
		})
	} else {
		log.Println("SMTP settings missing, stock alerts will not be mailed")
	}
	dispatcher := alerts.NewDispatcher(alertLog, mailer, cfg.Alerts.Immediate)
	watcher := alerts.NewWatcher(observedProducts.Changes(), observedNotifications, dispatcher)

	opts := []router.Option{
		router.WithLatency(cfg.Storage.Latency),
		router.WithMetrics(cfg.Metrics.Enabled),
		router.WithTrustedProxy(cfg.App.TrustProxy),
	}
	if cfg.RateLimit.Enabled {
		limiter := rl.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		opts = append(opts, router.WithLimiter(limiter))
		g.Go(func() error {
			limiter.StartCleanupLoop(ctx, time.Minute)
			return nil
		})
	}

	srv := &http.Server{
		Addr:              cfg.App.Addr,
		Handler:           router.NewRouter(opts...),
		ReadHeaderTimeout: 10 * time.Second,
		// Event streams end with the server context.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	g.Go(func() error {
		watcher.Run(ctx)
		return nil
	})
	g.Go(func() error {
		dispatcher.StartDailySummary(ctx)
		return nil
	})
	g.Go(func() error {
		log.Printf("✅ Server running on %s (%s storage)", cfg.App.Addr, cfg.Storage.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
