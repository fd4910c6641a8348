package main

import (
	"fmt"
	"time"

	"github.com/rogerio-castellano/inventory-console/internal/config"
	"github.com/rogerio-castellano/inventory-console/internal/reports"
	"github.com/rogerio-castellano/inventory-console/internal/repo"
	"github.com/spf13/cobra"
)

var seedCheckCmd = &cobra.Command{
	Use:   "seed-check",
	Short: "Print what the configured storage would serve",
	Long: `Open the configured storage (seeding it when storage.seed is set) and
print the collection sizes and dashboard figures it yields.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		now := time.Now()

		products, movements, database, err := openCatalog(cfg, now)
		if err != nil {
			return err
		}
		if database != nil {
			defer database.Close()
		}

		in := reports.Input{}
		if in.Products, err = products.GetAll(); err != nil {
			return err
		}
		if in.Movements, err = movements.All(); err != nil {
			return err
		}
		if cfg.Storage.Seed {
			in.Suppliers = repo.FixtureSuppliers(now)
			in.Orders = repo.FixturePurchaseOrders(now)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "storage:          %s\n", cfg.Storage.Driver)
		fmt.Fprintf(out, "products:         %d\n", len(in.Products))
		fmt.Fprintf(out, "movements:        %d\n", len(in.Movements))
		fmt.Fprintf(out, "suppliers:        %d\n", len(in.Suppliers))
		fmt.Fprintf(out, "purchase orders:  %d\n", len(in.Orders))

		stats := reports.DashboardStats(in, now)
		fmt.Fprintf(out, "inventory value:  %.2f\n", stats.TotalValue)
		fmt.Fprintf(out, "low stock:        %d\n", stats.LowStockItems)
		fmt.Fprintf(out, "out of stock:     %d\n", stats.OutOfStockItems)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCheckCmd)
}
