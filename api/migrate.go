package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/rogerio-castellano/inventory-console/internal/config"
	"github.com/rogerio-castellano/inventory-console/internal/db"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Long: `Apply the SQL migrations embedded in the binary to the Postgres
database named by storage.dsn, then print the schema version.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate()
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Storage.DSN == "" {
		return errors.New("storage.dsn is required to migrate")
	}

	database, err := db.Connect(cfg.Storage.DSN)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		return err
	}
	version, err := db.Version(database)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	log.Printf("✅ Database schema at version %d", version)
	return nil
}
