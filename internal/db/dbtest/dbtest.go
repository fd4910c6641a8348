//go:build integration

// Package dbtest starts a throwaway Postgres for integration tests.
package dbtest

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/rogerio-castellano/inventory-console/internal/db"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Start runs a Postgres container, applies the migrations and returns a connection
// that is closed, along with the container, when the test ends.
func Start(tb testing.TB) *sql.DB {
	tb.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("inventory"),
		postgres.WithUsername("inventory"),
		postgres.WithPassword("inventory"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		tb.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	tb.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			tb.Logf("Failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		tb.Fatalf("Failed to get connection string: %v", err)
	}

	database, err := db.Connect(connStr)
	if err != nil {
		tb.Fatalf("Could not connect to database: %v", err)
	}
	tb.Cleanup(func() { _ = database.Close() })

	if err := db.Migrate(database); err != nil {
		tb.Fatalf("Could not migrate database: %v", err)
	}
	return database
}

// Truncate empties the inventory tables and resets their id sequences.
func Truncate(tb testing.TB, database *sql.DB) {
	tb.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if _, err := database.ExecContext(ctx, "TRUNCATE TABLE products, movements RESTART IDENTITY CASCADE"); err != nil {
		tb.Fatalf("failed to truncate tables: %v", err)
	}
}
