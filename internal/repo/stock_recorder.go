package repo

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/rogerio-castellano/inventory-console/internal/models"
)

// StockRecorder changes a product's stock and logs the movement as one unit.
// The movement passed in carries the product id, type, quantity and
// metadata; the recorder fills in the product name and stock levels.
type StockRecorder interface {
	RecordStock(m models.StockMovement) (models.Product, models.StockMovement, error)
}

func completeMovement(m models.StockMovement, p models.Product, previous int) models.StockMovement {
	m.ProductName = p.Name
	m.PreviousStock = previous
	m.NewStock = p.CurrentStock
	return m
}

// SeparateStockRecorder writes through a product and a movement repository.
// When the movement cannot be logged the previous stock level is restored.
type SeparateStockRecorder struct {
	products  ProductRepository
	movements MovementRepository
}

func NewSeparateStockRecorder(products ProductRepository, movements MovementRepository) *SeparateStockRecorder {
	return &SeparateStockRecorder{products: products, movements: movements}
}

func (r *SeparateStockRecorder) RecordStock(m models.StockMovement) (models.Product, models.StockMovement, error) {
	p, previous, err := r.products.AdjustStock(m.ProductID, m.MovementType, m.Quantity)
	if err != nil {
		return models.Product{}, models.StockMovement{}, err
	}

	logged, err := r.movements.Log(completeMovement(m, p, previous))
	if err != nil {
		if _, _, rerr := r.products.AdjustStock(p.ID, models.MovementAdjustment, previous); rerr != nil {
			log.Printf("could not restore stock of product %d to %d: %v", p.ID, previous, rerr)
		}
		return models.Product{}, models.StockMovement{}, fmt.Errorf("failed to log movement: %w", err)
	}
	return p, logged, nil
}

// PostgresStockRecorder updates the stock and inserts the movement in one transaction.
type PostgresStockRecorder struct {
	db *sql.DB
}

func NewPostgresStockRecorder(db *sql.DB) *PostgresStockRecorder {
	return &PostgresStockRecorder{db: db}
}

func (r *PostgresStockRecorder) RecordStock(m models.StockMovement) (models.Product, models.StockMovement, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Product{}, models.StockMovement{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	p, previous, err := adjustStock(ctx, tx, m.ProductID, m.MovementType, m.Quantity)
	if err != nil {
		return models.Product{}, models.StockMovement{}, err
	}
	logged, err := insertMovement(ctx, tx, completeMovement(m, p, previous))
	if err != nil {
		return models.Product{}, models.StockMovement{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Product{}, models.StockMovement{}, fmt.Errorf("failed to commit stock movement: %w", err)
	}
	return p, logged, nil
}

// ObservedStockRecorder publishes the product list after every recorded movement.
type ObservedStockRecorder struct {
	StockRecorder
	products *ObservedProductRepository
}

func NewObservedStockRecorder(inner StockRecorder, products *ObservedProductRepository) *ObservedStockRecorder {
	return &ObservedStockRecorder{StockRecorder: inner, products: products}
}

func (r *ObservedStockRecorder) RecordStock(m models.StockMovement) (models.Product, models.StockMovement, error) {
	p, logged, err := r.StockRecorder.RecordStock(m)
	if err == nil {
		r.products.publish()
	}
	return p, logged, err
}
