package repo

import "github.com/rogerio-castellano/inventory-console/internal/models"

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	Create(product models.Product) (models.Product, error)
	GetAll() ([]models.Product, error)
	GetByID(id int) (models.Product, error)
	GetByName(name string) (models.Product, error)
	GetBySKU(sku string) (models.Product, error)
	Update(product models.Product) (models.Product, error)
	// Delete reports false when no product has the given id.
	Delete(id int) (bool, error)
	Search(query string) ([]models.Product, error)
	Filter(pf ProductFilter) ([]models.Product, int, error)
	LowStock() ([]models.Product, error)
	OutOfStock() ([]models.Product, error)
	// AdjustStock applies a movement and returns the updated product and the stock before it.
	AdjustStock(id int, movementType string, quantity int) (models.Product, int, error)
}

type CategoryRepository interface {
	GetAll() ([]models.ProductCategory, error)
}

// nextStock computes the stock level after a movement. Outgoing stock never drops below zero.
func nextStock(current int, movementType string, quantity int) (int, error) {
	if quantity < 0 {
		return 0, ErrInvalidQuantityChange
	}
	switch movementType {
	case models.MovementIn:
		return current + quantity, nil
	case models.MovementOut:
		return max(0, current-quantity), nil
	case models.MovementAdjustment:
		return quantity, nil
	default:
		return 0, ErrInvalidMovementType
	}
}
