package repo

import (
	"github.com/rogerio-castellano/inventory-console/internal/models"
)

type MovementRepository interface {
	// Log stores a movement, assigning its id and, when unset, its timestamp.
	Log(m models.StockMovement) (models.StockMovement, error)
	List(mf MovementFilter) ([]models.StockMovement, int, error)
	GetByProductID(productID int, mf MovementFilter) ([]models.StockMovement, int, error)
	Recent(n int) ([]models.StockMovement, error)
	All() ([]models.StockMovement, error)
}
