package repo

import (
	"time"

	"github.com/rogerio-castellano/inventory-console/internal/models"
)

type UserRepository interface {
	GetByUsername(username string) (models.User, error)
	GetByID(id int) (models.User, error)
	GetAll() ([]models.User, error)
	CreateUser(u models.User) (models.User, error)
	RecordLogin(id int, at time.Time) error
}
