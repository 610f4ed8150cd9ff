package repositories

import (
	"errors"

	"catalogo/internal/models"
)

// ErrProductNotFound is returned when the requested product does not exist.
// Absence is a normal outcome; callers distinguish it from store failures
// with errors.Is.
var ErrProductNotFound = errors.New("producto no encontrado")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// GetAll returns every product ordered by id ascending.
	GetAll() ([]models.Product, error)
	// GetByID returns the product with the given id, or ErrProductNotFound.
	GetByID(id uint) (*models.Product, error)
	// Create persists a new product and assigns its id.
	Create(product *models.Product) error
	// Update overwrites an existing product, or returns ErrProductNotFound.
	Update(product *models.Product) error
	// Delete removes the product with the given id, or returns ErrProductNotFound.
	Delete(id uint) error
}
