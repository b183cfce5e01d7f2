package repositories

import (
	"catalog/internal/models"
)

// ProductFilter narrows and pages a product listing. A zero Category means no
// category filtering; Offset/Limit are assumed already clamped by the caller.
type ProductFilter struct {
	Category string
	Offset   int
	Limit    int
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	List(filter ProductFilter) ([]models.Product, int64, error)
	SearchByName(term string) ([]models.Product, error)
	CountByCategory() ([]models.CategoryCount, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
