package repositories

import (
	"errors"
	"fmt"
	"strings"

	"catalog/internal/apperrors"
	"catalog/internal/models"

	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// List retrieves one page of products matching the filter, plus the total
// matching count. Results follow the store's natural insertion order.
func (r *GORMProductRepository) List(filter ProductFilter) ([]models.Product, int64, error) {
	scope := func(tx *gorm.DB) *gorm.DB {
		if filter.Category != "" {
			return tx.Where("category = ?", filter.Category)
		}
		return tx
	}

	var total int64
	if err := scope(r.db.Model(&models.Product{})).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	var products []models.Product
	err := scope(r.db.Model(&models.Product{})).
		Order("record_id").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

// likeEscaper neutralizes LIKE wildcards so the term matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchByName retrieves all products whose name contains the term,
// case-insensitively. LOWER() keeps the match portable across SQLite and
// PostgreSQL collations; wildcards in the term are escaped so a search for
// "100%" only matches names containing that literal text.
func (r *GORMProductRepository) SearchByName(term string) ([]models.Product, error) {
	var products []models.Product
	pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
	if err := r.db.Where(`LOWER(name) LIKE ? ESCAPE '\'`, pattern).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to search products by name: %w", err)
	}
	return products, nil
}

// CountByCategory groups all products by category and counts each group.
// Group order is whatever the store returns.
func (r *GORMProductRepository) CountByCategory() ([]models.CategoryCount, error) {
	var stats []models.CategoryCount
	err := r.db.Model(&models.Product{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count products by category: %w", err)
	}
	return stats, nil
}

// GetByID retrieves a single product by its external ID.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Product not found")
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create inserts a new product. The caller assigns the external ID.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update saves a previously fetched product. Save writes all fields,
// including zero values, so a false InStock is persisted.
func (r *GORMProductRepository) Update(product *models.Product) error {
	if err := r.db.Save(product).Error; err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// Delete removes a product by its external ID. Hard removal, no tombstone.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFound("Product not found")
	}
	return nil
}
