package repositories

import (
	"strings"
	"sync"
	"time"

	"catalog/internal/apperrors"
	"catalog/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// It preserves insertion order so List pages match the store's natural order.
type MockProductRepository struct {
	products map[string]models.Product
	order    []string
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// List returns one page of products matching the filter plus the total count.
func (r *MockProductRepository) List(filter ProductFilter) ([]models.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matching := make([]models.Product, 0, len(r.order))
	for _, id := range r.order {
		p := r.products[id]
		if filter.Category == "" || p.Category == filter.Category {
			matching = append(matching, p)
		}
	}

	total := int64(len(matching))
	start := filter.Offset
	if start > len(matching) {
		start = len(matching)
	}
	end := start + filter.Limit
	if end > len(matching) {
		end = len(matching)
	}
	return matching[start:end], total, nil
}

// SearchByName returns all products whose name contains the term, ignoring case.
func (r *MockProductRepository) SearchByName(term string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lowered := strings.ToLower(term)
	matches := make([]models.Product, 0)
	for _, id := range r.order {
		p := r.products[id]
		if strings.Contains(strings.ToLower(p.Name), lowered) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

// CountByCategory groups the stored products by category.
func (r *MockProductRepository) CountByCategory() ([]models.CategoryCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int64)
	for _, p := range r.products {
		counts[p.Category]++
	}
	stats := make([]models.CategoryCount, 0, len(counts))
	for category, count := range counts {
		stats = append(stats, models.CategoryCount{Category: category, Count: count})
	}
	return stats, nil
}

// GetByID returns a product by its external ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, apperrors.NewNotFound("Product not found")
	}
	return &product, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	r.products[product.ID] = *product
	r.order = append(r.order, product.ID)
	return nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return apperrors.NewNotFound("Product not found")
	}
	product.UpdatedAt = time.Now()
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its external ID.
func (r *MockProductRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return apperrors.NewNotFound("Product not found")
	}
	delete(r.products, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
