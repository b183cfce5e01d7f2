package services

import (
	"catalog/internal/apperrors"
	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

var validate = validator.New()

// EventPublisher publishes product lifecycle events to a message broker.
type EventPublisher interface {
	PublishProductEvent(event string, payload interface{}) error
}

// ProductPage is the result of a paginated product listing.
type ProductPage struct {
	Products []models.Product `json:"products"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	Pages    int              `json:"pages"`
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo   repositories.ProductRepository
	events EventPublisher
	log    *logrus.Logger
}

// NewProductService creates a new ProductService. The event publisher may be
// nil, in which case lifecycle events are skipped.
func NewProductService(repo repositories.ProductRepository, events EventPublisher, log *logrus.Logger) *ProductService {
	return &ProductService{
		repo:   repo,
		events: events,
		log:    log,
	}
}

// ListProducts returns one page of products, optionally filtered by exact
// category match. Non-positive page or limit values fall back to the defaults
// (page 1, limit 10); the applied values are echoed in the result.
func (s *ProductService) ListProducts(category string, page, limit int) (*ProductPage, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}

	filter := repositories.ProductFilter{
		Category: category,
		Offset:   (page - 1) * limit,
		Limit:    limit,
	}
	products, total, err := s.repo.List(filter)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	return &ProductPage{
		Products: products,
		Total:    total,
		Page:     page,
		Pages:    pages,
	}, nil
}

// SearchProducts performs a case-insensitive substring match on product names.
// The search term is required.
func (s *ProductService) SearchProducts(name string) ([]models.Product, error) {
	if name == "" {
		return nil, apperrors.NewValidation("Missing search query parameter: name")
	}
	products, err := s.repo.SearchByName(name)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// CategoryStats groups all products by category and counts each group.
func (s *ProductService) CategoryStats() ([]models.CategoryCount, error) {
	stats, err := s.repo.CountByCategory()
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = []models.CategoryCount{}
	}
	return stats, nil
}

// GetProductByID retrieves a single product by its external ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct validates the input, mints a fresh external ID and persists
// the product. InStock defaults to false when omitted.
func (s *ProductService) CreateProduct(input models.ProductInput) (*models.Product, error) {
	if err := validate.Struct(input); err != nil {
		return nil, apperrors.NewValidation("Missing or invalid product fields")
	}

	product := &models.Product{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Description: input.Description,
		Price:       *input.Price,
		Category:    input.Category,
	}
	if input.InStock != nil {
		product.InStock = *input.InStock
	}

	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	s.publish("product.created", product)
	return product, nil
}

// UpdateProduct validates the input and replaces the mutable fields of the
// product identified by id. The external ID itself is never reassigned.
func (s *ProductService) UpdateProduct(id string, input models.ProductInput) (*models.Product, error) {
	if err := validate.Struct(input); err != nil {
		return nil, apperrors.NewValidation("Missing or invalid product fields")
	}

	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = *input.Price
	product.Category = input.Category
	if input.InStock != nil {
		product.InStock = *input.InStock
	} else {
		product.InStock = false
	}

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	s.publish("product.updated", product)
	return product, nil
}

// DeleteProduct removes the product identified by id.
func (s *ProductService) DeleteProduct(id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.publish("product.deleted", map[string]interface{}{"id": id})
	return nil
}

// publish sends a lifecycle event when a publisher is configured. Publish
// failures are logged, never surfaced to the client.
func (s *ProductService) publish(event string, payload interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishProductEvent(event, payload); err != nil {
		s.log.WithError(err).Warnf("Failed to publish %s event", event)
	}
}
