package repositories_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"catalog/internal/apperrors"
	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRepo(t *testing.T) *repositories.GORMProductRepository {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return repositories.NewGORMProductRepository(db)
}

func seedProduct(t *testing.T, repo *repositories.GORMProductRepository, name, category string) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:          uuid.New().String(),
		Name:        name,
		Description: "seeded",
		Price:       10,
		Category:    category,
		InStock:     true,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("failed to seed product %s: %v", name, err)
	}
	return product
}

func TestGORMProductRepository_ListFilterAndPage(t *testing.T) {
	repo := setupRepo(t)

	for i := 0; i < 7; i++ {
		seedProduct(t, repo, fmt.Sprintf("Gadget %d", i), "electronics")
	}
	seedProduct(t, repo, "Novel", "books")

	products, total, err := repo.List(repositories.ProductFilter{Category: "electronics", Offset: 5, Limit: 5})
	assert.NoError(t, err)
	assert.Equal(t, int64(7), total)
	assert.Len(t, products, 2)
	assert.Equal(t, "Gadget 5", products[0].Name)

	// No filter sees everything.
	_, total, err = repo.List(repositories.ProductFilter{Offset: 0, Limit: 100})
	assert.NoError(t, err)
	assert.Equal(t, int64(8), total)
}

func TestGORMProductRepository_SearchByNameIgnoresCase(t *testing.T) {
	repo := setupRepo(t)

	seedProduct(t, repo, "Smartphone X", "electronics")
	seedProduct(t, repo, "Laptop Pro", "electronics")

	products, err := repo.SearchByName("PHONE")
	assert.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, "Smartphone X", products[0].Name)

	products, err = repo.SearchByName("zzz")
	assert.NoError(t, err)
	assert.Empty(t, products)
}

func TestGORMProductRepository_SearchByNameMatchesWildcardsLiterally(t *testing.T) {
	repo := setupRepo(t)

	seedProduct(t, repo, "100% Cotton Tee", "clothing")
	seedProduct(t, repo, "Smartphone X", "electronics")
	seedProduct(t, repo, "under_score", "misc")

	products, err := repo.SearchByName("100%")
	assert.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, "100% Cotton Tee", products[0].Name)

	products, err = repo.SearchByName("_")
	assert.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, "under_score", products[0].Name)
}

func TestGORMProductRepository_CountByCategory(t *testing.T) {
	repo := setupRepo(t)

	seedProduct(t, repo, "A1", "A")
	seedProduct(t, repo, "A2", "A")
	seedProduct(t, repo, "B1", "B")

	stats, err := repo.CountByCategory()
	assert.NoError(t, err)
	assert.Len(t, stats, 2)

	counts := make(map[string]int64)
	for _, s := range stats {
		counts[s.Category] = s.Count
	}
	assert.Equal(t, int64(2), counts["A"])
	assert.Equal(t, int64(1), counts["B"])
}

func TestGORMProductRepository_GetByID(t *testing.T) {
	repo := setupRepo(t)

	seeded := seedProduct(t, repo, "Gadget", "electronics")

	found, err := repo.GetByID(seeded.ID)
	assert.NoError(t, err)
	assert.Equal(t, seeded.ID, found.ID)
	assert.Equal(t, "Gadget", found.Name)

	_, err = repo.GetByID("no-such-id")
	var appErr *apperrors.Error
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.KindNotFound, appErr.Kind)
}

func TestGORMProductRepository_UpdatePersistsZeroValues(t *testing.T) {
	repo := setupRepo(t)

	seeded := seedProduct(t, repo, "Gadget", "electronics")

	seeded.InStock = false
	seeded.Name = "Gadget v2"
	assert.NoError(t, repo.Update(seeded))

	found, err := repo.GetByID(seeded.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Gadget v2", found.Name)
	assert.False(t, found.InStock)
}

func TestGORMProductRepository_Delete(t *testing.T) {
	repo := setupRepo(t)

	seeded := seedProduct(t, repo, "Doomed", "misc")

	assert.NoError(t, repo.Delete(seeded.ID))

	_, err := repo.GetByID(seeded.ID)
	var appErr *apperrors.Error
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.KindNotFound, appErr.Kind)

	err = repo.Delete(seeded.ID)
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.KindNotFound, appErr.Kind)
}

func TestGORMProductRepository_DuplicateExternalIDRejected(t *testing.T) {
	repo := setupRepo(t)

	seeded := seedProduct(t, repo, "Original", "misc")

	dup := &models.Product{
		ID:          seeded.ID,
		Name:        "Impostor",
		Description: "same external id",
		Price:       1,
		Category:    "misc",
	}
	assert.Error(t, repo.Create(dup))
}
