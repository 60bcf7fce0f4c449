package catalog

import (
	"context"
	"fmt"

	"github.com/grocerylist/backend/internal/domain"
)

// StaticRepository serves an immutable, load-time catalog
type StaticRepository struct {
	products []domain.Product
	byName   map[string]int
}

// NewStaticRepository creates a repository over a copy of products
func NewStaticRepository(products []domain.Product) *StaticRepository {
	owned := make([]domain.Product, len(products))
	copy(owned, products)

	byName := make(map[string]int, len(owned))
	for i, p := range owned {
		byName[p.Name] = i
	}

	return &StaticRepository{
		products: owned,
		byName:   byName,
	}
}

// Load builds a repository from a catalog file, or the reference data when path is empty
func Load(path string) (*StaticRepository, error) {
	if path == "" {
		return NewStaticRepository(Reference()), nil
	}

	products, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	return NewStaticRepository(products), nil
}

// All returns the catalog in insertion order. The slice is a copy.
func (r *StaticRepository) All(ctx context.Context) ([]domain.Product, error) {
	products := make([]domain.Product, len(r.products))
	copy(products, r.products)
	return products, nil
}

// FindByName looks up a product by its unique name
func (r *StaticRepository) FindByName(ctx context.Context, name string) (domain.Product, error) {
	i, ok := r.byName[name]
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: %q", domain.ErrProductNotFound, name)
	}
	return r.products[i], nil
}

// Len returns the number of products in the catalog
func (r *StaticRepository) Len() int {
	return len(r.products)
}
