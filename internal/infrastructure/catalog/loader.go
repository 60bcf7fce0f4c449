package catalog

import (
	"bytes"
	"fmt"
	"os"

	"github.com/grocerylist/backend/internal/domain"
	"gopkg.in/yaml.v3"
)

// fileFormat is the on-disk layout of a catalog file:
//
//	products:
//	  - name: Apple
//	    category: Fruits
//	    price: "₹80"
//	    stocked: true
type fileFormat struct {
	Products []domain.Product `yaml:"products"`
}

// LoadFile reads and validates a YAML catalog file
func LoadFile(path string) ([]domain.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML catalog data
func Parse(data []byte) ([]domain.Product, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var file fileFormat
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
	}

	if err := Validate(file.Products); err != nil {
		return nil, err
	}

	return file.Products, nil
}

// Validate checks that every product has a name, a category and a parseable
// price, and that names are unique
func Validate(products []domain.Product) error {
	seen := make(map[string]bool, len(products))

	for i, p := range products {
		if p.Name == "" {
			return fmt.Errorf("%w: product %d has no name", domain.ErrInvalidCatalog, i)
		}
		if p.Category == "" {
			return fmt.Errorf("%w: product %q has no category", domain.ErrInvalidCatalog, p.Name)
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: duplicate product name %q", domain.ErrInvalidCatalog, p.Name)
		}
		seen[p.Name] = true

		if _, err := domain.ParsePrice(p.Price); err != nil {
			return fmt.Errorf("%w: product %q: %v", domain.ErrInvalidCatalog, p.Name, err)
		}
	}

	return nil
}
