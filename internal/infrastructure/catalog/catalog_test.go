package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/grocerylist/backend/internal/domain"
	"github.com/grocerylist/backend/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReference(t *testing.T) {
	products := Reference()

	require.Len(t, products, 23)
	require.NoError(t, Validate(products))

	assert.Equal(t,
		[]string{"All", "Fruits", "Vegetables", "Dairy", "Snacks", "Beverages", "Sweets"},
		usecase.Categories(products))

	t.Run("returns a copy", func(t *testing.T) {
		products[0].Name = "Changed"
		assert.Equal(t, "Apple", Reference()[0].Name)
	})

	t.Run("unfiltered view repeats the Fruits header", func(t *testing.T) {
		rows := usecase.ComputeRows(Reference(), domain.DefaultCriteria())

		var headers []string
		for _, row := range rows {
			if row.IsHeader() {
				headers = append(headers, row.Category)
			}
		}
		assert.Equal(t,
			[]string{"Fruits", "Vegetables", "Fruits", "Dairy", "Snacks", "Beverages", "Sweets"},
			headers)
		assert.Len(t, rows, 30)
	})

	t.Run("in-stock filter", func(t *testing.T) {
		criteria := domain.DefaultCriteria()
		criteria.InStockOnly = true
		assert.Equal(t, 17, usecase.CountMatches(Reference(), criteria))
	})
}

func TestParse(t *testing.T) {
	t.Run("valid catalog", func(t *testing.T) {
		data := []byte(`
products:
  - name: Apple
    category: Fruits
    price: "₹80"
    stocked: true
  - name: Milk
    category: Dairy
    price: "₹60"
`)
		products, err := Parse(data)
		require.NoError(t, err)
		assert.Equal(t, []domain.Product{
			{Name: "Apple", Category: "Fruits", Price: "₹80", Stocked: true},
			{Name: "Milk", Category: "Dairy", Price: "₹60", Stocked: false},
		}, products)
	})

	tests := []struct {
		name string
		data string
	}{
		{"not yaml", "products: [unterminated"},
		{"unknown field", "products:\n  - name: Apple\n    category: Fruits\n    price: \"₹1\"\n    colour: red\n"},
		{"missing name", "products:\n  - category: Fruits\n    price: \"₹1\"\n"},
		{"missing category", "products:\n  - name: Apple\n    price: \"₹1\"\n"},
		{"bad price", "products:\n  - name: Apple\n    category: Fruits\n    price: cheap\n"},
		{"price too large", "products:\n  - name: Apple\n    category: Fruits\n    price: \"₹9223372036854775808\"\n"},
		{"duplicate name", "products:\n  - {name: Apple, category: Fruits, price: \"₹1\"}\n  - {name: Apple, category: Fruits, price: \"₹2\"}\n"},
	}

	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.ErrorIs(t, err, domain.ErrInvalidCatalog)
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		content := "products:\n  - {name: Tea, category: Beverages, price: \"₹25\", stocked: true}\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		products, err := LoadFile(path)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Tea", products[0].Name)
	})
}

func TestStaticRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Load with empty path uses reference data", func(t *testing.T) {
		repo, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, 23, repo.Len())
	})

	t.Run("FindByName", func(t *testing.T) {
		repo := NewStaticRepository(Reference())

		p, err := repo.FindByName(ctx, "Gulab Jamun")
		require.NoError(t, err)
		assert.Equal(t, "₹120", p.Price)

		_, err = repo.FindByName(ctx, "apple")
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	t.Run("All returns copies in catalog order", func(t *testing.T) {
		source := []domain.Product{
			{Name: "B", Category: "X", Price: "₹1"},
			{Name: "A", Category: "Y", Price: "₹2"},
		}
		repo := NewStaticRepository(source)
		source[0].Name = "mutated"

		all, err := repo.All(ctx)
		require.NoError(t, err)
		assert.Equal(t, "B", all[0].Name)
		assert.Equal(t, "A", all[1].Name)

		all[0].Name = "mutated again"
		again, _ := repo.All(ctx)
		assert.Equal(t, "B", again[0].Name)
	})
}
