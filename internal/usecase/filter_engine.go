package usecase

import (
	"strings"

	"github.com/grocerylist/backend/internal/domain"
)

// Matches reports whether a product passes all three filter predicates:
// case-insensitive name substring, stock flag and category selection.
func Matches(product domain.Product, criteria domain.FilterCriteria) bool {
	if !strings.Contains(strings.ToLower(product.Name), strings.ToLower(criteria.Text)) {
		return false
	}
	if criteria.InStockOnly && !product.Stocked {
		return false
	}
	if criteria.Category != domain.AllCategories && product.Category != criteria.Category {
		return false
	}
	return true
}

// ComputeRows filters the catalog and groups the survivors into display rows.
// Catalog order is kept. A header precedes every product whose category differs
// from the previous surviving product's, so a category split across the catalog
// gets one header per run.
func ComputeRows(catalog []domain.Product, criteria domain.FilterCriteria) []domain.DisplayRow {
	rows := make([]domain.DisplayRow, 0, len(catalog))
	lastCategory, started := "", false

	for i := range catalog {
		product := catalog[i]
		if !Matches(product, criteria) {
			continue
		}
		if !started || product.Category != lastCategory {
			rows = append(rows, domain.DisplayRow{
				Kind:     domain.RowKindHeader,
				Category: product.Category,
			})
		}
		rows = append(rows, domain.DisplayRow{
			Kind:     domain.RowKindProduct,
			Category: product.Category,
			Product:  &product,
		})
		lastCategory, started = product.Category, true
	}

	return rows
}

// Categories returns "All" followed by each distinct category in first-occurrence order
func Categories(catalog []domain.Product) []string {
	seen := make(map[string]bool)
	categories := []string{domain.AllCategories}
	for _, product := range catalog {
		if seen[product.Category] {
			continue
		}
		seen[product.Category] = true
		categories = append(categories, product.Category)
	}
	return categories
}

// CountMatches returns the number of catalog products that pass the criteria
func CountMatches(catalog []domain.Product, criteria domain.FilterCriteria) int {
	n := 0
	for _, product := range catalog {
		if Matches(product, criteria) {
			n++
		}
	}
	return n
}
