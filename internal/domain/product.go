package domain

// AllCategories is the category selection that disables category filtering
const AllCategories = "All"

// Product represents a single catalog entry. Name is the unique key.
type Product struct {
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category" yaml:"category"`
	Price    string `json:"price" yaml:"price"` // currency-formatted, e.g. "₹80"
	Stocked  bool   `json:"stocked" yaml:"stocked"`
}

// FilterCriteria holds the combined text/stock/category filter state
type FilterCriteria struct {
	Text        string `json:"text" form:"q"`
	InStockOnly bool   `json:"inStockOnly" form:"in_stock"`
	Category    string `json:"category" form:"category"`
}

// DefaultCriteria returns the criteria a new session starts with
func DefaultCriteria() FilterCriteria {
	return FilterCriteria{Category: AllCategories}
}

// Normalize fills in the category selection when it was left empty
func (c FilterCriteria) Normalize() FilterCriteria {
	if c.Category == "" {
		c.Category = AllCategories
	}
	return c
}

// RowKind discriminates the two kinds of display rows
type RowKind string

const (
	RowKindHeader  RowKind = "header"
	RowKindProduct RowKind = "product"
)

// DisplayRow is either a category header or a single product row.
// Category is set for both kinds; Product only for product rows.
type DisplayRow struct {
	Kind     RowKind  `json:"kind"`
	Category string   `json:"category"`
	Product  *Product `json:"product,omitempty"`
}

// IsHeader reports whether the row is a category header
func (r DisplayRow) IsHeader() bool {
	return r.Kind == RowKindHeader
}
