package domain

import "time"

// CartItem is a product in the cart together with its quantity.
// Quantity is always >= 1; an item dropping to zero leaves the cart.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// Cart is the ordered list of selected items, unique by product name.
// Order is first-added order, not catalog order.
type Cart []CartItem

// Find returns the index of the item with the given name, or -1
func (c Cart) Find(name string) int {
	for i, item := range c {
		if item.Name == name {
			return i
		}
	}
	return -1
}

// Quantity returns the quantity held for name, 0 when absent
func (c Cart) Quantity(name string) int {
	if i := c.Find(name); i >= 0 {
		return c[i].Quantity
	}
	return 0
}

// SessionState is the per-visitor UI state owned by the presentation layer
type SessionState struct {
	Criteria  FilterCriteria `json:"criteria"`
	Cart      Cart           `json:"cart"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// NewSessionState returns the state a visitor starts with
func NewSessionState() SessionState {
	return SessionState{
		Criteria: DefaultCriteria(),
		Cart:     Cart{},
	}
}
