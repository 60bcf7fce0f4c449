package usecase

import (
	"fmt"
	"math"

	"github.com/grocerylist/backend/internal/domain"
)

// Add returns the cart with one more unit of product.
// An existing entry is incremented; otherwise a new entry is appended with quantity 1.
// The input cart is never modified.
func Add(cart domain.Cart, product domain.Product) domain.Cart {
	next := make(domain.Cart, len(cart), len(cart)+1)
	copy(next, cart)

	if i := next.Find(product.Name); i >= 0 {
		next[i].Quantity++
		return next
	}

	return append(next, domain.CartItem{Product: product, Quantity: 1})
}

// Remove returns the cart with one unit of the named product taken out.
// An entry at quantity 1 is dropped entirely.
func Remove(cart domain.Cart, name string) (domain.Cart, error) {
	i := cart.Find(name)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", domain.ErrItemNotFound, name)
	}

	if cart[i].Quantity > 1 {
		next := make(domain.Cart, len(cart))
		copy(next, cart)
		next[i].Quantity--
		return next, nil
	}

	next := make(domain.Cart, 0, len(cart)-1)
	next = append(next, cart[:i]...)
	next = append(next, cart[i+1:]...)
	return next, nil
}

// TotalItems returns the sum of all quantities in the cart
func TotalItems(cart domain.Cart) int {
	total := 0
	for _, item := range cart {
		total += item.Quantity
	}
	return total
}

// TotalPrice returns the sum of price * quantity over the cart.
// A single unparseable price fails the whole total rather than counting as zero,
// and so does a total that does not fit in an int64.
func TotalPrice(cart domain.Cart) (int64, error) {
	var total int64
	for _, item := range cart {
		price, err := ParsePrice(item.Price)
		if err != nil {
			return 0, fmt.Errorf("item %q: %w", item.Name, err)
		}

		quantity := int64(item.Quantity)
		if price > 0 && quantity > (math.MaxInt64-total)/price {
			return 0, fmt.Errorf("item %q: %w: total overflows", item.Name, domain.ErrMalformedPrice)
		}
		total += price * quantity
	}
	return total, nil
}

// ParsePrice strips one leading currency symbol and parses the remaining digits,
// e.g. "₹80" -> 80. Anything else is domain.ErrMalformedPrice.
func ParsePrice(price string) (int64, error) {
	return domain.ParsePrice(price)
}

// FormatPrice renders an amount with the given currency symbol, e.g. 220 -> "₹220"
func FormatPrice(currency string, amount int64) string {
	return fmt.Sprintf("%s%d", currency, amount)
}
