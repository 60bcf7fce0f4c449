package catalog

import "github.com/grocerylist/backend/internal/domain"

// referenceProducts is the built-in catalog. Fruits appear in two separate
// runs, so an unfiltered view shows the Fruits header twice.
var referenceProducts = []domain.Product{
	{Category: "Fruits", Price: "₹80", Stocked: true, Name: "Apple"},
	{Category: "Fruits", Price: "₹90", Stocked: true, Name: "Dragonfruit"},
	{Category: "Fruits", Price: "₹120", Stocked: false, Name: "Passionfruit"},
	{Category: "Vegetables", Price: "₹60", Stocked: true, Name: "Spinach"},
	{Category: "Vegetables", Price: "₹160", Stocked: false, Name: "Pumpkin"},
	{Category: "Vegetables", Price: "₹40", Stocked: true, Name: "Peas"},

	{Category: "Fruits", Price: "₹150", Stocked: true, Name: "Mango"},
	{Category: "Fruits", Price: "₹250", Stocked: false, Name: "Grapes"},
	{Category: "Fruits", Price: "₹55", Stocked: true, Name: "Banana"},
	{Category: "Fruits", Price: "₹300", Stocked: true, Name: "Pineapple"},
	{Category: "Fruits", Price: "₹180", Stocked: true, Name: "Orange"},

	{Category: "Dairy", Price: "₹60", Stocked: true, Name: "Milk"},
	{Category: "Dairy", Price: "₹100", Stocked: true, Name: "Cheese"},
	{Category: "Dairy", Price: "₹80", Stocked: true, Name: "Yogurt"},

	{Category: "Snacks", Price: "₹30", Stocked: true, Name: "Chips"},
	{Category: "Snacks", Price: "₹20", Stocked: true, Name: "Biscuits"},
	{Category: "Snacks", Price: "₹50", Stocked: false, Name: "Peanuts"},

	{Category: "Beverages", Price: "₹25", Stocked: true, Name: "Tea"},
	{Category: "Beverages", Price: "₹100", Stocked: false, Name: "Coffee"},
	{Category: "Beverages", Price: "₹15", Stocked: true, Name: "Lemonade"},

	{Category: "Sweets", Price: "₹120", Stocked: true, Name: "Gulab Jamun"},
	{Category: "Sweets", Price: "₹80", Stocked: false, Name: "Jalebi"},
	{Category: "Sweets", Price: "₹200", Stocked: true, Name: "Rasgulla"},
}

// Reference returns a copy of the built-in 23-product catalog
func Reference() []domain.Product {
	products := make([]domain.Product, len(referenceProducts))
	copy(products, referenceProducts)
	return products
}
