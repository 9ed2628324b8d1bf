package catalog

import "github.com/lewisgroup/storefront/internal/domain/shared"

// Fixed store taxonomy. Every product belongs to exactly one
// (category, type) pair; types are unique across categories.
var categoryTypes = map[string][]string{
	"Furniture":  {"Sofas", "Tables", "Chairs", "Shelves"},
	"Bedroom":    {"Beds", "Mattresses", "Nightstands", "Dressers"},
	"Audio":      {"Synthesizers", "Keyboards", "Pedals", "Guitars"},
	"Appliances": {"Microwaves", "Toasters", "Fridges", "Ovens"},
}

// Categories returns the known category names
func Categories() []string {
	names := make([]string, 0, len(categoryTypes))
	for name := range categoryTypes {
		names = append(names, name)
	}
	return names
}

// TypesForCategory returns the product types valid within a category
func TypesForCategory(category string) []string {
	return categoryTypes[category]
}

// ValidateTaxonomy checks that the category exists and the type belongs to it
func ValidateTaxonomy(category, productType string) error {
	types, ok := categoryTypes[category]
	if !ok {
		return shared.NewDomainError("INVALID_CATEGORY", "Unknown product category")
	}
	for _, t := range types {
		if t == productType {
			return nil
		}
	}
	return shared.NewDomainError("INVALID_TYPE", "Product type does not belong to the category")
}
