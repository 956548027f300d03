package services

import (
	"techmart_server/structs"
)

// ProductVariants synthesizes the selectable option groups for a product.
// The rule set currently applies the same three groups to every product;
// the name parameter is the hook for per-category rules later. The result
// depends only on the input, nothing here is persisted.
func ProductVariants(productName string) []structs.VariantGroup {
	return []structs.VariantGroup{
		{
			ID:      "ram",
			Name:    "RAM",
			Options: []string{"8GB", "16GB", "32GB"},
		},
		{
			ID:      "storage",
			Name:    "Storage",
			Options: []string{"256GB SSD", "512GB SSD", "1TB SSD"},
		},
		{
			ID:      "processor",
			Name:    "Processor",
			Options: []string{"Intel i5", "Intel i7", "Intel i9", "AMD Ryzen 7", "AMD Ryzen 9"},
		},
	}
}
