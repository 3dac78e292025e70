package catalog

import "github.com/shopspring/decimal"

// Seed loads the demo assortment used when the service starts with sample data.
func Seed(c *Catalog) error {
	samples := []struct {
		name, category, description string
		price, weight               string
	}{
		{"Samsung Galaxy S21", "Smartphones", "Flagship smartphone with AMOLED display and triple camera", "69990", "0.17"},
		{"ASUS VivoBook 15", "Laptops", "Ultrabook with Intel Core i5 and 512 GB SSD", "54990", "1.8"},
		{"Sony WH-1000XM4", "Accessories", "Wireless noise-cancelling headphones", "29990", "0.25"},
	}

	for _, s := range samples {
		if _, err := c.Add(s.name, s.category, decimal.RequireFromString(s.price), decimal.RequireFromString(s.weight), s.description); err != nil {
			return err
		}
	}
	return nil
}
