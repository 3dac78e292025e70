package catalog

import "github.com/shopspring/decimal"

type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Weight      decimal.Decimal `json:"weight"`
	Description string          `json:"description"`
}

// ProductUpdate carries a partial edit. Nil fields are left untouched.
type ProductUpdate struct {
	Name        *string          `json:"name,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Weight      *decimal.Decimal `json:"weight,omitempty"`
	Description *string          `json:"description,omitempty"`
}
