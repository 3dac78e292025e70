package cart

import (
	"github.com/andreasstove999/ecommerce-system/cart-pricing-service-go/internal/catalog"
	"github.com/shopspring/decimal"
)

type LineItem struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Amount is price times quantity for the line.
func (li LineItem) Amount() decimal.Decimal {
	return li.Product.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

func (li LineItem) Weight() decimal.Decimal {
	return li.Product.Weight.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Summary is the undiscounted overview shown alongside the cart contents.
type Summary struct {
	Lines    int             `json:"lines"`
	Quantity int             `json:"quantity"`
	Amount   decimal.Decimal `json:"amount"`
	Weight   decimal.Decimal `json:"weight"`
}
