// Package pricing computes cart totals from a list of discount rules and a
// tax rate.
//
// Rules are evaluated independently against the undiscounted subtotal and
// their magnitudes summed; they never compound. The summed discount is capped
// at the subtotal so the discounted amount cannot go below zero.
package pricing

import (
	"errors"
	"fmt"
	"sync"

	"github.com/andreasstove999/ecommerce-system/cart-pricing-service-go/internal/cart"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var ErrInvalidTaxRate = errors.New("tax rate must not be negative")

var DefaultTaxRate = decimal.RequireFromString("0.20")

type Result struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	Discounts decimal.Decimal `json:"discounts"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
}

// AfterDiscounts is the taxable base.
func (r Result) AfterDiscounts() decimal.Decimal {
	return r.Subtotal.Sub(r.Discounts)
}

type Options struct {
	IncludeTax     bool
	ApplyDiscounts bool
}

// DefaultOptions applies both discounts and tax.
var DefaultOptions = Options{IncludeTax: true, ApplyDiscounts: true}

// Engine holds the configured rules and tax rate for one cart.
type Engine struct {
	mu      sync.RWMutex
	rules   []Rule
	taxRate decimal.Decimal
	logger  *zap.Logger
}

func NewEngine(taxRate decimal.Decimal, logger *zap.Logger) (*Engine, error) {
	if taxRate.IsNegative() {
		return nil, ErrInvalidTaxRate
	}
	return &Engine{taxRate: taxRate, logger: logger}, nil
}

// AddRule validates spec and appends the resulting rule. Invalid specs are
// rejected and the rule list is left as it was.
func (e *Engine) AddRule(spec RuleSpec) (Rule, error) {
	r, err := ParseRule(spec)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.rules = append(e.rules, r)
	e.mu.Unlock()

	e.logger.Info("discount rule added", zap.String("type", string(r.Type())), zap.Any("rule", SpecOf(r)))
	return r, nil
}

// Rules returns the configured rules in the order they were added.
func (e *Engine) Rules() []Rule {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]Rule(nil), e.rules...)
}

func (e *Engine) SetTaxRate(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return fmt.Errorf("set tax rate %s: %w", rate, ErrInvalidTaxRate)
	}

	e.mu.Lock()
	e.taxRate = rate
	e.mu.Unlock()

	e.logger.Info("tax rate set", zap.String("rate", rate.String()))
	return nil
}

func (e *Engine) TaxRate() decimal.Decimal {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.taxRate
}

// Price computes totals for items with the current rules and tax rate.
func (e *Engine) Price(items []cart.LineItem, opts Options) Result {
	e.mu.RLock()
	rules := e.rules
	rate := e.taxRate
	e.mu.RUnlock()

	return Calculate(items, rules, rate, opts)
}

// Calculate is the stateless core of Price.
func Calculate(items []cart.LineItem, rules []Rule, taxRate decimal.Decimal, opts Options) Result {
	if len(items) == 0 {
		return Result{}
	}

	subtotal := Subtotal(items)

	discounts := decimal.Zero
	if opts.ApplyDiscounts {
		discounts = Discount(rules, subtotal)
	}

	base := subtotal.Sub(discounts)
	tax := decimal.Zero
	if opts.IncludeTax {
		tax = base.Mul(taxRate)
	}

	return Result{
		Subtotal:  subtotal,
		Discounts: discounts,
		Tax:       tax,
		Total:     base.Add(tax),
	}
}

func Subtotal(items []cart.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, li := range items {
		sum = sum.Add(li.Amount())
	}
	return sum
}

// Discount sums every rule's magnitude against subtotal, capped at subtotal.
func Discount(rules []Rule, subtotal decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range rules {
		sum = sum.Add(ruleDiscount(r, subtotal))
	}
	return decimal.Min(sum, subtotal)
}
