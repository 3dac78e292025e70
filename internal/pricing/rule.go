package pricing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidRule = errors.New("invalid discount rule")

type RuleType string

const (
	TypePercentage RuleType = "percentage"
	TypeFixed      RuleType = "fixed"
	TypeThreshold  RuleType = "threshold"
)

var hundred = decimal.NewFromInt(100)

// Rule is one of PercentageRule, FixedRule or ThresholdRule. The set is closed;
// Discount switches over it exhaustively.
type Rule interface {
	Type() RuleType
	rule()
}

// PercentageRule takes Value percent off the subtotal.
type PercentageRule struct {
	Value decimal.Decimal
}

// FixedRule takes a flat amount off.
type FixedRule struct {
	Value decimal.Decimal
}

// ThresholdRule applies its discount only when the subtotal reaches Threshold.
// DiscountType is TypePercentage or TypeFixed.
type ThresholdRule struct {
	Threshold     decimal.Decimal
	DiscountType  RuleType
	DiscountValue decimal.Decimal
}

func (PercentageRule) Type() RuleType { return TypePercentage }
func (FixedRule) Type() RuleType      { return TypeFixed }
func (ThresholdRule) Type() RuleType  { return TypeThreshold }

func (PercentageRule) rule() {}
func (FixedRule) rule()      {}
func (ThresholdRule) rule()  {}

// RuleSpec is the loosely typed form a rule arrives in, e.g. from JSON.
type RuleSpec struct {
	Type          string           `json:"type"`
	Value         *decimal.Decimal `json:"value,omitempty"`
	Threshold     *decimal.Decimal `json:"threshold,omitempty"`
	DiscountType  string           `json:"discountType,omitempty"`
	DiscountValue *decimal.Decimal `json:"discountValue,omitempty"`
}

// ParseRule validates spec and builds the matching Rule.
func ParseRule(spec RuleSpec) (Rule, error) {
	switch RuleType(strings.ToLower(spec.Type)) {
	case TypePercentage:
		v, err := required("value", spec.Value)
		if err != nil {
			return nil, err
		}
		return PercentageRule{Value: v}, nil
	case TypeFixed:
		v, err := required("value", spec.Value)
		if err != nil {
			return nil, err
		}
		return FixedRule{Value: v}, nil
	case TypeThreshold:
		threshold, err := required("threshold", spec.Threshold)
		if err != nil {
			return nil, err
		}
		v, err := required("discountValue", spec.DiscountValue)
		if err != nil {
			return nil, err
		}
		dt := RuleType(strings.ToLower(spec.DiscountType))
		if dt != TypePercentage && dt != TypeFixed {
			return nil, fmt.Errorf("%w: unknown threshold discount type %q", ErrInvalidRule, spec.DiscountType)
		}
		return ThresholdRule{Threshold: threshold, DiscountType: dt, DiscountValue: v}, nil
	default:
		return nil, fmt.Errorf("%w: unknown rule type %q", ErrInvalidRule, spec.Type)
	}
}

// SpecOf is the inverse of ParseRule, used when listing rules.
func SpecOf(r Rule) RuleSpec {
	switch r := r.(type) {
	case PercentageRule:
		return RuleSpec{Type: string(TypePercentage), Value: &r.Value}
	case FixedRule:
		return RuleSpec{Type: string(TypeFixed), Value: &r.Value}
	case ThresholdRule:
		return RuleSpec{
			Type:          string(TypeThreshold),
			Threshold:     &r.Threshold,
			DiscountType:  string(r.DiscountType),
			DiscountValue: &r.DiscountValue,
		}
	default:
		panic(fmt.Sprintf("pricing: unexpected rule %T", r))
	}
}

func required(field string, v *decimal.Decimal) (decimal.Decimal, error) {
	if v == nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %s is required", ErrInvalidRule, field)
	}
	if v.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%w: %s must not be negative", ErrInvalidRule, field)
	}
	return *v, nil
}

// ruleDiscount is the magnitude of a single rule against the undiscounted subtotal.
func ruleDiscount(r Rule, subtotal decimal.Decimal) decimal.Decimal {
	switch r := r.(type) {
	case PercentageRule:
		return percentOf(subtotal, r.Value)
	case FixedRule:
		return r.Value
	case ThresholdRule:
		if subtotal.LessThan(r.Threshold) {
			return decimal.Zero
		}
		if r.DiscountType == TypePercentage {
			return percentOf(subtotal, r.DiscountValue)
		}
		return r.DiscountValue
	default:
		panic(fmt.Sprintf("pricing: unexpected rule %T", r))
	}
}

func percentOf(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Mul(percent).Div(hundred)
}
