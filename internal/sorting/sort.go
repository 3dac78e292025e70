// Package sorting orders cart line items by a chosen key using one of several
// textbook algorithms. Algorithm and key are independent: every algorithm
// takes a comparator and the key only decides which comparator is used.
//
// Bubble, insertion and merge are stable. Quick groups equal keys together but
// does not promise to keep their input order.
package sorting

import (
	"strings"

	"github.com/andreasstove999/ecommerce-system/cart-pricing-service-go/internal/cart"
)

type Algorithm string

const (
	Bubble    Algorithm = "bubble"
	Insertion Algorithm = "insertion"
	Quick     Algorithm = "quick"
	Merge     Algorithm = "merge"

	DefaultAlgorithm = Quick
)

type Key string

const (
	ByPrice    Key = "price"
	ByWeight   Key = "weight"
	ByCategory Key = "category"
	ByName     Key = "name"

	DefaultKey = ByPrice
)

var algorithms = map[Algorithm]func([]cart.LineItem, func(a, b cart.LineItem) int, bool) []cart.LineItem{
	Bubble:    bubbleSort[cart.LineItem],
	Insertion: insertionSort[cart.LineItem],
	Quick:     quickSort[cart.LineItem],
	Merge:     mergeSort[cart.LineItem],
}

var comparators = map[Key]func(a, b cart.LineItem) int{
	ByPrice:    func(a, b cart.LineItem) int { return a.Product.Price.Cmp(b.Product.Price) },
	ByWeight:   func(a, b cart.LineItem) int { return a.Product.Weight.Cmp(b.Product.Weight) },
	ByCategory: func(a, b cart.LineItem) int { return strings.Compare(a.Product.Category, b.Product.Category) },
	ByName:     func(a, b cart.LineItem) int { return strings.Compare(a.Product.Name, b.Product.Name) },
}

// Algorithms lists the supported algorithms in display order.
func Algorithms() []Algorithm {
	return []Algorithm{Bubble, Insertion, Quick, Merge}
}

func Keys() []Key {
	return []Key{ByPrice, ByWeight, ByCategory, ByName}
}

// ParseAlgorithm matches name case-insensitively. ok is false when name is not
// a known algorithm, in which case the default is returned.
func ParseAlgorithm(name string) (Algorithm, bool) {
	a := Algorithm(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := algorithms[a]; !ok {
		return DefaultAlgorithm, false
	}
	return a, true
}

func ParseKey(name string) (Key, bool) {
	k := Key(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := comparators[k]; !ok {
		return DefaultKey, false
	}
	return k, true
}

// Sort returns a new slice with items ordered by key, ascending unless reverse
// is set. The input slice is never modified. Unknown algorithms fall back to
// quick and unknown keys to price.
func Sort(items []cart.LineItem, algorithm Algorithm, key Key, reverse bool) []cart.LineItem {
	if len(items) == 0 {
		return items
	}

	run, ok := algorithms[algorithm]
	if !ok {
		run = algorithms[DefaultAlgorithm]
	}
	cmp, ok := comparators[key]
	if !ok {
		cmp = comparators[DefaultKey]
	}

	return run(append([]cart.LineItem(nil), items...), cmp, reverse)
}
