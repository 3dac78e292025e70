package catalog

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrNotFound       = errors.New("product not found")
	ErrInvalidProduct = errors.New("invalid product")
)

// Catalog is an in-memory product store. Ids start at 1 and are never reused,
// even after a product is deleted.
type Catalog struct {
	mu       sync.RWMutex
	products map[int]Product
	deleted  map[int]Product // final state, for carts that still hold them
	nextID   int
	logger   *zap.Logger
}

func New(logger *zap.Logger) *Catalog {
	return &Catalog{
		products: make(map[int]Product),
		deleted:  make(map[int]Product),
		nextID:   1,
		logger:   logger,
	}
}

// Add stores a new product and returns its assigned id.
func (c *Catalog) Add(name, category string, price, weight decimal.Decimal, description string) (int, error) {
	if err := validateAmounts(price, weight); err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := Product{
		ID:          c.nextID,
		Name:        name,
		Category:    category,
		Price:       price,
		Weight:      weight,
		Description: description,
	}
	c.products[p.ID] = p
	c.nextID++

	c.logger.Info("product added", zap.Int("product_id", p.ID), zap.String("name", name))
	return p.ID, nil
}

func (c *Catalog) FindByID(id int) (Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.products[id]
	if !ok {
		return Product{}, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return p, nil
}

// LastKnown returns the product's current data, or the data it had when it was
// deleted. ok is false only for ids that were never assigned.
func (c *Catalog) LastKnown(id int) (p Product, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if p, ok = c.products[id]; ok {
		return p, true
	}
	p, ok = c.deleted[id]
	return p, ok
}

// Edit applies the non-nil fields of upd. The id never changes.
func (c *Catalog) Edit(id int, upd ProductUpdate) (Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.products[id]
	if !ok {
		return Product{}, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}

	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Category != nil {
		p.Category = *upd.Category
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.Weight != nil {
		p.Weight = *upd.Weight
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if err := validateAmounts(p.Price, p.Weight); err != nil {
		return Product{}, err
	}

	c.products[id] = p
	c.logger.Info("product updated", zap.Int("product_id", id))
	return p, nil
}

func (c *Catalog) Delete(id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.products[id]
	if !ok {
		return fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	delete(c.products, id)
	c.deleted[id] = p

	c.logger.Info("product deleted", zap.Int("product_id", id), zap.String("name", p.Name))
	return nil
}

// List returns all products ordered by id.
func (c *Catalog) List() []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func validateAmounts(price, weight decimal.Decimal) error {
	if price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
	}
	if weight.IsNegative() {
		return fmt.Errorf("%w: weight must not be negative", ErrInvalidProduct)
	}
	return nil
}
