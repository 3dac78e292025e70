package cart

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/andreasstove999/ecommerce-system/cart-pricing-service-go/internal/catalog"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrNotFound        = errors.New("item not in cart")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrStaleOrder      = errors.New("order does not match cart contents")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrCheckoutPending = errors.New("checkout in progress")
)

// ProductFinder is the read-only view of the catalog the cart depends on.
// LastKnown must keep answering for products deleted after they were carted.
type ProductFinder interface {
	FindByID(id int) (catalog.Product, error)
	LastKnown(id int) (catalog.Product, bool)
}

// Store holds one cart's line items in insertion order. There is at most one
// line per product id; repeated adds merge into the existing line.
type Store struct {
	mu       sync.Mutex
	id       string
	items    []LineItem
	products ProductFinder
	logger   *zap.Logger

	// set while a checkout is publishing; mutations fail with ErrCheckoutPending
	checkingOut bool
}

func NewStore(products ProductFinder, logger *zap.Logger) *Store {
	return &Store{
		id:       uuid.NewString(),
		products: products,
		logger:   logger,
	}
}

func (s *Store) ID() string {
	return s.id
}

// Add puts quantity units of the product into the cart and returns the
// resulting line.
func (s *Store) Add(productID, quantity int) (LineItem, error) {
	if quantity <= 0 {
		return LineItem{}, ErrInvalidQuantity
	}

	p, err := s.products.FindByID(productID)
	if err != nil {
		return LineItem{}, fmt.Errorf("add to cart: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.checkingOut {
		return LineItem{}, ErrCheckoutPending
	}

	if i := s.indexOf(productID); i >= 0 {
		if quantity > math.MaxInt-s.items[i].Quantity {
			return LineItem{}, fmt.Errorf("product %d: %w", productID, ErrInvalidQuantity)
		}
		s.items[i].Product = p
		s.items[i].Quantity += quantity
		s.logger.Info("cart quantity increased",
			zap.Int("product_id", productID), zap.Int("quantity", s.items[i].Quantity))
		return s.items[i], nil
	}

	li := LineItem{Product: p, Quantity: quantity}
	s.items = append(s.items, li)
	s.logger.Info("item added to cart", zap.Int("product_id", productID), zap.Int("quantity", quantity))
	return li, nil
}

// Remove takes quantity units of the product out of the cart. When quantity
// covers the whole line, the line is dropped and removed reports true.
func (s *Store) Remove(productID, quantity int) (remaining LineItem, removed bool, err error) {
	if quantity <= 0 {
		return LineItem{}, false, ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.checkingOut {
		return LineItem{}, false, ErrCheckoutPending
	}

	i := s.indexOf(productID)
	if i < 0 {
		return LineItem{}, false, fmt.Errorf("product %d: %w", productID, ErrNotFound)
	}

	if quantity >= s.items[i].Quantity {
		s.removeAt(i)
		s.logger.Info("item removed from cart", zap.Int("product_id", productID))
		return LineItem{}, true, nil
	}

	s.items[i].Quantity -= quantity
	s.logger.Info("cart quantity decreased",
		zap.Int("product_id", productID), zap.Int("quantity", s.items[i].Quantity))
	return s.items[i], false, nil
}

// RemoveAll drops the product's line regardless of its quantity.
func (s *Store) RemoveAll(productID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.checkingOut {
		return ErrCheckoutPending
	}

	i := s.indexOf(productID)
	if i < 0 {
		return fmt.Errorf("product %d: %w", productID, ErrNotFound)
	}
	s.removeAt(i)
	s.logger.Info("item removed from cart", zap.Int("product_id", productID))
	return nil
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.checkingOut {
		return ErrCheckoutPending
	}
	s.items = nil
	s.logger.Info("cart cleared")
	return nil
}

// Snapshot returns a copy of the lines in their current order. Product data is
// refreshed from the catalog so edits are visible; lines whose product has
// since been deleted keep the last known data.
func (s *Store) Snapshot() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.refreshLocked()
}

// refreshLocked writes the catalog's current product data into the stored
// lines and returns a copy of them. Callers hold s.mu.
func (s *Store) refreshLocked() []LineItem {
	for i := range s.items {
		if p, ok := s.products.LastKnown(s.items[i].Product.ID); ok {
			s.items[i].Product = p
		}
	}
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Replace stores a new order for the cart. items must hold exactly the current
// lines, e.g. the output of a sort over a Snapshot.
func (s *Store) Replace(items []LineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.checkingOut {
		return ErrCheckoutPending
	}
	if len(items) != len(s.items) {
		return ErrStaleOrder
	}
	current := make(map[int]int, len(s.items))
	for _, li := range s.items {
		current[li.Product.ID] = li.Quantity
	}
	for _, li := range items {
		q, ok := current[li.Product.ID]
		if !ok || q != li.Quantity {
			return ErrStaleOrder
		}
		delete(current, li.Product.ID)
	}

	s.items = append([]LineItem(nil), items...)
	return nil
}

// Checkout hands the current lines to fn and empties the cart if fn succeeds.
// fn runs without the lock held, so reads proceed while it publishes; any
// mutation attempted in the meantime fails with ErrCheckoutPending.
func (s *Store) Checkout(fn func(cartID string, items []LineItem) error) error {
	s.mu.Lock()
	if s.checkingOut {
		s.mu.Unlock()
		return ErrCheckoutPending
	}
	if len(s.items) == 0 {
		s.mu.Unlock()
		return ErrEmptyCart
	}
	items := s.refreshLocked()
	s.checkingOut = true
	s.mu.Unlock()

	err := fn(s.id, items)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkingOut = false
	if err != nil {
		return err
	}

	s.items = nil
	s.logger.Info("cart checked out", zap.String("cart_id", s.id), zap.Int("lines", len(items)))
	return nil
}

func (s *Store) Summary() Summary {
	return Summarize(s.Snapshot())
}

func Summarize(items []LineItem) Summary {
	var sum Summary
	for _, li := range items {
		sum.Lines++
		sum.Quantity += li.Quantity
		sum.Amount = sum.Amount.Add(li.Amount())
		sum.Weight = sum.Weight.Add(li.Weight())
	}
	return sum
}

func (s *Store) indexOf(productID int) int {
	for i := range s.items {
		if s.items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

func (s *Store) removeAt(i int) {
	s.items = append(s.items[:i], s.items[i+1:]...)
}
