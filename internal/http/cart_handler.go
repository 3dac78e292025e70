package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/andreasstove999/ecommerce-system/cart-pricing-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/cart-pricing-service-go/internal/contracts"
	"github.com/andreasstove999/ecommerce-system/cart-pricing-service-go/internal/events"
	"github.com/andreasstove999/ecommerce-system/cart-pricing-service-go/internal/pricing"
	"github.com/andreasstove999/ecommerce-system/cart-pricing-service-go/internal/sorting"
)

type cartResponse struct {
	CartID  string          `json:"cartId"`
	Items   []cart.LineItem `json:"items"`
	Summary cart.Summary    `json:"summary"`
}

type addItemRequest struct {
	ProductID int  `json:"productId"`
	Quantity  *int `json:"quantity"`
}

type sortRequest struct {
	sorting.Request
	Apply bool `json:"apply"`
}

type sortResponse struct {
	Algorithm sorting.Algorithm `json:"algorithm"`
	Key       sorting.Key       `json:"key"`
	Reverse   bool              `json:"reverse"`
	Applied   bool              `json:"applied"`
	Items     []cart.LineItem   `json:"items"`
}

type checkoutResponse struct {
	Status string         `json:"status"`
	CartID string         `json:"cartId"`
	Totals pricing.Result `json:"totals"`
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cartView())
}

func (h *Handler) cartView() cartResponse {
	items := h.cart.Snapshot()
	return cartResponse{CartID: h.cart.ID(), Items: items, Summary: cart.Summarize(items)}
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var body addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	quantity := 1
	if body.Quantity != nil {
		quantity = *body.Quantity
	}

	if _, err := h.cart.Add(body.ProductID, quantity); err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.cartView())
}

// RemoveItem drops the whole line unless ?quantity= asks for fewer units.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid productId")
		return
	}

	var err error
	if raw := r.URL.Query().Get("quantity"); raw != "" {
		quantity, convErr := strconv.Atoi(raw)
		if convErr != nil {
			writeError(w, http.StatusBadRequest, "invalid quantity")
			return
		}
		_, _, err = h.cart.Remove(id, quantity)
	} else {
		err = h.cart.RemoveAll(id)
	}
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.cartView())
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.Clear(); err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.cartView())
}

// SortCart returns the cart in the requested order. With apply set the order
// is also stored in the cart.
func (h *Handler) SortCart(w http.ResponseWriter, r *http.Request) {
	var req sortRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	sorted, algorithm, key := h.sorter.Sort(h.cart.Snapshot(), req.Request)

	if req.Apply {
		if err := h.cart.Replace(sorted); err != nil {
			h.writeDomainError(w, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, sortResponse{
		Algorithm: algorithm,
		Key:       key,
		Reverse:   req.Reverse,
		Applied:   req.Apply,
		Items:     sorted,
	})
}

func (h *Handler) Totals(w http.ResponseWriter, r *http.Request) {
	opts := pricing.DefaultOptions
	var ok bool
	if opts.IncludeTax, ok = boolQuery(r, "includeTax", true); !ok {
		writeError(w, http.StatusBadRequest, "invalid includeTax")
		return
	}
	if opts.ApplyDiscounts, ok = boolQuery(r, "applyDiscounts", true); !ok {
		writeError(w, http.StatusBadRequest, "invalid applyDiscounts")
		return
	}

	res := h.pricing.Price(h.cart.Snapshot(), opts)
	writeJSON(w, http.StatusOK, map[string]any{
		"subtotal":       res.Subtotal,
		"discounts":      res.Discounts,
		"afterDiscounts": res.AfterDiscounts(),
		"tax":            res.Tax,
		"taxRate":        h.pricing.TaxRate(),
		"total":          res.Total,
	})
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	meta := events.PublishMetadata{
		CorrelationID: GetCorrelationID(r.Context()),
		CausationID:   r.Header.Get(HeaderCausationID),
	}

	var (
		cartID string
		totals pricing.Result
	)
	err := h.cart.Checkout(func(id string, items []cart.LineItem) error {
		cartID = id
		totals = h.pricing.Price(items, pricing.DefaultOptions)
		return h.publisher.PublishCartCheckedOut(r.Context(), contracts.CheckedOutCart{
			CartID: id,
			Items:  items,
			Totals: totals,
		}, meta)
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, checkoutResponse{
		Status: "checkout completed",
		CartID: cartID,
		Totals: totals,
	})
}

func boolQuery(r *http.Request, name string, def bool) (bool, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
