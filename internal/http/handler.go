package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/andreasstove999/ecommerce-system/cart-pricing-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/cart-pricing-service-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/cart-pricing-service-go/internal/events"
	"github.com/andreasstove999/ecommerce-system/cart-pricing-service-go/internal/pricing"
	"github.com/andreasstove999/ecommerce-system/cart-pricing-service-go/internal/sorting"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	catalog   *catalog.Catalog
	cart      *cart.Store
	pricing   *pricing.Engine
	sorter    *sorting.Sorter
	publisher events.CartEventsPublisher
	logger    *zap.Logger
}

func NewHandler(
	cat *catalog.Catalog,
	store *cart.Store,
	engine *pricing.Engine,
	sorter *sorting.Sorter,
	publisher events.CartEventsPublisher,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		catalog:   cat,
		cart:      store,
		pricing:   engine,
		sorter:    sorter,
		publisher: publisher,
		logger:    logger,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "cart-pricing-service"})
}

func productIDParam(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "productId"))
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// writeDomainError maps core errors onto status codes.
func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, cart.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, catalog.ErrInvalidProduct),
		errors.Is(err, pricing.ErrInvalidRule),
		errors.Is(err, pricing.ErrInvalidTaxRate):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, cart.ErrEmptyCart),
		errors.Is(err, cart.ErrStaleOrder),
		errors.Is(err, cart.ErrCheckoutPending):
		writeError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{
		"error": msg,
	})
}
