package http

import (
	"encoding/json"
	"net/http"

	"github.com/andreasstove999/ecommerce-system/cart-pricing-service-go/internal/catalog"
	"github.com/shopspring/decimal"
)

type createProductRequest struct {
	Name        string           `json:"name"`
	Category    string           `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	Weight      *decimal.Decimal `json:"weight"`
	Description string           `json:"description"`
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.List())
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Name == "" || req.Price == nil || req.Weight == nil {
		writeError(w, http.StatusBadRequest, "name, price and weight are required")
		return
	}

	id, err := h.catalog.Add(req.Name, req.Category, *req.Price, *req.Weight, req.Description)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	p, err := h.catalog.FindByID(id)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid productId")
		return
	}

	p, err := h.catalog.FindByID(id)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) EditProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid productId")
		return
	}

	var upd catalog.ProductUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	p, err := h.catalog.Edit(id, upd)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid productId")
		return
	}

	if err := h.catalog.Delete(id); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
