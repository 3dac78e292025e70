package http

import (
	"encoding/json"
	"net/http"

	"github.com/andreasstove999/ecommerce-system/cart-pricing-service-go/internal/pricing"
	"github.com/shopspring/decimal"
)

type taxRateRequest struct {
	Rate *decimal.Decimal `json:"rate"`
}

func (h *Handler) ListRules(w http.ResponseWriter, r *http.Request) {
	rules := h.pricing.Rules()
	out := make([]pricing.RuleSpec, 0, len(rules))
	for _, rule := range rules {
		out = append(out, pricing.SpecOf(rule))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) AddRule(w http.ResponseWriter, r *http.Request) {
	var spec pricing.RuleSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	rule, err := h.pricing.AddRule(spec)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, pricing.SpecOf(rule))
}

func (h *Handler) GetTaxRate(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]decimal.Decimal{"rate": h.pricing.TaxRate()})
}

func (h *Handler) SetTaxRate(w http.ResponseWriter, r *http.Request) {
	var req taxRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Rate == nil {
		writeError(w, http.StatusBadRequest, "rate is required")
		return
	}

	if err := h.pricing.SetTaxRate(*req.Rate); err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]decimal.Decimal{"rate": h.pricing.TaxRate()})
}
