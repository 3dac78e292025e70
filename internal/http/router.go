package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(h *Handler, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(CorrelationID)
	r.Use(RequestLogger(h.logger))
	r.Use(middleware.Recoverer)
	if requestTimeout > 0 {
		r.Use(middleware.Timeout(requestTimeout))
	}

	r.Get("/health", h.Health)

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Post("/", h.CreateProduct)
		r.Get("/{productId}", h.GetProduct)
		r.Patch("/{productId}", h.EditProduct)
		r.Delete("/{productId}", h.DeleteProduct)
	})

	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Delete("/", h.ClearCart)
		r.Post("/items", h.AddItem)
		r.Delete("/items/{productId}", h.RemoveItem)
		r.Post("/sort", h.SortCart)
		r.Get("/totals", h.Totals)
		r.Post("/checkout", h.Checkout)
	})

	r.Route("/api/pricing", func(r chi.Router) {
		r.Get("/rules", h.ListRules)
		r.Post("/rules", h.AddRule)
		r.Get("/tax-rate", h.GetTaxRate)
		r.Put("/tax-rate", h.SetTaxRate)
	})

	return r
}
