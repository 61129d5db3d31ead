package catalog

import "github.com/go-chi/chi/v5"

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/companies", h.ListCompanies)
	r.Get("/offers", h.ListOffers)
	r.Get("/offers/{offerID}", h.GetOffer)
}
