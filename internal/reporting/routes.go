package reporting

import "github.com/go-chi/chi/v5"

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/admin/report", h.Report)
	r.Get("/admin/matches", h.ListMatches)
}
