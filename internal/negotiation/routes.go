package negotiation

import "github.com/go-chi/chi/v5"

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/negotiations", h.Open)
	r.Route("/negotiations/active", func(r chi.Router) {
		r.Get("/", h.Active)
		r.Delete("/", h.Close)
		r.Post("/messages", h.SendMessage)
		r.Post("/complete", h.Complete)
		r.Post("/suggest", h.Suggest)
	})
	r.Get("/chats", h.ListChats)
	r.Delete("/session", h.EndSession)
}
