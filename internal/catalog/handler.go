package catalog

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	cat Reader
}

func NewHandler(cat Reader) *Handler {
	return &Handler{cat: cat}
}

func (h *Handler) ListCompanies(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.cat.Companies())
}

// ListOffers: GET /offers?type=transport&prefecture=...&minCapacity=...
func (h *Handler) ListOffers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	active := OfferType(q.Get("type"))
	if active == "" {
		active = OfferTransport
	}
	if active != OfferTransport && active != OfferMaterial {
		http.Error(w, "type must be transport or material", http.StatusBadRequest)
		return
	}

	minCapacity, err := parseAmount(q.Get("minCapacity"))
	if err != nil {
		http.Error(w, "invalid minCapacity", http.StatusBadRequest)
		return
	}
	minQuantity, err := parseAmount(q.Get("minQuantity"))
	if err != nil {
		http.Error(w, "invalid minQuantity", http.StatusBadRequest)
		return
	}

	c := Criteria{
		Prefecture:       q.Get("prefecture"),
		MinCapacity:      minCapacity,
		MinQuantity:      minQuantity,
		AvailableFrom:    q.Get("availableFrom"),
		MaterialCategory: q.Get("category"),
	}
	if err := c.Validate(); err != nil {
		http.Error(w, "invalid filter: "+err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, Filter(h.cat.Offers(), active, c))
}

func (h *Handler) GetOffer(w http.ResponseWriter, r *http.Request) {
	offer, ok := h.cat.Offer(chi.URLParam(r, "offerID"))
	if !ok {
		http.Error(w, "offer not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, offer)
}

func parseAmount(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[catalog] encode response: %v", err)
	}
}
