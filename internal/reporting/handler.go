package reporting

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/Vovarama1992/steelmatch/internal/catalog"
	"github.com/Vovarama1992/steelmatch/internal/negotiation"
)

// Matches is the slice of the negotiation store the report reads.
type Matches interface {
	Matches() []negotiation.MatchingResult
}

type Handler struct {
	cat     catalog.Reader
	matches Matches
	now     func() time.Time
}

func NewHandler(cat catalog.Reader, matches Matches) *Handler {
	return &Handler{cat: cat, matches: matches, now: time.Now}
}

func (h *Handler) Report(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, Build(h.cat.Offers(), h.matches.Matches(), h.now()))
}

func (h *Handler) ListMatches(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, h.matches.Matches())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[report] encode response: %v", err)
	}
}
