package negotiation

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Vovarama1992/steelmatch/internal/catalog"
)

// CompanyHeader carries the acting company id.
const CompanyHeader = "X-Company-ID"

var validate = validator.New()

type Handler struct {
	reg            *Registry
	defaultCompany string
	notifier       Notifier
}

// NewHandler serves sessions from reg. Requests without CompanyHeader act as
// defaultCompany. notifier may be nil.
func NewHandler(reg *Registry, defaultCompany string, notifier Notifier) *Handler {
	return &Handler{reg: reg, defaultCompany: defaultCompany, notifier: notifier}
}

func (h *Handler) companyID(r *http.Request) string {
	if id := r.Header.Get(CompanyHeader); id != "" {
		return id
	}
	return h.defaultCompany
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	s, err := h.reg.Session(h.companyID(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return s, true
}

// Open: POST /negotiations {"offer_id": "..."}
func (h *Handler) Open(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		OfferID string `json:"offer_id" validate:"required"`
	}
	if !decode(w, r, &payload) {
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	chat, err := s.OpenOrResume(payload.OfferID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chat)
}

type activeView struct {
	Chat  Chat          `json:"chat"`
	Offer catalog.Offer `json:"offer"`
}

func (h *Handler) Active(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	chat, offer, err := s.Active()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activeView{Chat: chat, Offer: offer})
}

func (h *Handler) Close(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.CloseActive()
	w.WriteHeader(http.StatusNoContent)
}

// SendMessage: POST /negotiations/active/messages {"text": "..."}
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
	}
	if !decode(w, r, &payload) {
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	msg, err := s.SendMessage(payload.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

// Complete: POST /negotiations/active/complete {"confirm": true}
// An empty body is a declined confirmation.
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Confirm bool `json:"confirm"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	confirm := ConfirmFunc(func(context.Context, string) bool { return payload.Confirm })
	result, err := s.Complete(r.Context(), confirm)
	if err != nil {
		writeError(w, err)
		return
	}

	if h.notifier != nil {
		// the match is already recorded; delivery problems are only logged
		if err := h.notifier.MatchCompleted(context.WithoutCancel(r.Context()), result); err != nil {
			log.Printf("[svc] match notify failed company=%s matchId=%s: %v", s.CompanyID(), result.ID, err)
		}
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	draft, err := s.Suggest(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"draft": draft})
}

func (h *Handler) ListChats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.reg.Store().ChatsFor(h.companyID(r)))
}

func (h *Handler) EndSession(w http.ResponseWriter, r *http.Request) {
	if !h.reg.End(h.companyID(r)) {
		http.Error(w, "no session", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return false
	}
	if err := validate.Struct(v); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrOfferNotFound), errors.Is(err, ErrChatNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrNotConfirmed), errors.Is(err, ErrChatClosed):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrNotParticipant):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, ErrAssistantDisabled):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	case errors.Is(err, ErrPreconditionFailed):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		log.Printf("[svc] request failed: %v", err)
		http.Error(w, "processing error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[svc] encode response: %v", err)
	}
}
