package negotiation

import (
	"context"
	"sync"

	"github.com/Vovarama1992/steelmatch/internal/catalog"
)

const completePrompt = "この商談を成立させますか？\n成立後は取引が確定されます。"

// Session is one acting company's view of the store: which chat and offer
// are currently open. The chat itself always lives in the Store, so the
// session never holds a stale copy.
type Session struct {
	mu        sync.Mutex
	companyID string
	store     *Store
	cat       catalog.Reader
	assistant *Assistant

	activeChatID  string
	activeOfferID string
}

func NewSession(companyID string, store *Store, assistant *Assistant) *Session {
	return &Session{
		companyID: companyID,
		store:     store,
		cat:       store.cat,
		assistant: assistant,
	}
}

func (s *Session) CompanyID() string {
	return s.companyID
}

// OpenOrResume makes the chat for offerID active, creating it if needed.
func (s *Session) OpenOrResume(offerID string) (Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chat, offer, _, err := s.store.OpenOrResume(s.companyID, offerID)
	if err != nil {
		return Chat{}, err
	}
	s.activeChatID = chat.ID
	s.activeOfferID = offer.ID
	return chat, nil
}

// SendMessage appends text to the active chat as the session's company.
func (s *Session) SendMessage(text string) (ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeChatID == "" {
		return ChatMessage{}, ErrNoActiveChat
	}
	return s.store.AppendMessage(s.activeChatID, s.companyID, text)
}

// Complete asks confirm first and, if accepted, finalizes the active chat.
func (s *Session) Complete(ctx context.Context, confirm Confirmer) (MatchingResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeChatID == "" || s.activeOfferID == "" {
		return MatchingResult{}, ErrNoActiveChat
	}
	if confirm == nil || !confirm.Confirm(ctx, completePrompt) {
		return MatchingResult{}, ErrNotConfirmed
	}
	return s.store.Complete(s.activeChatID, s.companyID, s.activeOfferID)
}

// CloseActive forgets the active chat. The chat is left as it is.
func (s *Session) CloseActive() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.activeChatID = ""
	s.activeOfferID = ""
}

// Active returns a snapshot of the active chat and its offer.
func (s *Session) Active() (Chat, catalog.Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.active()
}

func (s *Session) active() (Chat, catalog.Offer, error) {
	if s.activeChatID == "" {
		return Chat{}, catalog.Offer{}, ErrNoActiveChat
	}
	chat, ok := s.store.Chat(s.activeChatID)
	if !ok {
		return Chat{}, catalog.Offer{}, ErrChatNotFound
	}
	offer, ok := s.cat.Offer(s.activeOfferID)
	if !ok {
		return Chat{}, catalog.Offer{}, ErrOfferNotFound
	}
	return chat, offer, nil
}

// Suggest drafts a reply for the active chat with the configured assistant.
func (s *Session) Suggest(ctx context.Context) (string, error) {
	if s.assistant == nil {
		return "", ErrAssistantDisabled
	}

	s.mu.Lock()
	chat, offer, err := s.active()
	s.mu.Unlock()
	if err != nil {
		return "", err
	}
	if !chat.Open() {
		return "", ErrChatClosed
	}
	return s.assistant.Draft(ctx, chat, offer, s.companyID)
}
