package negotiation

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/Vovarama1992/steelmatch/internal/catalog"
)

const (
	startedMessage   = "商談が開始されました。お互いに詳細を確認し、条件を調整してください。"
	completedMessage = "🎉 商談が成立しました！取引が確定されました。"
)

// Store owns every chat and matching result of the process. All mutations
// run under one lock: lookup-before-create on the offer index and the
// completion transition are atomic with respect to each other.
type Store struct {
	mu      sync.Mutex
	cat     catalog.Reader
	pricer  Pricer
	chats   []*Chat
	byID    map[string]*Chat
	byOffer map[string]*Chat
	matches []MatchingResult
	nowFn   func() time.Time
	newID   func() string
}

type Option func(*Store)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.nowFn = now }
}

// WithIDs replaces the uuid generator.
func WithIDs(next func() string) Option {
	return func(s *Store) { s.newID = next }
}

// NewStore builds the store from seed data. Seed chats must be two-party,
// reference a known offer of the same type, and be the only chat on it.
// Seed matches must point at a seed chat, at most one per chat.
func NewStore(cat catalog.Reader, pricer Pricer, chats []Chat, matches []MatchingResult, opts ...Option) (*Store, error) {
	s := &Store{
		cat:     cat,
		pricer:  pricer,
		byID:    make(map[string]*Chat, len(chats)),
		byOffer: make(map[string]*Chat, len(chats)),
		matches: append([]MatchingResult(nil), matches...),
		nowFn:   time.Now,
		newID:   func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, c := range chats {
		if _, dup := s.byID[c.ID]; dup {
			return nil, fmt.Errorf("duplicate chat id %q", c.ID)
		}
		if _, dup := s.byOffer[c.RelatedOfferID]; dup {
			return nil, fmt.Errorf("offer %q has more than one chat", c.RelatedOfferID)
		}
		offer, ok := cat.Offer(c.RelatedOfferID)
		if !ok {
			return nil, fmt.Errorf("chat %q references unknown offer %q", c.ID, c.RelatedOfferID)
		}
		if c.OfferType != offer.Type {
			return nil, fmt.Errorf("chat %q is typed %s but offer %q is %s", c.ID, c.OfferType, offer.ID, offer.Type)
		}
		if len(c.Participants) != 2 {
			return nil, fmt.Errorf("chat %q has %d participants, want 2", c.ID, len(c.Participants))
		}
		if c.IsMatched && c.Status != ChatCompleted {
			return nil, fmt.Errorf("chat %q is matched but %s", c.ID, c.Status)
		}
		cp := c.clone()
		s.chats = append(s.chats, &cp)
		s.byID[cp.ID] = &cp
		s.byOffer[cp.RelatedOfferID] = &cp
	}

	matched := make(map[string]string, len(matches))
	for _, m := range matches {
		c, ok := s.byID[m.ChatID]
		if !ok {
			return nil, fmt.Errorf("match %q references unknown chat %q", m.ID, m.ChatID)
		}
		if prev, dup := matched[m.ChatID]; dup {
			return nil, fmt.Errorf("chat %q has more than one match (%q, %q)", m.ChatID, prev, m.ID)
		}
		if m.OfferID != c.RelatedOfferID {
			return nil, fmt.Errorf("match %q is for offer %q but chat %q is for %q", m.ID, m.OfferID, c.ID, c.RelatedOfferID)
		}
		matched[m.ChatID] = m.ID
	}
	return s, nil
}

// OpenOrResume returns the chat bound to offerID, creating it on first use
// with companyID as requester. created is false when the chat already existed.
func (s *Store) OpenOrResume(companyID, offerID string) (chat Chat, offer catalog.Offer, created bool, err error) {
	offer, ok := s.cat.Offer(offerID)
	if !ok {
		return Chat{}, catalog.Offer{}, false, ErrOfferNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.byOffer[offerID]; ok {
		return existing.clone(), offer, false, nil
	}

	requester, ok := s.cat.Company(companyID)
	if !ok {
		return Chat{}, catalog.Offer{}, false, ErrCompanyNotFound
	}
	provider, ok := s.cat.Company(offer.CompanyID)
	if !ok {
		return Chat{}, catalog.Offer{}, false, ErrCounterpartyNotFound
	}

	now := s.nowFn()
	c := &Chat{
		ID:             s.newID(),
		Participants:   []catalog.Company{requester, provider},
		RelatedOfferID: offer.ID,
		OfferType:      offer.Type,
		Status:         ChatActive,
		CreatedAt:      now,
	}
	c.Messages = []ChatMessage{s.systemMessage(c.ID, startedMessage, now)}

	s.chats = append(s.chats, c)
	s.byID[c.ID] = c
	s.byOffer[offer.ID] = c

	log.Printf("[svc] chat opened chatId=%s offerId=%s requester=%s", c.ID, offer.ID, requester.ID)
	return c.clone(), offer, true, nil
}

// AppendMessage adds a user message from companyID to an open chat.
func (s *Store) AppendMessage(chatID, companyID, text string) (ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return ChatMessage{}, ErrEmptyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.byID[chatID]
	if !ok {
		return ChatMessage{}, ErrChatNotFound
	}
	if !c.Open() {
		return ChatMessage{}, ErrChatClosed
	}
	if !c.HasParticipant(companyID) {
		return ChatMessage{}, ErrNotParticipant
	}
	sender, ok := s.cat.Company(companyID)
	if !ok {
		return ChatMessage{}, ErrCompanyNotFound
	}

	msg := ChatMessage{
		ID:         s.newID(),
		ChatID:     c.ID,
		SenderID:   sender.ID,
		SenderName: sender.Name,
		Message:    text,
		Timestamp:  s.nowFn(),
		Type:       MessageUser,
	}
	c.Messages = append(c.Messages, msg)
	return msg, nil
}

// Complete finalizes the chat for offerID on behalf of companyID. Either the
// chat is closed and exactly one MatchingResult recorded, or nothing changes.
func (s *Store) Complete(chatID, companyID, offerID string) (MatchingResult, error) {
	offer, ok := s.cat.Offer(offerID)
	if !ok {
		return MatchingResult{}, ErrOfferNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.byID[chatID]
	if !ok {
		return MatchingResult{}, ErrChatNotFound
	}
	if c.RelatedOfferID != offer.ID {
		return MatchingResult{}, ErrOfferMismatch
	}
	requester, ok := s.cat.Company(companyID)
	if !ok {
		return MatchingResult{}, ErrCompanyNotFound
	}
	if !c.HasParticipant(companyID) {
		return MatchingResult{}, ErrNotParticipant
	}
	provider, ok := c.Counterparty(companyID)
	if !ok {
		return MatchingResult{}, ErrCounterpartyNotFound
	}
	if !c.Open() {
		return MatchingResult{}, ErrChatClosed
	}

	now := s.nowFn()
	value, commission := s.pricer.Quote(offer)
	result := MatchingResult{
		ID:               s.newID(),
		ChatID:           c.ID,
		OfferID:          offer.ID,
		OfferType:        offer.Type,
		RequesterCompany: requester,
		ProviderCompany:  provider,
		MatchedAt:        now,
		Value:            value,
		Commission:       commission,
		Status:           MatchCompleted,
	}

	c.Messages = append(c.Messages, s.systemMessage(c.ID, completedMessage, now))
	c.IsMatched = true
	c.Status = ChatCompleted
	c.MatchedAt = &now
	s.matches = append(s.matches, result)

	log.Printf("[svc] chat completed chatId=%s offerId=%s value=%d commission=%d",
		c.ID, offer.ID, value, commission)
	return result, nil
}

func (s *Store) Chat(id string) (Chat, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.byID[id]
	if !ok {
		return Chat{}, false
	}
	return c.clone(), true
}

// Chats returns every chat in creation order.
func (s *Store) Chats() []Chat {
	s.mu.Lock()
	defer s.mu.Unlock()

	return lo.Map(s.chats, func(c *Chat, _ int) Chat { return c.clone() })
}

// ChatsFor returns the chats companyID takes part in.
func (s *Store) ChatsFor(companyID string) []Chat {
	return lo.Filter(s.Chats(), func(c Chat, _ int) bool { return c.HasParticipant(companyID) })
}

// Matches returns every matching result in creation order.
func (s *Store) Matches() []MatchingResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]MatchingResult(nil), s.matches...)
}

func (s *Store) systemMessage(chatID, text string, at time.Time) ChatMessage {
	return ChatMessage{
		ID:         s.newID(),
		ChatID:     chatID,
		SenderID:   SystemSenderID,
		SenderName: SystemSenderName,
		Message:    text,
		Timestamp:  at,
		Type:       MessageSystem,
	}
}
