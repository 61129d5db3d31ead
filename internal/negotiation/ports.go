package negotiation

import (
	"context"
	"time"

	"github.com/Vovarama1992/steelmatch/internal/catalog"
)

type MessageType string

const (
	MessageSystem MessageType = "system"
	MessageUser   MessageType = "message"
)

const (
	SystemSenderID   = "system"
	SystemSenderName = "システム"
)

type ChatStatus string

const (
	ChatActive    ChatStatus = "active"
	ChatCompleted ChatStatus = "completed"
	ChatCancelled ChatStatus = "cancelled"
)

type MatchStatus string

const (
	MatchPending   MatchStatus = "pending"
	MatchCompleted MatchStatus = "completed"
	MatchCancelled MatchStatus = "cancelled"
)

type ChatMessage struct {
	ID         string      `json:"id"`
	ChatID     string      `json:"chatId"`
	SenderID   string      `json:"senderId"`
	SenderName string      `json:"senderName"`
	Message    string      `json:"message"`
	Timestamp  time.Time   `json:"timestamp"`
	Type       MessageType `json:"type"`
}

// Chat is a negotiation thread on one offer between two companies.
// Participants[0] opened the chat, Participants[1] owns the offer.
type Chat struct {
	ID             string            `json:"id"`
	Participants   []catalog.Company `json:"participants"`
	RelatedOfferID string            `json:"relatedOfferId"`
	OfferType      catalog.OfferType `json:"offerType"`
	Status         ChatStatus        `json:"status"`
	IsMatched      bool              `json:"isMatched"`
	MatchedAt      *time.Time        `json:"matchedAt,omitempty"`
	Messages       []ChatMessage     `json:"messages"`
	CreatedAt      time.Time         `json:"createdAt"`
}

// Open reports whether messages may still be appended.
func (c Chat) Open() bool {
	return !c.IsMatched && c.Status == ChatActive
}

// Counterparty returns the participant that is not companyID.
func (c Chat) Counterparty(companyID string) (catalog.Company, bool) {
	for _, p := range c.Participants {
		if p.ID != companyID {
			return p, true
		}
	}
	return catalog.Company{}, false
}

func (c Chat) HasParticipant(companyID string) bool {
	for _, p := range c.Participants {
		if p.ID == companyID {
			return true
		}
	}
	return false
}

func (c Chat) clone() Chat {
	out := c
	out.Participants = append([]catalog.Company(nil), c.Participants...)
	out.Messages = append([]ChatMessage(nil), c.Messages...)
	if c.MatchedAt != nil {
		at := *c.MatchedAt
		out.MatchedAt = &at
	}
	return out
}

// MatchingResult is the immutable record of a completed negotiation.
type MatchingResult struct {
	ID               string            `json:"id"`
	ChatID           string            `json:"chatId"`
	OfferID          string            `json:"offerId"`
	OfferType        catalog.OfferType `json:"offerType"`
	RequesterCompany catalog.Company   `json:"requesterCompany"`
	ProviderCompany  catalog.Company   `json:"providerCompany"`
	MatchedAt        time.Time         `json:"matchedAt"`
	Value            int64             `json:"value"`
	Commission       int64             `json:"commission"`
	Status           MatchStatus       `json:"status"`
}

// Pricer decides the transaction value and commission stamped on a match.
type Pricer interface {
	Quote(offer catalog.Offer) (value, commission int64)
}

// Confirmer gates completion behind an explicit yes/no from the user.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// Notifier is told about every match after it has been recorded.
type Notifier interface {
	MatchCompleted(ctx context.Context, result MatchingResult) error
}
