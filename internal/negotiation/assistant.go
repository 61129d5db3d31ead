package negotiation

import (
	"context"
	"fmt"
	"strings"

	"github.com/Vovarama1992/steelmatch/internal/ai"
	"github.com/Vovarama1992/steelmatch/internal/catalog"
)

// Assistant drafts negotiation replies. It never writes to a chat; the
// caller decides whether to send the draft.
type Assistant struct {
	ai ai.AI
}

func NewAssistant(client ai.AI) *Assistant {
	return &Assistant{ai: client}
}

// Draft proposes the next message companyID could send in chat.
func (a *Assistant) Draft(ctx context.Context, chat Chat, offer catalog.Offer, companyID string) (string, error) {
	history := make([]ai.Message, 0, len(chat.Messages)+2)
	history = append(history,
		ai.Message{Role: ai.RoleSystem, Text: assistantPrompt},
		ai.Message{Role: ai.RoleSystem, Text: describeOffer(offer)},
	)
	for _, m := range chat.Messages {
		role := ai.RoleUser
		switch {
		case m.Type == MessageSystem:
			role = ai.RoleSystem
		case m.SenderID == companyID:
			role = ai.RoleAssistant
		}
		history = append(history, ai.Message{Role: role, Text: m.Message})
	}

	reply, err := a.ai.GetReply(ctx, history)
	if err != nil {
		return "", fmt.Errorf("failed to draft reply: %w", err)
	}
	return strings.TrimSpace(reply), nil
}

func describeOffer(o catalog.Offer) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Offer %s by %s (%s), available from %s.\n", o.ID, o.Company.Name, o.Company.Prefecture, o.AvailableDate)
	switch {
	case o.Type == catalog.OfferTransport && o.Transport != nil:
		t := o.Transport
		fmt.Fprintf(&b, "Transport %s (%s) -> %s (%s), %.1f t, vehicle %s.\n",
			t.FromLocation, t.FromPrefecture, t.ToLocation, t.ToPrefecture, t.Capacity, t.VehicleType)
	case o.Type == catalog.OfferMaterial && o.Material != nil:
		m := o.Material
		fmt.Fprintf(&b, "Material %s [%s], %g %s, quality %s.\n", m.MaterialType, m.MaterialCategory, m.Quantity, m.Unit, m.Quality)
		if m.PriceRange != "" {
			fmt.Fprintf(&b, "Price range %s.\n", m.PriceRange)
		}
		if m.ExpiryDate != "" {
			fmt.Fprintf(&b, "Expires %s.\n", m.ExpiryDate)
		}
	}
	if o.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", o.Notes)
	}
	return b.String()
}
