package seed

import (
	"context"

	"github.com/Vovarama1992/steelmatch/internal/catalog"
	"github.com/Vovarama1992/steelmatch/internal/negotiation"
)

// Snapshot is everything the process starts from.
type Snapshot struct {
	Companies []catalog.Company
	Offers    []catalog.Offer
	Chats     []negotiation.Chat
	Matches   []negotiation.MatchingResult
}

// Source is the read-only data source, loaded once at start.
type Source interface {
	Load(ctx context.Context) (Snapshot, error)
}
