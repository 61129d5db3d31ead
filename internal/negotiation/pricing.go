package negotiation

import "github.com/Vovarama1992/steelmatch/internal/catalog"

// FixedPricer stamps the same value and commission on every match,
// whatever the offer.
type FixedPricer struct {
	Value      int64
	Commission int64
}

func DefaultPricer() FixedPricer {
	return FixedPricer{Value: 150000, Commission: 15000}
}

func (p FixedPricer) Quote(catalog.Offer) (int64, int64) {
	return p.Value, p.Commission
}
