package catalog

import (
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var validate = validator.New()

// Criteria narrows an offer list. Zero values impose no constraint.
type Criteria struct {
	Prefecture       string  `validate:"omitempty,max=16"`
	MinCapacity      float64 `validate:"gte=0"`
	MinQuantity      float64 `validate:"gte=0"`
	AvailableFrom    string  `validate:"omitempty,datetime=2006-01-02"`
	MaterialCategory string  `validate:"omitempty,oneof=steel iron aluminum copper other"`
}

func (c Criteria) Validate() error {
	return validate.Struct(c)
}

// Filter keeps the offers of the active type that satisfy every set criterion,
// in their original order. It does not modify offers.
func Filter(offers []Offer, active OfferType, c Criteria) []Offer {
	return lo.Filter(offers, func(o Offer, _ int) bool {
		return o.Type == active && c.Match(o)
	})
}

// Match reports whether a single offer satisfies the criteria.
func (c Criteria) Match(o Offer) bool {
	if c.Prefecture != "" && o.Region() != c.Prefecture {
		return false
	}
	// YYYY-MM-DD is fixed width, so string order is date order.
	if c.AvailableFrom != "" && o.AvailableDate < c.AvailableFrom {
		return false
	}

	switch o.Type {
	case OfferTransport:
		if c.MinCapacity > 0 && o.Amount() < c.MinCapacity {
			return false
		}
	case OfferMaterial:
		if c.MaterialCategory != "" && (o.Material == nil || string(o.Material.MaterialCategory) != c.MaterialCategory) {
			return false
		}
		if c.MinQuantity > 0 && o.Amount() < c.MinQuantity {
			return false
		}
	}
	return true
}
