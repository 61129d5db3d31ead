package catalog

import (
	"fmt"
	"slices"
)

// Catalog holds companies and offers loaded once at start. It is never
// mutated afterwards, so reads need no locking.
type Catalog struct {
	companies []Company
	offers    []Offer
	byCompany map[string]int
	byOffer   map[string]int
}

// New indexes companies and offers. Each offer's Company snapshot is resolved
// from companies; an offer whose owner is unknown or whose details do not
// match its type is rejected.
func New(companies []Company, offers []Offer) (*Catalog, error) {
	c := &Catalog{
		companies: slices.Clone(companies),
		offers:    make([]Offer, 0, len(offers)),
		byCompany: make(map[string]int, len(companies)),
		byOffer:   make(map[string]int, len(offers)),
	}
	for i, co := range c.companies {
		if _, dup := c.byCompany[co.ID]; dup {
			return nil, fmt.Errorf("duplicate company id %q", co.ID)
		}
		c.byCompany[co.ID] = i
	}

	for _, o := range offers {
		if _, dup := c.byOffer[o.ID]; dup {
			return nil, fmt.Errorf("duplicate offer id %q", o.ID)
		}
		idx, ok := c.byCompany[o.CompanyID]
		if !ok {
			return nil, fmt.Errorf("offer %q references unknown company %q", o.ID, o.CompanyID)
		}
		if err := checkVariant(o); err != nil {
			return nil, err
		}
		o.Company = c.companies[idx]
		c.byOffer[o.ID] = len(c.offers)
		c.offers = append(c.offers, o)
	}
	return c, nil
}

func checkVariant(o Offer) error {
	switch o.Type {
	case OfferTransport:
		if o.Transport == nil || o.Material != nil {
			return fmt.Errorf("transport offer %q must carry transport details only", o.ID)
		}
	case OfferMaterial:
		if o.Material == nil || o.Transport != nil {
			return fmt.Errorf("material offer %q must carry material details only", o.ID)
		}
	default:
		return fmt.Errorf("offer %q has unknown type %q", o.ID, o.Type)
	}
	return nil
}

func (c *Catalog) Company(id string) (Company, bool) {
	i, ok := c.byCompany[id]
	if !ok {
		return Company{}, false
	}
	return c.companies[i], true
}

func (c *Catalog) Offer(id string) (Offer, bool) {
	i, ok := c.byOffer[id]
	if !ok {
		return Offer{}, false
	}
	return c.offers[i], true
}

func (c *Catalog) Companies() []Company {
	return slices.Clone(c.companies)
}

func (c *Catalog) Offers() []Offer {
	return slices.Clone(c.offers)
}
