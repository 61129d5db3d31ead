package catalog

import "time"

type OfferType string

const (
	OfferTransport OfferType = "transport"
	OfferMaterial  OfferType = "material"
)

type MaterialCategory string

const (
	CategorySteel    MaterialCategory = "steel"
	CategoryIron     MaterialCategory = "iron"
	CategoryAluminum MaterialCategory = "aluminum"
	CategoryCopper   MaterialCategory = "copper"
	CategoryOther    MaterialCategory = "other"
)

type Unit string

const (
	UnitKg    Unit = "kg"
	UnitTon   Unit = "ton"
	UnitPiece Unit = "piece"
)

type Company struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Location      string    `json:"location"`
	Prefecture    string    `json:"prefecture"`
	ContactPerson string    `json:"contactPerson"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	IsActive      bool      `json:"isActive"`
	JoinedAt      time.Time `json:"joinedAt"`
}

// TransportDetails is set only on transport offers.
type TransportDetails struct {
	FromLocation   string  `json:"fromLocation"`
	ToLocation     string  `json:"toLocation"`
	FromPrefecture string  `json:"fromPrefecture"`
	ToPrefecture   string  `json:"toPrefecture"`
	Capacity       float64 `json:"capacity"` // tons
	VehicleType    string  `json:"vehicleType"`
}

// MaterialDetails is set only on material offers.
type MaterialDetails struct {
	MaterialType     string           `json:"materialType"`
	MaterialCategory MaterialCategory `json:"materialCategory"`
	Quantity         float64          `json:"quantity"`
	Unit             Unit             `json:"unit"`
	Quality          string           `json:"quality"`
	ExpiryDate       string           `json:"expiryDate,omitempty"`
	PriceRange       string           `json:"priceRange,omitempty"`
}

// Offer is a transport or material listing. Type tells which of Transport
// and Material is populated.
type Offer struct {
	ID            string            `json:"id"`
	Type          OfferType         `json:"type"`
	CompanyID     string            `json:"companyId"`
	Company       Company           `json:"company"`
	AvailableDate string            `json:"availableDate"` // YYYY-MM-DD
	Notes         string            `json:"notes,omitempty"`
	IsActive      bool              `json:"isActive"`
	CreatedAt     time.Time         `json:"createdAt"`
	Transport     *TransportDetails `json:"transport,omitempty"`
	Material      *MaterialDetails  `json:"material,omitempty"`
}

// Region is the prefecture an offer is searched by: the destination for
// transport, the owner's prefecture for material.
func (o Offer) Region() string {
	if o.Type == OfferTransport && o.Transport != nil {
		return o.Transport.ToPrefecture
	}
	return o.Company.Prefecture
}

// Amount is the capacity of a transport offer or the quantity of a material offer.
func (o Offer) Amount() float64 {
	switch {
	case o.Type == OfferTransport && o.Transport != nil:
		return o.Transport.Capacity
	case o.Type == OfferMaterial && o.Material != nil:
		return o.Material.Quantity
	}
	return 0
}

// Reader is the read side other packages depend on.
type Reader interface {
	Company(id string) (Company, bool)
	Offer(id string) (Offer, bool)
	Companies() []Company
	Offers() []Offer
}
