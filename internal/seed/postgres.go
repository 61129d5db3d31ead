package seed

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/Vovarama1992/steelmatch/internal/catalog"
	"github.com/Vovarama1992/steelmatch/internal/negotiation"
)

// Postgres reads the marketplace tables once. It never writes.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Load(ctx context.Context) (Snapshot, error) {
	companies, err := p.companies(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load companies: %w", err)
	}
	transport, err := p.transportOffers(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load transport offers: %w", err)
	}
	material, err := p.materialOffers(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load material offers: %w", err)
	}
	chats, err := p.chats(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load chats: %w", err)
	}
	participants, err := p.participants(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load chat participants: %w", err)
	}
	messages, err := p.messages(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load chat messages: %w", err)
	}
	matches, err := p.matches(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load matching results: %w", err)
	}

	snap, err := assemble(companies, append(transport, material...), chats, participants, messages, matches)
	if err != nil {
		return Snapshot{}, err
	}
	log.Printf("[seed] postgres: %d companies, %d offers, %d chats, %d matches",
		len(snap.Companies), len(snap.Offers), len(snap.Chats), len(snap.Matches))
	return snap, nil
}

type participantRow struct {
	ChatID    string
	CompanyID string
}

type matchRow struct {
	negotiation.MatchingResult
	RequesterID string
	ProviderID  string
}

// assemble joins the flat table rows into a Snapshot. Chats and matches
// referring to unknown companies are rejected rather than silently dropped.
func assemble(
	companies []catalog.Company,
	offers []catalog.Offer,
	chats []negotiation.Chat,
	participants []participantRow,
	messages []negotiation.ChatMessage,
	matches []matchRow,
) (Snapshot, error) {
	byID := make(map[string]catalog.Company, len(companies))
	for _, c := range companies {
		byID[c.ID] = c
	}

	index := make(map[string]int, len(chats))
	for i, c := range chats {
		index[c.ID] = i
	}
	for _, p := range participants {
		i, ok := index[p.ChatID]
		if !ok {
			return Snapshot{}, fmt.Errorf("participant of unknown chat %q", p.ChatID)
		}
		company, ok := byID[p.CompanyID]
		if !ok {
			return Snapshot{}, fmt.Errorf("chat %q: unknown participant %q", p.ChatID, p.CompanyID)
		}
		chats[i].Participants = append(chats[i].Participants, company)
	}
	for _, m := range messages {
		i, ok := index[m.ChatID]
		if !ok {
			return Snapshot{}, fmt.Errorf("message %q of unknown chat %q", m.ID, m.ChatID)
		}
		chats[i].Messages = append(chats[i].Messages, m)
	}

	results := make([]negotiation.MatchingResult, 0, len(matches))
	for _, m := range matches {
		requester, ok := byID[m.RequesterID]
		if !ok {
			return Snapshot{}, fmt.Errorf("match %q: unknown requester %q", m.ID, m.RequesterID)
		}
		provider, ok := byID[m.ProviderID]
		if !ok {
			return Snapshot{}, fmt.Errorf("match %q: unknown provider %q", m.ID, m.ProviderID)
		}
		r := m.MatchingResult
		r.RequesterCompany = requester
		r.ProviderCompany = provider
		results = append(results, r)
	}

	return Snapshot{
		Companies: companies,
		Offers:    offers,
		Chats:     chats,
		Matches:   results,
	}, nil
}

func (p *Postgres) companies(ctx context.Context) ([]catalog.Company, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, name, location, prefecture, contact_person, phone, email, is_active, joined_at
		FROM companies
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Company
	for rows.Next() {
		var c catalog.Company
		if err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Location,
			&c.Prefecture,
			&c.ContactPerson,
			&c.Phone,
			&c.Email,
			&c.IsActive,
			&c.JoinedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (p *Postgres) transportOffers(ctx context.Context) ([]catalog.Offer, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, company_id, from_location, to_location, from_prefecture, to_prefecture,
		       to_char(available_date, 'YYYY-MM-DD'), capacity, vehicle_type,
		       coalesce(notes, ''), created_at
		FROM transport_offers
		WHERE is_active
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Offer
	for rows.Next() {
		o := catalog.Offer{Type: catalog.OfferTransport, IsActive: true, Transport: &catalog.TransportDetails{}}
		if err := rows.Scan(
			&o.ID,
			&o.CompanyID,
			&o.Transport.FromLocation,
			&o.Transport.ToLocation,
			&o.Transport.FromPrefecture,
			&o.Transport.ToPrefecture,
			&o.AvailableDate,
			&o.Transport.Capacity,
			&o.Transport.VehicleType,
			&o.Notes,
			&o.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (p *Postgres) materialOffers(ctx context.Context) ([]catalog.Offer, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, company_id, material_type, material_category, quantity, unit, quality,
		       to_char(available_date, 'YYYY-MM-DD'),
		       coalesce(to_char(expiry_date, 'YYYY-MM-DD'), ''),
		       coalesce(price_range, ''), coalesce(notes, ''), created_at
		FROM material_offers
		WHERE is_active
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Offer
	for rows.Next() {
		o := catalog.Offer{Type: catalog.OfferMaterial, IsActive: true, Material: &catalog.MaterialDetails{}}
		var category, unit string
		if err := rows.Scan(
			&o.ID,
			&o.CompanyID,
			&o.Material.MaterialType,
			&category,
			&o.Material.Quantity,
			&unit,
			&o.Material.Quality,
			&o.AvailableDate,
			&o.Material.ExpiryDate,
			&o.Material.PriceRange,
			&o.Notes,
			&o.CreatedAt,
		); err != nil {
			return nil, err
		}
		o.Material.MaterialCategory = catalog.MaterialCategory(category)
		o.Material.Unit = catalog.Unit(unit)
		out = append(out, o)
	}
	return out, rows.Err()
}

func (p *Postgres) chats(ctx context.Context) ([]negotiation.Chat, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, related_offer_id, offer_type, status, is_matched, matched_at, created_at
		FROM chats
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []negotiation.Chat
	for rows.Next() {
		var c negotiation.Chat
		var offerType, status string
		var matchedAt sql.NullTime
		if err := rows.Scan(
			&c.ID,
			&c.RelatedOfferID,
			&offerType,
			&status,
			&c.IsMatched,
			&matchedAt,
			&c.CreatedAt,
		); err != nil {
			return nil, err
		}
		c.OfferType = catalog.OfferType(offerType)
		c.Status = negotiation.ChatStatus(status)
		if matchedAt.Valid {
			at := matchedAt.Time
			c.MatchedAt = &at
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (p *Postgres) participants(ctx context.Context) ([]participantRow, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT chat_id, company_id
		FROM chat_participants
		ORDER BY chat_id ASC, position ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []participantRow
	for rows.Next() {
		var r participantRow
		if err := rows.Scan(&r.ChatID, &r.CompanyID); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (p *Postgres) messages(ctx context.Context) ([]negotiation.ChatMessage, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, chat_id, sender_id, sender_name, message, type, created_at
		FROM chat_messages
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []negotiation.ChatMessage
	for rows.Next() {
		var m negotiation.ChatMessage
		var kind string
		if err := rows.Scan(
			&m.ID,
			&m.ChatID,
			&m.SenderID,
			&m.SenderName,
			&m.Message,
			&kind,
			&m.Timestamp,
		); err != nil {
			return nil, err
		}
		m.Type = negotiation.MessageType(kind)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (p *Postgres) matches(ctx context.Context) ([]matchRow, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, chat_id, offer_id, offer_type, requester_company_id, provider_company_id,
		       matched_at, value, commission, status
		FROM matching_results
		ORDER BY matched_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []matchRow
	for rows.Next() {
		var m matchRow
		var offerType, status string
		if err := rows.Scan(
			&m.ID,
			&m.ChatID,
			&m.OfferID,
			&offerType,
			&m.RequesterID,
			&m.ProviderID,
			&m.MatchedAt,
			&m.Value,
			&m.Commission,
			&status,
		); err != nil {
			return nil, err
		}
		m.OfferType = catalog.OfferType(offerType)
		m.Status = negotiation.MatchStatus(status)
		out = append(out, m)
	}
	return out, rows.Err()
}
