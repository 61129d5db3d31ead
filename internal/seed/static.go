package seed

import (
	"context"
	"time"

	"github.com/Vovarama1992/steelmatch/internal/catalog"
	"github.com/Vovarama1992/steelmatch/internal/negotiation"
)

// Static serves the built-in demo data set.
type Static struct{}

func NewStatic() Static {
	return Static{}
}

func (Static) Load(context.Context) (Snapshot, error) {
	companies := sampleCompanies()
	byID := make(map[string]catalog.Company, len(companies))
	for _, c := range companies {
		byID[c.ID] = c
	}

	matchedAt := ts("2025-01-12T15:30:00+09:00")
	legacyMatchedAt := ts("2024-12-20T13:00:00+09:00")
	chats := []negotiation.Chat{
		{
			ID:             "chat-001",
			Participants:   []catalog.Company{byID["comp-001"], byID["comp-003"]},
			RelatedOfferID: "material-002",
			OfferType:      catalog.OfferMaterial,
			Status:         negotiation.ChatCompleted,
			IsMatched:      true,
			MatchedAt:      &matchedAt,
			CreatedAt:      ts("2025-01-10T09:00:00+09:00"),
			Messages: []negotiation.ChatMessage{
				systemMsg("msg-001", "chat-001", "商談が開始されました。お互いに詳細を確認し、条件を調整してください。", "2025-01-10T09:00:00+09:00"),
				userMsg("msg-002", "chat-001", byID["comp-001"], "SS400の在庫50トン、2月納品は可能でしょうか。", "2025-01-10T09:05:00+09:00"),
				userMsg("msg-003", "chat-001", byID["comp-003"], "可能です。単価はトン当たり9万円でいかがでしょうか。", "2025-01-10T10:20:00+09:00"),
				systemMsg("msg-004", "chat-001", "🎉 商談が成立しました！取引が確定されました。", "2025-01-12T15:30:00+09:00"),
			},
		},
		{
			ID:             "chat-002",
			Participants:   []catalog.Company{byID["comp-001"], byID["comp-002"]},
			RelatedOfferID: "transport-002",
			OfferType:      catalog.OfferTransport,
			Status:         negotiation.ChatActive,
			CreatedAt:      ts("2025-01-14T11:00:00+09:00"),
			Messages: []negotiation.ChatMessage{
				systemMsg("msg-005", "chat-002", "商談が開始されました。お互いに詳細を確認し、条件を調整してください。", "2025-01-14T11:00:00+09:00"),
				userMsg("msg-006", "chat-002", byID["comp-001"], "名古屋までの帰り便、15トンで空きはありますか。", "2025-01-14T11:02:00+09:00"),
			},
		},
		{
			ID:             "chat-003",
			Participants:   []catalog.Company{byID["comp-004"], byID["comp-005"]},
			RelatedOfferID: "transport-003",
			OfferType:      catalog.OfferTransport,
			Status:         negotiation.ChatCompleted,
			IsMatched:      true,
			MatchedAt:      &legacyMatchedAt,
			CreatedAt:      ts("2024-12-18T10:00:00+09:00"),
			Messages: []negotiation.ChatMessage{
				systemMsg("msg-007", "chat-003", "商談が開始されました。お互いに詳細を確認し、条件を調整してください。", "2024-12-18T10:00:00+09:00"),
				userMsg("msg-008", "chat-003", byID["comp-004"], "川崎までスクラップ10トン、積載可能でしょうか。", "2024-12-18T10:10:00+09:00"),
				userMsg("msg-009", "chat-003", byID["comp-005"], "ユニック車で対応可能です。", "2024-12-19T09:30:00+09:00"),
				systemMsg("msg-010", "chat-003", "🎉 商談が成立しました！取引が確定されました。", "2024-12-20T13:00:00+09:00"),
			},
		},
	}

	matches := []negotiation.MatchingResult{
		{
			ID:               "match-001",
			ChatID:           "chat-001",
			OfferID:          "material-002",
			OfferType:        catalog.OfferMaterial,
			RequesterCompany: byID["comp-001"],
			ProviderCompany:  byID["comp-003"],
			MatchedAt:        matchedAt,
			Value:            150000,
			Commission:       15000,
			Status:           negotiation.MatchCompleted,
		},
		{
			ID:               "match-002",
			ChatID:           "chat-003",
			OfferID:          "transport-003",
			OfferType:        catalog.OfferTransport,
			RequesterCompany: byID["comp-004"],
			ProviderCompany:  byID["comp-005"],
			MatchedAt:        legacyMatchedAt,
			Value:            80000,
			Commission:       8000,
			Status:           negotiation.MatchPending,
		},
	}

	return Snapshot{
		Companies: companies,
		Offers:    sampleOffers(),
		Chats:     chats,
		Matches:   matches,
	}, nil
}

func sampleCompanies() []catalog.Company {
	return []catalog.Company{
		{ID: "comp-001", Name: "東日本スチール株式会社", Location: "東京都江東区", Prefecture: "東京都", ContactPerson: "田中 一郎", Phone: "03-1234-5678", Email: "tanaka@higashinihon-steel.example", IsActive: true, JoinedAt: ts("2024-04-01T09:00:00+09:00")},
		{ID: "comp-002", Name: "中部ロジスティクス株式会社", Location: "愛知県名古屋市港区", Prefecture: "愛知県", ContactPerson: "鈴木 花子", Phone: "052-234-5678", Email: "suzuki@chubu-logi.example", IsActive: true, JoinedAt: ts("2024-05-15T09:00:00+09:00")},
		{ID: "comp-003", Name: "関西鋼材販売株式会社", Location: "大阪府堺市", Prefecture: "大阪府", ContactPerson: "佐藤 健", Phone: "072-345-6789", Email: "sato@kansai-kozai.example", IsActive: true, JoinedAt: ts("2024-06-01T09:00:00+09:00")},
		{ID: "comp-004", Name: "九州メタルリサイクル株式会社", Location: "福岡県北九州市", Prefecture: "福岡県", ContactPerson: "高橋 誠", Phone: "093-456-7890", Email: "takahashi@kyushu-metal.example", IsActive: true, JoinedAt: ts("2024-07-10T09:00:00+09:00")},
		{ID: "comp-005", Name: "北関東運輸株式会社", Location: "栃木県宇都宮市", Prefecture: "栃木県", ContactPerson: "伊藤 優子", Phone: "028-567-8901", Email: "ito@kitakanto-unyu.example", IsActive: true, JoinedAt: ts("2024-08-20T09:00:00+09:00")},
	}
}

func sampleOffers() []catalog.Offer {
	return []catalog.Offer{
		transport("transport-001", "comp-002", "名古屋市", "愛知県", "東京都江東区", "東京都", "2025-02-03", 20, "トレーラー（20t）", "平ボディ。鋼材の積載実績多数。", "2025-01-08T10:00:00+09:00"),
		transport("transport-002", "comp-002", "大阪市", "大阪府", "名古屋市", "愛知県", "2025-01-25", 15, "ウイング車（15t）", "帰り便のため割安対応可。", "2025-01-09T10:00:00+09:00"),
		transport("transport-003", "comp-005", "宇都宮市", "栃木県", "川崎市", "神奈川県", "2025-01-30", 10, "ユニック車（10t）", "", "2025-01-10T10:00:00+09:00"),
		transport("transport-004", "comp-005", "さいたま市", "埼玉県", "東京都大田区", "東京都", "2025-02-10", 4, "平ボディ（4t）", "小口配送向け。", "2025-01-11T10:00:00+09:00"),
		material("material-001", "comp-001", "H形鋼", catalog.CategorySteel, 30, catalog.UnitTon, "SS400 JIS規格品", "2025-01-28", "2025-03-31", "8万〜9万円/t", "", "2025-01-08T11:00:00+09:00"),
		material("material-002", "comp-003", "熱延鋼板", catalog.CategorySteel, 50, catalog.UnitTon, "SPHC", "2025-02-01", "", "9万円/t前後", "切板対応可。", "2025-01-09T11:00:00+09:00"),
		material("material-003", "comp-004", "鉄スクラップ（H2）", catalog.CategoryIron, 120, catalog.UnitTon, "H2 検収済み", "2025-01-20", "2025-02-28", "", "", "2025-01-10T11:00:00+09:00"),
		material("material-004", "comp-004", "銅線くず", catalog.CategoryCopper, 800, catalog.UnitKg, "1号銅線", "2025-02-05", "", "応相談", "被覆除去済み。", "2025-01-11T11:00:00+09:00"),
		material("material-005", "comp-003", "アルミ押出材端材", catalog.CategoryAluminum, 300, catalog.UnitPiece, "A6063", "2025-02-15", "", "", "", "2025-01-12T11:00:00+09:00"),
	}
}

func transport(id, companyID, from, fromPref, to, toPref, date string, capacity float64, vehicle, notes, created string) catalog.Offer {
	return catalog.Offer{
		ID:            id,
		Type:          catalog.OfferTransport,
		CompanyID:     companyID,
		AvailableDate: date,
		Notes:         notes,
		IsActive:      true,
		CreatedAt:     ts(created),
		Transport: &catalog.TransportDetails{
			FromLocation:   from,
			ToLocation:     to,
			FromPrefecture: fromPref,
			ToPrefecture:   toPref,
			Capacity:       capacity,
			VehicleType:    vehicle,
		},
	}
}

func material(id, companyID, kind string, cat catalog.MaterialCategory, qty float64, unit catalog.Unit, quality, date, expiry, price, notes, created string) catalog.Offer {
	return catalog.Offer{
		ID:            id,
		Type:          catalog.OfferMaterial,
		CompanyID:     companyID,
		AvailableDate: date,
		Notes:         notes,
		IsActive:      true,
		CreatedAt:     ts(created),
		Material: &catalog.MaterialDetails{
			MaterialType:     kind,
			MaterialCategory: cat,
			Quantity:         qty,
			Unit:             unit,
			Quality:          quality,
			ExpiryDate:       expiry,
			PriceRange:       price,
		},
	}
}

func systemMsg(id, chatID, text, at string) negotiation.ChatMessage {
	return negotiation.ChatMessage{
		ID:         id,
		ChatID:     chatID,
		SenderID:   negotiation.SystemSenderID,
		SenderName: negotiation.SystemSenderName,
		Message:    text,
		Timestamp:  ts(at),
		Type:       negotiation.MessageSystem,
	}
}

func userMsg(id, chatID string, from catalog.Company, text, at string) negotiation.ChatMessage {
	return negotiation.ChatMessage{
		ID:         id,
		ChatID:     chatID,
		SenderID:   from.ID,
		SenderName: from.Name,
		Message:    text,
		Timestamp:  ts(at),
		Type:       negotiation.MessageUser,
	}
}

// ts parses compile-time constants; a typo should fail loudly at start.
func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}
