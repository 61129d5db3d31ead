package negotiation

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Vovarama1992/steelmatch/internal/catalog"
)

var (
	buyer   = catalog.Company{ID: "comp-001", Name: "東日本製鉄", Prefecture: "東京都", IsActive: true}
	carrier = catalog.Company{ID: "comp-002", Name: "関西運輸", Prefecture: "大阪府", IsActive: true}
	trader  = catalog.Company{ID: "comp-003", Name: "九州金属", Prefecture: "福岡県", IsActive: true}

	fixedNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(
		[]catalog.Company{buyer, carrier, trader},
		[]catalog.Offer{
			{
				ID: "transport-001", Type: catalog.OfferTransport, CompanyID: carrier.ID,
				AvailableDate: "2025-06-20", IsActive: true,
				Transport: &catalog.TransportDetails{
					FromLocation: "大阪市", ToLocation: "東京都江東区",
					FromPrefecture: "大阪府", ToPrefecture: "東京都",
					Capacity: 20, VehicleType: "トレーラー",
				},
			},
			{
				ID: "material-001", Type: catalog.OfferMaterial, CompanyID: trader.ID,
				AvailableDate: "2025-06-18", IsActive: true,
				Material: &catalog.MaterialDetails{
					MaterialType: "熱延鋼板", MaterialCategory: catalog.CategorySteel,
					Quantity: 100, Unit: catalog.UnitTon, Quality: "SS400",
				},
			},
			{
				ID: "own-001", Type: catalog.OfferMaterial, CompanyID: buyer.ID,
				AvailableDate: "2025-06-18", IsActive: true,
				Material: &catalog.MaterialDetails{MaterialType: "鉄スクラップ", MaterialCategory: catalog.CategoryIron, Quantity: 5, Unit: catalog.UnitTon},
			},
		},
	)
	require.NoError(t, err)
	return cat
}

func sequentialIDs() func() string {
	var n atomic.Int64
	return func() string { return fmt.Sprintf("id-%d", n.Add(1)) }
}

func newTestStore(t *testing.T, chats []Chat, matches []MatchingResult) *Store {
	t.Helper()
	s, err := NewStore(testCatalog(t), DefaultPricer(), chats, matches,
		WithClock(func() time.Time { return fixedNow }),
		WithIDs(sequentialIDs()),
	)
	require.NoError(t, err)
	return s
}

func Test_OpenOrResume_Creates_Chat_With_System_Message(t *testing.T) {
	req := require.New(t)
	s := newTestStore(t, nil, nil)

	chat, offer, created, err := s.OpenOrResume(buyer.ID, "transport-001")
	req.NoError(err)
	req.True(created)
	req.Equal("transport-001", offer.ID)

	req.Equal(ChatActive, chat.Status)
	req.False(chat.IsMatched)
	req.Nil(chat.MatchedAt)
	req.Equal(catalog.OfferTransport, chat.OfferType)
	req.Equal([]string{buyer.ID, carrier.ID}, []string{chat.Participants[0].ID, chat.Participants[1].ID})
	req.Len(chat.Messages, 1)

	msg := chat.Messages[0]
	req.Equal(MessageSystem, msg.Type)
	req.Equal(SystemSenderID, msg.SenderID)
	req.Equal(SystemSenderName, msg.SenderName)
	req.Equal(chat.ID, msg.ChatID)
	req.Equal(startedMessage, msg.Message)
}

func Test_OpenOrResume_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	s := newTestStore(t, nil, nil)

	first, _, _, err := s.OpenOrResume(buyer.ID, "transport-001")
	req.NoError(err)
	second, _, created, err := s.OpenOrResume(buyer.ID, "transport-001")
	req.NoError(err)

	req.False(created)
	req.Equal(first.ID, second.ID)
	req.Len(second.Messages, 1)
	req.Len(s.Chats(), 1)
}

func Test_OpenOrResume_Preconditions(t *testing.T) {
	s := newTestStore(t, nil, nil)

	_, _, _, err := s.OpenOrResume(buyer.ID, "nope")
	require.ErrorIs(t, err, ErrOfferNotFound)
	require.ErrorIs(t, err, ErrPreconditionFailed)

	_, _, _, err = s.OpenOrResume("ghost", "transport-001")
	require.ErrorIs(t, err, ErrCompanyNotFound)
	require.Empty(t, s.Chats())
}

func Test_OpenOrResume_Concurrent_Creates_One_Chat(t *testing.T) {
	req := require.New(t)
	s, err := NewStore(testCatalog(t), DefaultPricer(), nil, nil)
	req.NoError(err)

	var wg sync.WaitGroup
	ids := make([]string, 32)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			company := buyer.ID
			if i%2 == 1 {
				company = trader.ID
			}
			chat, _, _, err := s.OpenOrResume(company, "transport-001")
			if err == nil {
				ids[i] = chat.ID
			}
		}(i)
	}
	wg.Wait()

	req.Len(s.Chats(), 1)
	for _, id := range ids {
		req.Equal(s.Chats()[0].ID, id)
	}
}

func Test_AppendMessage(t *testing.T) {
	req := require.New(t)
	s := newTestStore(t, nil, nil)
	chat, _, _, err := s.OpenOrResume(buyer.ID, "transport-001")
	req.NoError(err)

	msg, err := s.AppendMessage(chat.ID, buyer.ID, "  100トン可能です \n")
	req.NoError(err)
	req.Equal("100トン可能です", msg.Message)
	req.Equal(MessageUser, msg.Type)
	req.Equal(buyer.ID, msg.SenderID)
	req.Equal(buyer.Name, msg.SenderName)
	req.Equal(fixedNow, msg.Timestamp)

	got, ok := s.Chat(chat.ID)
	req.True(ok)
	req.Len(got.Messages, 2)
	req.Equal(msg, got.Messages[1])

	_, err = s.AppendMessage(chat.ID, carrier.ID, "承知しました")
	req.NoError(err)
}

func Test_AppendMessage_Rejections(t *testing.T) {
	req := require.New(t)
	s := newTestStore(t, nil, nil)
	chat, _, _, err := s.OpenOrResume(buyer.ID, "transport-001")
	req.NoError(err)

	_, err = s.AppendMessage(chat.ID, buyer.ID, "   \t")
	req.ErrorIs(err, ErrEmptyMessage)
	_, err = s.AppendMessage("missing", buyer.ID, "hi")
	req.ErrorIs(err, ErrChatNotFound)
	_, err = s.AppendMessage(chat.ID, trader.ID, "hi")
	req.ErrorIs(err, ErrNotParticipant)

	got, _ := s.Chat(chat.ID)
	req.Len(got.Messages, 1)
}

func Test_Complete_Records_One_Match(t *testing.T) {
	req := require.New(t)
	s := newTestStore(t, nil, nil)
	chat, _, _, err := s.OpenOrResume(buyer.ID, "transport-001")
	req.NoError(err)

	result, err := s.Complete(chat.ID, buyer.ID, "transport-001")
	req.NoError(err)
	req.Equal(chat.ID, result.ChatID)
	req.Equal("transport-001", result.OfferID)
	req.Equal(catalog.OfferTransport, result.OfferType)
	req.Equal(buyer, result.RequesterCompany)
	req.Equal(carrier, result.ProviderCompany)
	req.Equal(int64(150000), result.Value)
	req.Equal(int64(15000), result.Commission)
	req.Equal(MatchCompleted, result.Status)
	req.Equal(fixedNow, result.MatchedAt)

	got, _ := s.Chat(chat.ID)
	req.True(got.IsMatched)
	req.Equal(ChatCompleted, got.Status)
	req.NotNil(got.MatchedAt)
	req.Equal(fixedNow, *got.MatchedAt)
	req.Len(got.Messages, 2)
	req.Equal(MessageSystem, got.Messages[1].Type)
	req.Equal(completedMessage, got.Messages[1].Message)

	_, err = s.Complete(chat.ID, buyer.ID, "transport-001")
	req.ErrorIs(err, ErrChatClosed)
	req.Len(s.Matches(), 1)

	_, err = s.AppendMessage(chat.ID, buyer.ID, "まだ話せますか")
	req.ErrorIs(err, ErrChatClosed)
	got, _ = s.Chat(chat.ID)
	req.Len(got.Messages, 2)
}

func Test_Complete_Concurrent_Yields_One_Match(t *testing.T) {
	req := require.New(t)
	s := newTestStore(t, nil, nil)
	chat, _, _, err := s.OpenOrResume(buyer.ID, "transport-001")
	req.NoError(err)

	var wg sync.WaitGroup
	var wins atomic.Int32
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Complete(chat.ID, buyer.ID, "transport-001"); err == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	req.Equal(int32(1), wins.Load())
	req.Len(s.Matches(), 1)
	got, _ := s.Chat(chat.ID)
	req.Len(got.Messages, 2)
}

func Test_Complete_Preconditions(t *testing.T) {
	req := require.New(t)
	s := newTestStore(t, nil, nil)
	chat, _, _, err := s.OpenOrResume(buyer.ID, "transport-001")
	req.NoError(err)
	self, _, _, err := s.OpenOrResume(buyer.ID, "own-001")
	req.NoError(err)

	_, err = s.Complete(chat.ID, buyer.ID, "nope")
	req.ErrorIs(err, ErrOfferNotFound)
	_, err = s.Complete(chat.ID, buyer.ID, "material-001")
	req.ErrorIs(err, ErrOfferMismatch)
	_, err = s.Complete("missing", buyer.ID, "transport-001")
	req.ErrorIs(err, ErrChatNotFound)
	_, err = s.Complete(chat.ID, "ghost", "transport-001")
	req.ErrorIs(err, ErrCompanyNotFound)
	_, err = s.Complete(chat.ID, trader.ID, "transport-001")
	req.ErrorIs(err, ErrNotParticipant)
	// both participants are the same company
	_, err = s.Complete(self.ID, buyer.ID, "own-001")
	req.ErrorIs(err, ErrCounterpartyNotFound)

	req.Empty(s.Matches())
	got, _ := s.Chat(chat.ID)
	req.True(got.Open())
	req.Len(got.Messages, 1)
}

func Test_Reads_Return_Copies(t *testing.T) {
	req := require.New(t)
	s := newTestStore(t, nil, nil)
	chat, _, _, err := s.OpenOrResume(buyer.ID, "transport-001")
	req.NoError(err)

	chat.Messages[0].Message = "tampered"
	chat.Messages = append(chat.Messages, ChatMessage{ID: "x"})

	got, _ := s.Chat(chat.ID)
	req.Len(got.Messages, 1)
	req.Equal(startedMessage, got.Messages[0].Message)
}

func Test_NewStore_Seeds(t *testing.T) {
	req := require.New(t)
	matchedAt := fixedNow.Add(-time.Hour)
	seed := Chat{
		ID: "chat-001", RelatedOfferID: "material-001", OfferType: catalog.OfferMaterial,
		Participants: []catalog.Company{buyer, trader},
		Status:       ChatCompleted, IsMatched: true, MatchedAt: &matchedAt,
	}
	match := MatchingResult{ID: "match-001", ChatID: "chat-001", OfferID: "material-001", Status: MatchCompleted}

	s := newTestStore(t, []Chat{seed}, []MatchingResult{match})
	req.Len(s.Matches(), 1)
	req.Len(s.ChatsFor(trader.ID), 1)
	req.Empty(s.ChatsFor(carrier.ID))

	chat, _, created, err := s.OpenOrResume(buyer.ID, "material-001")
	req.NoError(err)
	req.False(created)
	req.Equal("chat-001", chat.ID)

	dup := seed
	dup.ID = "chat-002"
	_, err = NewStore(testCatalog(t), DefaultPricer(), []Chat{seed, dup}, nil)
	req.Error(err)

	unknown := seed
	unknown.RelatedOfferID = "gone"
	_, err = NewStore(testCatalog(t), DefaultPricer(), []Chat{unknown}, nil)
	req.Error(err)

	inconsistent := seed
	inconsistent.Status = ChatActive
	_, err = NewStore(testCatalog(t), DefaultPricer(), []Chat{inconsistent}, nil)
	req.Error(err)
}

func Test_NewStore_Rejects_Broken_Seeds(t *testing.T) {
	matchedAt := fixedNow.Add(-time.Hour)
	chat := func() Chat {
		return Chat{
			ID: "chat-001", RelatedOfferID: "transport-001", OfferType: catalog.OfferTransport,
			Participants: []catalog.Company{buyer, carrier},
			Status:       ChatCompleted, IsMatched: true, MatchedAt: &matchedAt,
		}
	}
	match := func(id, chatID string) MatchingResult {
		return MatchingResult{ID: id, ChatID: chatID, OfferID: "transport-001", Status: MatchCompleted}
	}

	tests := []struct {
		name    string
		chats   func() []Chat
		matches []MatchingResult
	}{
		{
			name: "three participants",
			chats: func() []Chat {
				c := chat()
				c.Participants = append(c.Participants, trader)
				return []Chat{c}
			},
		},
		{
			name: "one participant",
			chats: func() []Chat {
				c := chat()
				c.Participants = c.Participants[:1]
				return []Chat{c}
			},
		},
		{
			name: "offer type differs from catalog",
			chats: func() []Chat {
				c := chat()
				c.OfferType = catalog.OfferMaterial
				return []Chat{c}
			},
		},
		{
			name:    "two matches for one chat",
			chats:   func() []Chat { return []Chat{chat()} },
			matches: []MatchingResult{match("m1", "chat-001"), match("m2", "chat-001")},
		},
		{
			name:    "match for unknown chat",
			chats:   func() []Chat { return []Chat{chat()} },
			matches: []MatchingResult{match("m3", "ghost")},
		},
		{
			name:  "match offer differs from chat offer",
			chats: func() []Chat { return []Chat{chat()} },
			matches: []MatchingResult{{
				ID: "m4", ChatID: "chat-001", OfferID: "material-001", Status: MatchCompleted,
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStore(testCatalog(t), DefaultPricer(), tt.chats(), tt.matches)
			require.Error(t, err)
		})
	}

	s, err := NewStore(testCatalog(t), DefaultPricer(), []Chat{chat()}, []MatchingResult{match("m1", "chat-001")})
	require.NoError(t, err)
	require.Len(t, s.Matches(), 1)
}

type percentPricer struct{}

func (percentPricer) Quote(o catalog.Offer) (int64, int64) {
	v := int64(o.Amount() * 10000)
	return v, v / 20
}

func Test_Complete_Uses_Pricer(t *testing.T) {
	req := require.New(t)
	s, err := NewStore(testCatalog(t), percentPricer{}, nil, nil)
	req.NoError(err)
	chat, _, _, err := s.OpenOrResume(buyer.ID, "material-001")
	req.NoError(err)

	result, err := s.Complete(chat.ID, buyer.ID, "material-001")
	req.NoError(err)
	req.Equal(int64(1000000), result.Value)
	req.Equal(int64(50000), result.Commission)
}
