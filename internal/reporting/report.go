package reporting

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/samber/lo"

	"github.com/Vovarama1992/steelmatch/internal/catalog"
	"github.com/Vovarama1992/steelmatch/internal/negotiation"
)

// Report is the admin dashboard. It is derived on demand and never stored.
type Report struct {
	TransportOffers  int                          `json:"transportOffers"`
	MaterialOffers   int                          `json:"materialOffers"`
	TotalOffers      int                          `json:"totalOffers"`
	CompletedMatches int                          `json:"completedMatches"`
	MatchingRate     float64                      `json:"matchingRate"` // percent, one decimal
	TotalValue       int64                        `json:"totalValue"`
	TotalCommission  int64                        `json:"totalCommission"`
	ThisMonthMatches int                          `json:"thisMonthMatches"`
	RecentMatches    []negotiation.MatchingResult `json:"recentMatches"`
	GeneratedAt      time.Time                    `json:"generatedAt"`
}

// Build derives the report from the offers and matches as of now.
func Build(offers []catalog.Offer, matches []negotiation.MatchingResult, now time.Time) Report {
	r := Report{
		TransportOffers: lo.CountBy(offers, func(o catalog.Offer) bool { return o.Type == catalog.OfferTransport }),
		MaterialOffers:  lo.CountBy(offers, func(o catalog.Offer) bool { return o.Type == catalog.OfferMaterial }),
		GeneratedAt:     now,
	}
	r.TotalOffers = r.TransportOffers + r.MaterialOffers

	completed := lo.Filter(matches, func(m negotiation.MatchingResult, _ int) bool {
		return m.Status == negotiation.MatchCompleted
	})
	r.CompletedMatches = len(completed)
	r.MatchingRate = Rate(r.CompletedMatches, r.TotalOffers)
	r.TotalValue = lo.SumBy(completed, func(m negotiation.MatchingResult) int64 { return m.Value })
	r.TotalCommission = lo.SumBy(completed, func(m negotiation.MatchingResult) int64 { return m.Commission })

	year, month, _ := now.Date()
	r.ThisMonthMatches = lo.CountBy(completed, func(m negotiation.MatchingResult) bool {
		y, mo, _ := m.MatchedAt.In(now.Location()).Date()
		return y == year && mo == month
	})

	r.RecentMatches = slices.Clone(matches)
	if r.RecentMatches == nil {
		r.RecentMatches = []negotiation.MatchingResult{}
	}
	slices.SortStableFunc(r.RecentMatches, func(a, b negotiation.MatchingResult) int {
		return cmp.Compare(b.MatchedAt.UnixNano(), a.MatchedAt.UnixNano())
	})
	return r
}

// Rate is completed/total as a percentage rounded to one decimal, 0 when
// there is nothing to divide by.
func Rate(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(completed)/float64(total)*1000) / 10
}
