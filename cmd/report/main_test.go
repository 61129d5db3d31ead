package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Vovarama1992/steelmatch/internal/catalog"
	"github.com/Vovarama1992/steelmatch/internal/negotiation"
	"github.com/Vovarama1992/steelmatch/internal/reporting"
)

func sampleReport() reporting.Report {
	return reporting.Report{
		TransportOffers:  4,
		MaterialOffers:   5,
		TotalOffers:      9,
		CompletedMatches: 1,
		MatchingRate:     11.1,
		TotalValue:       150000,
		TotalCommission:  15000,
		ThisMonthMatches: 1,
		RecentMatches: []negotiation.MatchingResult{{
			ID:               "match-001",
			OfferType:        catalog.OfferMaterial,
			RequesterCompany: catalog.Company{Name: "Buyer"},
			ProviderCompany:  catalog.Company{Name: "Seller"},
			MatchedAt:        time.Date(2025, 1, 12, 15, 30, 0, 0, time.UTC),
			Value:            150000,
			Commission:       15000,
			Status:           negotiation.MatchCompleted,
		}},
	}
}

func Test_Yen(t *testing.T) {
	req := require.New(t)
	req.Equal("¥0", yen(0))
	req.Equal("¥999", yen(999))
	req.Equal("¥1,000", yen(1000))
	req.Equal("¥150,000", yen(150000))
	req.Equal("¥1,234,567", yen(1234567))
}

func Test_Fetch(t *testing.T) {
	req := require.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/report" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(sampleReport())
	}))
	defer srv.Close()

	got, err := fetch(context.Background(), srv.Client(), srv.URL+"/")
	req.NoError(err)
	req.Equal(9, got.TotalOffers)
	req.Equal(11.1, got.MatchingRate)
	req.Len(got.RecentMatches, 1)
}

func Test_Fetch_Error_Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := fetch(context.Background(), srv.Client(), srv.URL)
	require.ErrorContains(t, err, "503")
}

func Test_Render(t *testing.T) {
	req := require.New(t)
	var buf bytes.Buffer
	render(&buf, sampleReport(), 10)

	out := buf.String()
	req.Contains(out, "11.1%")
	req.Contains(out, "¥150,000")
	req.Contains(out, "Seller")
	req.Contains(out, "2025-01-12 15:30")
}

func Test_Render_Limits_Recent(t *testing.T) {
	var buf bytes.Buffer
	render(&buf, sampleReport(), 0)
	require.NotContains(t, buf.String(), "Seller")
}
