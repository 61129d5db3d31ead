package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Vovarama1992/steelmatch/internal/reporting"
)

func main() {
	defaultURL := os.Getenv("STEELMATCH_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:8080"
	}
	baseURL := flag.String("url", defaultURL, "marketplace base URL")
	recent := flag.Int("recent", 10, "number of recent matches to list")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	report, err := fetch(ctx, http.DefaultClient, *baseURL)
	if err != nil {
		log.Fatal("Error while fetching report: ", err)
	}

	render(os.Stdout, report, *recent)
}

func fetch(ctx context.Context, client *http.Client, baseURL string) (reporting.Report, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(baseURL, "/")+"/admin/report", nil)
	if err != nil {
		return reporting.Report{}, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return reporting.Report{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return reporting.Report{}, fmt.Errorf("report api error: %s body=%s", resp.Status, body)
	}

	var r reporting.Report
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return reporting.Report{}, fmt.Errorf("failed to decode report: %w", err)
	}
	return r, nil
}

func render(w io.Writer, r reporting.Report, recent int) {
	summary := newTable(w)
	summary.SetHeader([]string{"Metric", "Value"})
	summary.AppendBulk([][]string{
		{"Transport offers", strconv.Itoa(r.TransportOffers)},
		{"Material offers", strconv.Itoa(r.MaterialOffers)},
		{"Total offers", strconv.Itoa(r.TotalOffers)},
		{"Completed matches", strconv.Itoa(r.CompletedMatches)},
		{"Matching rate", fmt.Sprintf("%.1f%%", r.MatchingRate)},
		{"Total value", yen(r.TotalValue)},
		{"Total commission", yen(r.TotalCommission)},
		{"This month", strconv.Itoa(r.ThisMonthMatches)},
	})
	summary.Render()

	fmt.Fprintln(w)

	matches := newTable(w)
	matches.SetHeader([]string{"Matched At", "Type", "Requester", "Provider", "Value", "Commission", "Status"})
	for i, m := range r.RecentMatches {
		if i >= recent {
			break
		}
		matches.Append([]string{
			m.MatchedAt.Format("2006-01-02 15:04"),
			string(m.OfferType),
			m.RequesterCompany.Name,
			m.ProviderCompany.Name,
			yen(m.Value),
			yen(m.Commission),
			string(m.Status),
		})
	}
	matches.Render()
}

func newTable(w io.Writer) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetAutoWrapText(false)
	t.SetAutoFormatHeaders(true)
	t.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	t.SetCenterSeparator("")
	t.SetColumnSeparator("")
	t.SetRowSeparator("")
	t.SetHeaderLine(false)
	t.SetBorder(false)
	t.SetTablePadding("\t")
	return t
}

var printer = message.NewPrinter(language.Japanese)

// yen formats an amount with thousands separators, e.g. ¥150,000.
func yen(v int64) string {
	return printer.Sprintf("¥%d", v)
}
