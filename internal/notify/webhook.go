package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/Vovarama1992/steelmatch/internal/negotiation"
)

const eventMatchCompleted = "match.completed"

// Webhook posts every completed match as JSON to a fixed URL.
type Webhook struct {
	url    string
	client *http.Client
}

func NewWebhook(url string) *Webhook {
	return &Webhook{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type matchEvent struct {
	Event  string                     `json:"event"`
	SentAt time.Time                  `json:"sentAt"`
	Match  negotiation.MatchingResult `json:"match"`
}

func (w *Webhook) MatchCompleted(ctx context.Context, result negotiation.MatchingResult) error {
	return w.send(ctx, matchEvent{
		Event:  eventMatchCompleted,
		SentAt: time.Now(),
		Match:  result,
	})
}

func (w *Webhook) send(ctx context.Context, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post match webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("match webhook error: %s body=%s", resp.Status, respBody)
	}

	log.Printf("[notify] match delivered to webhook")
	return nil
}
