package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/cse-connect/connect-backend/internal/models"
)

// QuoteSource supplies the text of an auto-generated zen moment.
type QuoteSource interface {
	Quote(ctx context.Context) (models.Quote, error)
}

var fallbackQuotes = []string{
	"Breathe in calm, breathe out what no longer serves.",
	"Small moments of stillness can reset an entire day.",
	"Let the next breath be a soft beginning.",
	"Peace arrives when we stop rushing it.",
}

// FallbackQuote picks one of the bundled quotes.
func FallbackQuote() models.Quote {
	return models.Quote{
		Text:       fallbackQuotes[rand.IntN(len(fallbackQuotes))],
		Author:     "Zen Archive",
		SourceName: "Local",
	}
}

// QuoteSlateClient fetches random quotes from a QuoteSlate-compatible API.
type QuoteSlateClient struct {
	url    string
	client *http.Client
}

func NewQuoteSlateClient(url string) *QuoteSlateClient {
	return &QuoteSlateClient{url: url, client: &http.Client{Timeout: 10 * time.Second}}
}

type quoteSlateItem struct {
	Quote  string `json:"quote"`
	Author string `json:"author"`
}

// Quote accepts either a single {quote, author} object or an array of them,
// taking the first element.
func (c *QuoteSlateClient) Quote(ctx context.Context) (models.Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return models.Quote{}, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return models.Quote{}, fmt.Errorf("quote API unavailable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.Quote{}, fmt.Errorf("quote API unavailable: status %d", resp.StatusCode)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return models.Quote{}, fmt.Errorf("quote payload invalid: %w", err)
	}
	item, err := parseQuotePayload(raw)
	if err != nil {
		return models.Quote{}, err
	}

	author := strings.TrimSpace(item.Author)
	if author == "" {
		author = "Unknown"
	}
	return models.Quote{
		Text:       strings.TrimSpace(item.Quote),
		Author:     author,
		SourceName: "QuoteSlate",
		SourceURL:  "https://quoteslate.vercel.app",
	}, nil
}

var errBadQuote = errors.New("quote payload invalid")

func parseQuotePayload(raw json.RawMessage) (quoteSlateItem, error) {
	var item quoteSlateItem
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var items []quoteSlateItem
		if err := json.Unmarshal(raw, &items); err != nil || len(items) == 0 {
			return item, errBadQuote
		}
		item = items[0]
	} else if err := json.Unmarshal(raw, &item); err != nil {
		return item, errBadQuote
	}
	if strings.TrimSpace(item.Quote) == "" {
		return item, errBadQuote
	}
	return item, nil
}
