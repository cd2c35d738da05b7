// Package serper is a SearchProvider backed by the Serper Google Search API.
package serper

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/oshilens/backend/internal/domain"
	"github.com/oshilens/backend/internal/infrastructure/htmltext"
	"github.com/oshilens/backend/internal/infrastructure/restclient"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultBaseURL is the public Serper endpoint
	DefaultBaseURL = "https://google.serper.dev"

	defaultNumResults = 10
)

// searchRequest is the body of POST /search
type searchRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num"`
}

type searchResponse struct {
	Organic []organicResult `json:"organic"`
}

type organicResult struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	Snippet  string `json:"snippet"`
	Position int    `json:"position"`
	Date     string `json:"date,omitempty"`
}

// ClientOpts configures a Client
type ClientOpts struct {
	APIKey     string
	BaseURL    string
	NumResults int
	Timeout    time.Duration
}

// Client handles communication with the Serper API
type Client struct {
	httpClient *resty.Client
	numResults int
}

// NewClient creates a new Serper API client
func NewClient(opts ClientOpts) *Client {
	baseURL := DefaultBaseURL
	if opts.BaseURL != "" {
		baseURL = opts.BaseURL
	}
	numResults := opts.NumResults
	if numResults <= 0 {
		numResults = defaultNumResults
	}

	return &Client{
		httpClient: restclient.New(restclient.Options{
			BaseURL: baseURL,
			Headers: map[string]string{"X-API-KEY": opts.APIKey},
			Timeout: opts.Timeout,
		}),
		numResults: numResults,
	}
}

// Name identifies the provider in logs
func (c *Client) Name() string {
	return "serper"
}

// Search runs one web search and returns its organic results
func (c *Client) Search(ctx context.Context, query string) ([]domain.RawSearchHit, error) {
	log.Debug().Str("query", query).Msg("serper search")

	result := &searchResponse{}
	_, err := restclient.HandleError(c.httpClient.R().
		SetContext(ctx).
		SetBody(searchRequest{Q: query, Num: c.numResults}).
		SetResult(result).
		Post("/search"))
	if err != nil {
		return nil, err
	}

	hits := toHits(result.Organic)
	log.Debug().Int("hits", len(hits)).Msg("serper search done")
	return hits, nil
}

func toHits(results []organicResult) []domain.RawSearchHit {
	hits := make([]domain.RawSearchHit, 0, len(results))
	for _, r := range results {
		if r.Link == "" {
			continue
		}
		hits = append(hits, domain.RawSearchHit{
			Title:   htmltext.Plain(r.Title),
			URL:     r.Link,
			Snippet: htmltext.Plain(r.Snippet),
		})
	}
	return hits
}
