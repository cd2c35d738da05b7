// Package tavily is a SearchProvider backed by the Tavily search API.
// Unlike Serper it also returns extracted page content for each hit.
package tavily

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
	// DefaultBaseURL is the public Tavily endpoint
	DefaultBaseURL = "https://api.tavily.com"

	defaultMaxResults = 10
)

type searchRequest struct {
	Query             string `json:"query"`
	MaxResults        int    `json:"max_results"`
	IncludeRawContent bool   `json:"include_raw_content"`
}

type searchResponse struct {
	Query   string         `json:"query"`
	Results []searchResult `json:"results"`
}

type searchResult struct {
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	Content    string  `json:"content"`
	RawContent string  `json:"raw_content"`
	Score      float64 `json:"score"`
}

// ClientOpts configures a Client
type ClientOpts struct {
	APIKey     string
	BaseURL    string
	MaxResults int
	Timeout    time.Duration
}

// Client handles communication with the Tavily API
type Client struct {
	httpClient *resty.Client
	maxResults int
}

// NewClient creates a new Tavily API client
func NewClient(opts ClientOpts) *Client {
	baseURL := DefaultBaseURL
	if opts.BaseURL != "" {
		baseURL = opts.BaseURL
	}
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	return &Client{
		httpClient: restclient.New(restclient.Options{
			BaseURL: baseURL,
			Headers: map[string]string{"Authorization": "Bearer " + opts.APIKey},
			Timeout: opts.Timeout,
		}),
		maxResults: maxResults,
	}
}

// Name identifies the provider in logs
func (c *Client) Name() string {
	return "tavily"
}

// Search runs one web search including extracted page content
func (c *Client) Search(ctx context.Context, query string) ([]domain.RawSearchHit, error) {
	log.Debug().Str("query", query).Msg("tavily search")

	result := &searchResponse{}
	_, err := restclient.HandleError(c.httpClient.R().
		SetContext(ctx).
		SetBody(searchRequest{Query: query, MaxResults: c.maxResults, IncludeRawContent: true}).
		SetResult(result).
		Post("/search"))
	if err != nil {
		return nil, err
	}

	hits := toHits(result.Results)
	log.Debug().Int("hits", len(hits)).Msg("tavily search done")
	return hits, nil
}

// toHits maps Tavily results. Tavily has no separate snippet: the short extract becomes
// the snippet and the raw page text, when present, becomes the content.
func toHits(results []searchResult) []domain.RawSearchHit {
	hits := make([]domain.RawSearchHit, 0, len(results))
	for _, r := range results {
		if r.URL == "" {
			continue
		}
		hits = append(hits, domain.RawSearchHit{
			Title:   htmltext.Plain(r.Title),
			URL:     r.URL,
			Snippet: htmltext.Plain(r.Content),
			Content: htmltext.Plain(r.RawContent),
		})
	}
	return hits
}
