package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/oshilens/backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// siteRestrictions limit provider results to the supported marketplaces
var siteRestrictions = []string{
	"site:jp.mercari.com",
	"site:suruga-ya.jp",
}

// SearchServiceConfig holds configuration for the search service
type SearchServiceConfig struct {
	SimplifyKeywords   bool
	EnableDebugLogging bool
}

// SearchService finds marketplace listings for a keyword
type SearchService struct {
	provider         domain.SearchProvider
	simplifier       *KeywordSimplifier
	simplifyKeywords bool
}

// NewSearchService creates a new search service. A nil provider means the search
// credential is not configured; every search then fails with ErrProviderNotConfigured.
func NewSearchService(provider domain.SearchProvider, config SearchServiceConfig) *SearchService {
	return &SearchService{
		provider:         provider,
		simplifier:       NewKeywordSimplifier(config.EnableDebugLogging),
		simplifyKeywords: config.SimplifyKeywords,
	}
}

// Search looks up listings for a keyword.
// Flow: prepare keyword -> build query -> provider -> normalize -> filter -> rank -> stats
func (s *SearchService) Search(
	ctx context.Context,
	request *domain.SearchRequest,
) (*domain.SearchResponse, error) {
	if request == nil || strings.TrimSpace(request.Keyword) == "" {
		return nil, domain.ErrInvalidRequest
	}

	if s.provider == nil {
		return nil, fmt.Errorf("%w: search API key is not set", domain.ErrProviderNotConfigured)
	}

	keyword := s.PrepareKeyword(request.Keyword)
	query := BuildSearchQuery(keyword)

	hits, err := s.provider.Search(ctx, query)
	if err != nil {
		if errors.Is(err, domain.ErrProviderNotConfigured) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrSearchProviderFailure, err)
	}

	listings := NormalizeHits(hits)
	listings = ApplyFilters(listings, request.Filters())
	listings = RankListings(listings)

	log.Info().
		Str("provider", s.provider.Name()).
		Str("query", query).
		Int("rawHits", len(hits)).
		Int("listings", len(listings)).
		Msg("merchandise search")

	return &domain.SearchResponse{
		Results:         listings,
		Stats:           ComputeStats(listings),
		Query:           keyword,
		OriginalKeyword: request.Keyword,
		ProviderQuery:   query,
	}, nil
}

// PrepareKeyword applies the keyword policy: simplified when enabled, otherwise trimmed.
// An empty simplification falls back to the trimmed keyword.
func (s *SearchService) PrepareKeyword(keyword string) string {
	trimmed := strings.TrimSpace(keyword)
	if !s.simplifyKeywords {
		return trimmed
	}
	if simplified := s.simplifier.Simplify(trimmed); simplified != "" {
		return simplified
	}
	return trimmed
}

// BuildSearchQuery combines a keyword with the marketplace site restrictions.
// Example: "初音ミク" -> "初音ミク (site:jp.mercari.com OR site:suruga-ya.jp)"
func BuildSearchQuery(keyword string) string {
	return fmt.Sprintf("%s (%s)", strings.TrimSpace(keyword), strings.Join(siteRestrictions, " OR "))
}
