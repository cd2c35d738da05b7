package usecase

import (
	"strings"

	"github.com/oshilens/backend/internal/domain"
)

// NormalizeHit converts a raw search hit to a Listing.
// Returns false when the hit is not a product page of a supported marketplace.
func NormalizeHit(hit domain.RawSearchHit) (*domain.Listing, bool) {
	platform, ok := MatchProductURL(hit.URL)
	if !ok {
		return nil, false
	}

	text := combinedText(hit)

	return &domain.Listing{
		Platform:    platform,
		Title:       hit.Title,
		Price:       optional(ExtractPrice(text)),
		Condition:   optional(ExtractCondition(text)),
		Link:        hit.URL,
		IsAvailable: CheckAvailability(text),
	}, true
}

// NormalizeHits maps every hit through NormalizeHit, dropping rejected ones
func NormalizeHits(hits []domain.RawSearchHit) []domain.Listing {
	listings := make([]domain.Listing, 0, len(hits))
	for _, hit := range hits {
		if listing, ok := NormalizeHit(hit); ok {
			listings = append(listings, *listing)
		}
	}
	return listings
}

// combinedText joins the searchable fields of a hit
func combinedText(hit domain.RawSearchHit) string {
	parts := []string{hit.Title, hit.Snippet}
	if hit.Content != "" {
		parts = append(parts, hit.Content)
	}
	return strings.Join(parts, " ")
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
