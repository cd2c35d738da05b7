package usecase

import (
	"cmp"
	"slices"
	"strings"

	"github.com/oshilens/backend/internal/domain"
)

// RankListings returns a stably sorted copy of listings: available before unavailable,
// then priced before unpriced, then ascending price.
func RankListings(listings []domain.Listing) []domain.Listing {
	ranked := slices.Clone(listings)
	slices.SortStableFunc(ranked, compareListings)
	return ranked
}

func compareListings(a, b domain.Listing) int {
	if a.IsAvailable != b.IsAvailable {
		if a.IsAvailable {
			return -1
		}
		return 1
	}

	aValue, aPriced := listingPrice(a)
	bValue, bPriced := listingPrice(b)
	if aPriced != bPriced {
		if aPriced {
			return -1
		}
		return 1
	}

	return cmp.Compare(aValue, bValue)
}

// listingPrice returns the listing's price in yen. A price string that does not
// parse counts as no price.
func listingPrice(l domain.Listing) (int, bool) {
	if !l.HasPrice() {
		return 0, false
	}
	return ParsePrice(*l.Price)
}

// ComputeStats summarizes listings. The price range only covers listings with a
// usable price and is all zero when there are none.
func ComputeStats(listings []domain.Listing) domain.SearchStats {
	stats := domain.SearchStats{TotalResults: len(listings)}

	prices := make([]int, 0, len(listings))
	for _, l := range listings {
		if l.IsAvailable {
			stats.AvailableCount++
		}
		if value, ok := listingPrice(l); ok {
			prices = append(prices, value)
		}
	}
	stats.UnavailableCount = stats.TotalResults - stats.AvailableCount

	if len(prices) > 0 {
		stats.PriceRange = domain.PriceRange{
			Min:     slices.Min(prices),
			Max:     slices.Max(prices),
			Average: roundedMean(prices),
		}
	}

	return stats
}

// roundedMean averages non-negative values, rounding half up. Quotients and remainders
// are summed separately; neither sum can overflow.
func roundedMean(values []int) int {
	n := len(values)
	var quotients, remainders int
	for _, v := range values {
		quotients += v / n
		remainders += v % n
	}
	mean := quotients + remainders/n
	if 2*(remainders%n) >= n {
		mean++
	}
	return mean
}

// ApplyFilters keeps the listings that satisfy every non-zero filter.
// Listings without a detected price survive a max-price filter.
func ApplyFilters(listings []domain.Listing, filters domain.SearchFilters) []domain.Listing {
	condition := strings.ToLower(strings.TrimSpace(filters.Condition))

	filtered := make([]domain.Listing, 0, len(listings))
	for _, l := range listings {
		if value, ok := listingPrice(l); filters.MaxPrice > 0 && ok && value > filters.MaxPrice {
			continue
		}
		if condition != "" && (l.Condition == nil || !strings.Contains(strings.ToLower(*l.Condition), condition)) {
			continue
		}
		if filters.Platform != "" && l.Platform != filters.Platform {
			continue
		}
		filtered = append(filtered, l)
	}
	return filtered
}
