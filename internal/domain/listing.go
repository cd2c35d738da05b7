package domain

// Platform identifies a supported Japanese marketplace
type Platform string

const (
	PlatformMercari  Platform = "Mercari"
	PlatformSurugaya Platform = "Suruga-Ya"
)

// RawSearchHit is an unprocessed search-provider result
type RawSearchHit struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
	Content string `json:"content,omitempty"`
}

// Listing is a normalized, validated product result ready for ranking
type Listing struct {
	Platform    Platform `json:"platform"`
	Title       string   `json:"title"`
	Price       *string  `json:"price"`     // e.g. "¥5,000" or "1000円", nil when undetected
	Condition   *string  `json:"condition"` // normalized label, nil when undetected
	Link        string   `json:"link"`
	IsAvailable bool     `json:"isAvailable"`
}

// HasPrice reports whether a price was detected
func (l Listing) HasPrice() bool {
	return l.Price != nil && *l.Price != ""
}

// PriceRange summarizes detected prices in yen
type PriceRange struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Average int `json:"average"`
}

// SearchStats contains summary statistics over a set of listings
type SearchStats struct {
	TotalResults     int        `json:"totalResults"`
	AvailableCount   int        `json:"availableCount"`
	UnavailableCount int        `json:"unavailableCount"`
	PriceRange       PriceRange `json:"priceRange"`
}

// SearchFilters narrows ranked listings. Zero values disable a filter.
type SearchFilters struct {
	MaxPrice  int      `json:"maxPrice,omitempty"`
	Condition string   `json:"condition,omitempty"`
	Platform  Platform `json:"platform,omitempty"`
}

// SearchRequest represents a merchandise search request
type SearchRequest struct {
	Keyword   string   `json:"keyword" binding:"required"`
	MaxPrice  int      `json:"maxPrice,omitempty" binding:"omitempty,min=0"`
	Condition string   `json:"condition,omitempty"`
	Platform  Platform `json:"platform,omitempty" binding:"omitempty,oneof=Mercari Suruga-Ya"`
}

// Filters returns the filter part of the request
func (r *SearchRequest) Filters() SearchFilters {
	return SearchFilters{
		MaxPrice:  r.MaxPrice,
		Condition: r.Condition,
		Platform:  r.Platform,
	}
}

// SearchResponse is the result of a merchandise search
type SearchResponse struct {
	Results         []Listing   `json:"results"`
	Stats           SearchStats `json:"stats"`
	Query           string      `json:"query"`           // keyword actually searched
	OriginalKeyword string      `json:"originalKeyword"` // keyword as received
	ProviderQuery   string      `json:"providerQuery"`   // full query sent to the provider
}
