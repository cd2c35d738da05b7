package domain

import "context"

// SearchProvider defines the interface for web-search APIs (Serper, Tavily)
type SearchProvider interface {
	Search(ctx context.Context, query string) ([]RawSearchHit, error)
	Name() string
}

// VisionModel defines the interface for hosted vision-language models.
// Generate returns the raw text of the model's answer.
type VisionModel interface {
	Generate(ctx context.Context, req *VisionRequest) (string, error)
}
