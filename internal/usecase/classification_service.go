package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/oshilens/backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// Reasons reported to callers when an image fails validation
const (
	reasonUnparsable = "Could not parse image validation response"
	reasonNotAnime   = "Image does not appear to contain anime-related content"
	reasonUnclear    = "Image is too blurry or unclear to analyze accurately"
)

// ClassificationServiceConfig holds configuration for the classification service
type ClassificationServiceConfig struct {
	EnableDebugLogging bool
}

// ClassificationService identifies anime merchandise in images with a vision model
type ClassificationService struct {
	model      domain.VisionModel
	simplifier *KeywordSimplifier
}

// imageValidation is the phase 1 answer
type imageValidation struct {
	IsAnime bool   `json:"isAnime"`
	IsClear bool   `json:"isClear"`
	Reason  string `json:"reason"`
}

// NewClassificationService creates a new classification service. A nil model means the
// vision credential is not configured; every call then fails with ErrProviderNotConfigured.
func NewClassificationService(model domain.VisionModel, config ClassificationServiceConfig) *ClassificationService {
	return &ClassificationService{
		model:      model,
		simplifier: NewKeywordSimplifier(config.EnableDebugLogging),
	}
}

// Configured reports whether a vision model is available
func (s *ClassificationService) Configured() bool {
	return s != nil && s.model != nil
}

// Classify validates the image and, only if it passes, extracts series, character and
// search keywords.
func (s *ClassificationService) Classify(
	ctx context.Context,
	image *domain.ImageInput,
) (*domain.ClassificationResult, error) {
	if !s.Configured() {
		return nil, fmt.Errorf("%w: vision API key is not set", domain.ErrProviderNotConfigured)
	}
	if image == nil || len(image.Data) == 0 {
		return nil, domain.ErrInvalidRequest
	}

	if err := s.validate(ctx, image); err != nil {
		return nil, err
	}

	return s.analyze(ctx, image)
}

// validate asks whether the image is anime-related and clear
func (s *ClassificationService) validate(ctx context.Context, image *domain.ImageInput) error {
	text, err := s.model.Generate(ctx, &domain.VisionRequest{
		Image:          image.Data,
		MIMEType:       image.MIMEType,
		Prompt:         validationPrompt,
		ResponseFields: validationFields,
	})
	if err != nil {
		return err
	}

	var validation imageValidation
	if err := decodeJSONObject(text, &validation); err != nil {
		return &domain.ImageValidationError{Reason: reasonUnparsable, Err: err}
	}

	log.Debug().
		Bool("isAnime", validation.IsAnime).
		Bool("isClear", validation.IsClear).
		Str("reason", validation.Reason).
		Msg("image validation")

	if !validation.IsAnime {
		return &domain.ImageValidationError{Reason: reasonNotAnime}
	}
	if !validation.IsClear {
		return &domain.ImageValidationError{Reason: reasonUnclear}
	}
	return nil
}

// analyze extracts the classification fields
func (s *ClassificationService) analyze(ctx context.Context, image *domain.ImageInput) (*domain.ClassificationResult, error) {
	text, err := s.model.Generate(ctx, &domain.VisionRequest{
		Image:             image.Data,
		MIMEType:          image.MIMEType,
		SystemInstruction: classificationSystemPrompt,
		Prompt:            analysisPrompt,
		ResponseFields:    analysisFields,
	})
	if err != nil {
		return nil, err
	}

	var result domain.ClassificationResult
	if err := decodeJSONObject(text, &result); err != nil {
		return nil, fmt.Errorf("could not parse analysis response: %w", err)
	}

	result.Series = strings.TrimSpace(result.Series)
	result.Character = strings.TrimSpace(result.Character)
	result.JapaneseKeywords = strings.TrimSpace(result.JapaneseKeywords)
	result.SearchKeyword = strings.TrimSpace(result.SearchKeyword)

	if missing := missingFields(&result); len(missing) > 0 {
		return nil, fmt.Errorf("%w: analysis response missing required fields: %s",
			domain.ErrMalformedResponse, strings.Join(missing, ", "))
	}

	if result.SearchKeyword == "" {
		result.SearchKeyword = s.simplifier.Simplify(result.JapaneseKeywords)
	}
	if result.SearchKeyword == "" {
		result.SearchKeyword = result.JapaneseKeywords
	}

	log.Info().
		Str("series", result.Series).
		Str("character", result.Character).
		Str("searchKeyword", result.SearchKeyword).
		Msg("image classified")

	return &result, nil
}

func missingFields(result *domain.ClassificationResult) []string {
	var missing []string
	if result.Series == "" {
		missing = append(missing, "series")
	}
	if result.Character == "" {
		missing = append(missing, "character")
	}
	if result.JapaneseKeywords == "" {
		missing = append(missing, "japaneseKeywords")
	}
	return missing
}

// extractJSONObject returns the span from the first "{" to the last "}" of a model answer
// that may be wrapped in markdown fences or prose.
func extractJSONObject(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("%w: no JSON object found in response", domain.ErrMalformedResponse)
	}
	return text[start : end+1], nil
}

func decodeJSONObject(text string, v any) error {
	jsonStr, err := extractJSONObject(text)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(jsonStr), v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	return nil
}
