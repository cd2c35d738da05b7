// Package gemini is a VisionModel backed by Google's Gemini API.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/oshilens/backend/internal/domain"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured
const DefaultModel = "gemini-2.5-flash"

// ClientOpts configures a Client
type ClientOpts struct {
	APIKey string
	Model  string
	// StructuredOutput asks the model for JSON matching the request's fields
	// instead of relying on prompt instructions alone.
	StructuredOutput bool
	// BaseURL overrides the API endpoint; empty uses the public one.
	BaseURL string
}

// Client sends image prompts to Gemini
type Client struct {
	client           *genai.Client
	model            string
	structuredOutput bool
}

// NewClient creates a new Gemini client
func NewClient(ctx context.Context, opts ClientOpts) (*Client, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key is empty", domain.ErrProviderNotConfigured)
	}

	config := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		config.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := opts.Model
	if model == "" {
		model = DefaultModel
	}

	return &Client{
		client:           client,
		model:            model,
		structuredOutput: opts.StructuredOutput,
	}, nil
}

// Generate sends the image and prompt and returns the model's text answer
func (c *Client) Generate(ctx context.Context, req *domain.VisionRequest) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(req.Prompt),
		{InlineData: &genai.Blob{Data: req.Image, MIMEType: req.MIMEType}},
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, c.generateConfig(req))
	if err != nil {
		return "", classifyError(err)
	}

	if err := checkBlocked(result); err != nil {
		return "", err
	}

	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty response from gemini", domain.ErrVisionProviderFailure)
	}

	text := result.Text()

	event := log.Info().Str("model", c.model).Int("imageBytes", len(req.Image))
	if result.UsageMetadata != nil {
		event = event.
			Int32("inputTokens", result.UsageMetadata.PromptTokenCount).
			Int32("outputTokens", result.UsageMetadata.CandidatesTokenCount)
	}
	event.Msg("vision llm call")
	log.Debug().Str("response", text).Msg("vision llm output")

	return text, nil
}

func (c *Client) generateConfig(req *domain.VisionRequest) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		SafetySettings: safetySettings(),
	}
	if req.SystemInstruction != "" {
		config.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}
	if c.structuredOutput && len(req.ResponseFields) > 0 {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = buildSchema(req.ResponseFields)
	}
	return config
}

// safetySettings disables provider-side blocking for the standard harm categories.
// Blocks that still happen are reported as ErrContentBlocked.
func safetySettings() []*genai.SafetySetting {
	categories := []genai.HarmCategory{
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryHarassment,
		genai.HarmCategoryDangerousContent,
	}
	settings := make([]*genai.SafetySetting, 0, len(categories))
	for _, category := range categories {
		settings = append(settings, &genai.SafetySetting{
			Category:  category,
			Threshold: genai.HarmBlockThresholdBlockNone,
		})
	}
	return settings
}

// buildSchema converts the requested response fields into a JSON object schema
func buildSchema(fields []domain.ResponseField) *genai.Schema {
	properties := make(map[string]*genai.Schema, len(fields))
	required := make([]string, 0, len(fields))
	propertyOrdering := make([]string, 0, len(fields))

	for _, field := range fields {
		schemaType := genai.TypeString
		if field.Type == domain.FieldBoolean {
			schemaType = genai.TypeBoolean
		}
		properties[field.Name] = &genai.Schema{
			Type:        schemaType,
			Description: field.Description,
		}
		if field.Required {
			required = append(required, field.Name)
		}
		propertyOrdering = append(propertyOrdering, field.Name)
	}

	return &genai.Schema{
		Type:             genai.TypeObject,
		Properties:       properties,
		Required:         required,
		PropertyOrdering: propertyOrdering,
	}
}

// checkBlocked reports prompt or candidate blocks as ErrContentBlocked
func checkBlocked(result *genai.GenerateContentResponse) error {
	if fb := result.PromptFeedback; fb != nil && fb.BlockReason != "" && fb.BlockReason != genai.BlockedReasonUnspecified {
		return fmt.Errorf("%w: prompt blocked (%s)", domain.ErrContentBlocked, fb.BlockReason)
	}
	if len(result.Candidates) == 0 {
		return nil
	}
	switch reason := result.Candidates[0].FinishReason; reason {
	case genai.FinishReasonSafety, genai.FinishReasonProhibitedContent, genai.FinishReasonBlocklist, genai.FinishReasonSPII:
		return fmt.Errorf("%w: response blocked (%s)", domain.ErrContentBlocked, reason)
	}
	return nil
}

// classifyError maps SDK errors onto domain errors. Rejected credentials are reported as
// a configuration problem rather than a provider outage.
func classifyError(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "API key") || strings.Contains(msg, "API_KEY_INVALID"):
		return fmt.Errorf("%w: %w", domain.ErrProviderNotConfigured, err)
	case strings.Contains(strings.ToLower(msg), "blocked"):
		return fmt.Errorf("%w: %w", domain.ErrContentBlocked, err)
	}
	return fmt.Errorf("%w: %w", domain.ErrVisionProviderFailure, err)
}
