package usecase

import (
	"strings"

	"github.com/lithammer/dedent"
	"github.com/oshilens/backend/internal/domain"
)

func prompt(text string) string {
	return strings.TrimSpace(dedent.Dedent(text))
}

var classificationSystemPrompt = prompt(`
	You are a Japanese vintage toy expert specializing in anime merchandise. Your task is to analyze images of anime characters and collectibles.

	For any provided image, identify:
	1. The anime/manga series it belongs to
	2. The specific character depicted
	3. The type of merchandise (e.g., strap, acrylic stand, figure, card, etc.)
	4. The approximate year/era if discernible

	Provide the most effective Japanese search keywords used by collectors on Mercari and other Japanese auction sites. These keywords should be specific, authentic, and commonly used.

	You must respond in valid JSON format only.
`)

var validationPrompt = prompt(`
	Analyze this image and determine:
	1. Is this an anime-related image? (yes/no)
	2. Is the image clear enough to identify details? (yes/no)
	3. Brief reason for your assessment

	Respond in valid JSON format: {"isAnime": boolean, "isClear": boolean, "reason": string}
`)

var analysisPrompt = prompt(`
	Analyze this anime character/merchandise image and provide:
	1. series: The name of the anime/manga series
	2. character: The specific character's name
	3. japaneseKeywords: Comma-separated Japanese search keywords used on Mercari (be specific with product type and year if visible)
	4. searchKeyword: The single most effective short Japanese search phrase (character and product type)
	5. reasoning: Brief explanation of your analysis

	Return ONLY valid JSON in this exact format:
	{
	  "series": "string",
	  "character": "string",
	  "japaneseKeywords": "string",
	  "searchKeyword": "string",
	  "reasoning": "string"
	}
`)

var validationFields = []domain.ResponseField{
	{Name: "isAnime", Type: domain.FieldBoolean, Description: "Whether the image is anime-related", Required: true},
	{Name: "isClear", Type: domain.FieldBoolean, Description: "Whether the image is clear enough to identify details", Required: true},
	{Name: "reason", Type: domain.FieldString, Description: "Brief reason for the assessment", Required: true},
}

var analysisFields = []domain.ResponseField{
	{Name: "series", Type: domain.FieldString, Description: "Anime or manga series name", Required: true},
	{Name: "character", Type: domain.FieldString, Description: "Character name", Required: true},
	{Name: "japaneseKeywords", Type: domain.FieldString, Description: "Comma-separated Japanese search keywords", Required: true},
	{Name: "searchKeyword", Type: domain.FieldString, Description: "Single short Japanese search phrase"},
	{Name: "reasoning", Type: domain.FieldString, Description: "Brief explanation of the analysis", Required: true},
}
