package usecase

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
)

// maxKeywordLength caps the simplified keyword in bytes
const maxKeywordLength = 100

// KeywordSimplifier reduces classifier keyword lists to a focused search phrase
type KeywordSimplifier struct {
	enableDebugLogging bool
}

var (
	// Splits keyword lists on ASCII and Japanese delimiters
	keywordDelimiterPattern = regexp.MustCompile(`[;,、，；\n]`)

	// Multiple spaces cleanup
	multiSpacePattern = regexp.MustCompile(`\s+`)
)

// keywordNoiseTerms mark a keyword part as condition info or a generic product word.
// Matched as lowercase substrings.
var keywordNoiseTerms = []string{
	// Condition (English)
	"excellent",
	"good",
	"fair",
	"poor",
	"condition",
	"new",
	"used",
	"like new",

	// Condition (Japanese)
	"状態",
	"美品",
	"良好",
	"傷あり",
	"中古",
	"未使用",
	"新品",

	// Generic product words
	"figure",
	"doll",
	"toy",
	"merchandise",
	"goods",
	"item",
}

// NewKeywordSimplifier creates a new keyword simplifier
func NewKeywordSimplifier(enableDebugLogging bool) *KeywordSimplifier {
	return &KeywordSimplifier{
		enableDebugLogging: enableDebugLogging,
	}
}

// Simplify turns "Hatsune Miku; TV Anime; Excellent condition" into "Hatsune Miku TV Anime".
// It keeps the first two meaningful parts and falls back to the first part when every
// part is noise.
func (s *KeywordSimplifier) Simplify(keywords string) string {
	// Step 1: Split on delimiters and drop empty parts
	parts := splitKeywords(keywords)
	if len(parts) == 0 {
		return ""
	}

	// Step 2: Drop condition and generic terms
	meaningful := make([]string, 0, len(parts))
	for _, part := range parts {
		if !isNoisePart(part) {
			meaningful = append(meaningful, part)
		}
	}

	// Step 3: Keep the first two meaningful parts (usually character + series)
	simplified := parts[0]
	if len(meaningful) > 0 {
		if len(meaningful) > 2 {
			meaningful = meaningful[:2]
		}
		simplified = strings.Join(meaningful, " ")
	}

	// Step 4: Normalize whitespace and cap length
	simplified = truncateAtWord(normalizeSpaces(simplified), maxKeywordLength)

	if s.enableDebugLogging {
		log.Debug().Str("input", keywords).Str("output", simplified).Msg("simplified keywords")
	}

	return simplified
}

func splitKeywords(keywords string) []string {
	raw := keywordDelimiterPattern.Split(keywords, -1)
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func isNoisePart(part string) bool {
	lower := strings.ToLower(part)
	for _, term := range keywordNoiseTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

func normalizeSpaces(s string) string {
	return strings.TrimSpace(multiSpacePattern.ReplaceAllString(s, " "))
}

// truncateAtWord cuts s to at most limit bytes, preferring a space boundary and
// never splitting a multi-byte rune
func truncateAtWord(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := s[:limit]
	if lastSpace := strings.LastIndex(cut, " "); lastSpace > limit/2 {
		return cut[:lastSpace]
	}
	for i := limit; i > 0; i-- {
		if utf8.RuneStart(s[i]) {
			return s[:i]
		}
	}
	return ""
}
