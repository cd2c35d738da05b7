package usecase

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/oshilens/backend/internal/domain"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/unicode/norm"
)

// Plausible price bounds for anime goods, both exclusive
const (
	minPlausiblePrice = 100
	maxPlausiblePrice = 10_000_000
)

var (
	mercariItemPattern  = regexp.MustCompile(`jp\.mercari\.com/item/m[a-zA-Z0-9]+`)
	surugayaItemPattern = regexp.MustCompile(`suruga-ya\.jp/product/detail/[0-9]+`)

	yenSymbolPrice = regexp.MustCompile(`¥\s*(\d[\d,]*)`)
	yenWordPrice   = regexp.MustCompile(`(\d[\d,]*)\s*円`)
	digitRun       = regexp.MustCompile(`\d[\d,]*`)
	nonDigit       = regexp.MustCompile(`[^\d]`)
)

// conditionRule maps a phrase to a normalized condition label
type conditionRule struct {
	pattern *regexp.Regexp
	label   string
}

// conditionRules are checked in order; longer phrases precede the shorter ones they contain
var conditionRules = []conditionRule{
	jpCondition("ほぼ未使用", "Like New"),
	jpCondition("ほぼ新品", "Like New"),
	jpCondition("未使用に近い", "Like New"),
	jpCondition("未開封", "Unopened"),
	jpCondition("未使用", "New"),
	jpCondition("新品", "New"),
	jpCondition("新しい", "New"),
	jpCondition("あたらしい", "New"),
	jpCondition("開封", "Opened"),
	jpCondition("ジャンク", "Junk"),
	jpCondition("傷あり", "Used - With Damage"),
	jpCondition("美品", "Good"),
	jpCondition("中古", "Used"),
	enCondition("like new", "Like New"),
	enCondition("used", "Used"),
	enCondition("new", "New"),
}

// soldOutMarkers mark a listing as unavailable
var soldOutMarkers = []string{
	"売り切れ",
	"売切れ",
	"品切れ",
	"在庫切れ",
	"在庫なし",
	"完売",
	"終了",
	"このアイテムは削除されました",
}

// soldOutEnglish is the English part of the deny list, matched case-insensitively
var soldOutEnglish = regexp.MustCompile(`(?i)\bsold\s*out\b|\bout\s+of\s+stock\b`)

func jpCondition(phrase, label string) conditionRule {
	return conditionRule{pattern: regexp.MustCompile(regexp.QuoteMeta(phrase)), label: label}
}

func enCondition(phrase, label string) conditionRule {
	return conditionRule{pattern: regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(phrase) + `\b`), label: label}
}

// MatchProductURL reports the marketplace of a single-item product page URL.
// Search and listing pages, and URLs from any other site, are rejected.
func MatchProductURL(rawURL string) (domain.Platform, bool) {
	switch {
	case strings.Contains(rawURL, "mercari.com"):
		if !mercariItemPattern.MatchString(rawURL) {
			log.Debug().Str("url", rawURL).Msg("rejected mercari url")
			return "", false
		}
		return domain.PlatformMercari, true
	case strings.Contains(rawURL, "suruga-ya.jp"):
		if !surugayaItemPattern.MatchString(rawURL) {
			log.Debug().Str("url", rawURL).Msg("rejected suruga-ya url")
			return "", false
		}
		return domain.PlatformSurugaya, true
	}
	log.Debug().Str("url", rawURL).Msg("url not from a supported marketplace")
	return "", false
}

// normalizeText applies NFKC: full-width digits, ￥ and ideographic space become narrow,
// and half-width katakana (with its separate voiced marks) becomes composed full-width kana.
func normalizeText(text string) string {
	return norm.NFKC.String(text)
}

// ExtractPrice finds the most likely price in free text.
// Returns "" when no candidate passes.
func ExtractPrice(text string) string {
	text = normalizeText(text)

	if m := yenSymbolPrice.FindStringSubmatch(text); m != nil {
		if run := trimRun(m[1]); parsesAsPrice(run) {
			return "¥" + run
		}
	}

	if m := yenWordPrice.FindStringSubmatch(text); m != nil {
		if run := trimRun(m[1]); parsesAsPrice(run) {
			return run + "円"
		}
	}

	for _, loc := range digitRun.FindAllStringIndex(text, -1) {
		if !standalonePriceRun(text, loc[0], loc[1]) {
			continue
		}
		run := trimRun(text[loc[0]:loc[1]])
		value := PriceValue(run)
		if value > minPlausiblePrice && value < maxPlausiblePrice {
			return "¥" + run
		}
	}

	return ""
}

// standalonePriceRun reports whether text[start:end] can stand for a bare price:
// followed by whitespace, a currency token or end of text, and not part of an identifier.
func standalonePriceRun(text string, start, end int) bool {
	if end < len(text) {
		next, _ := utf8.DecodeRuneInString(text[end:])
		if next != ' ' && next != '\t' && next != '\n' && next != '\r' && next != '円' && next != '¥' {
			return false
		}
	}
	if start > 0 {
		prev, _ := utf8.DecodeLastRuneInString(text[:start])
		if isIdentifierRune(prev) {
			return false
		}
	}
	return true
}

func isIdentifierRune(r rune) bool {
	if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
		return true
	}
	return strings.ContainsRune("/-_.#:=", r)
}

func trimRun(run string) string {
	return strings.TrimRight(run, ",")
}

// PriceValue converts a formatted price ("¥5,000", "1000円") to yen.
// Returns 0 when the string holds no digits or does not fit an int.
func PriceValue(price string) int {
	value, _ := ParsePrice(price)
	return value
}

// ParsePrice is PriceValue with an ok flag, false when no usable value is present
func ParsePrice(price string) (int, bool) {
	digits := nonDigit.ReplaceAllString(price, "")
	if digits == "" {
		return 0, false
	}
	value, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return value, true
}

func parsesAsPrice(run string) bool {
	_, ok := ParsePrice(run)
	return ok
}

// ExtractCondition returns the normalized condition label of the first matching phrase
func ExtractCondition(text string) string {
	text = normalizeText(text)
	for _, rule := range conditionRules {
		if rule.pattern.MatchString(text) {
			return rule.label
		}
	}
	return ""
}

// CheckAvailability reports false when any sold-out marker appears in the text
func CheckAvailability(text string) bool {
	text = normalizeText(text)
	for _, marker := range soldOutMarkers {
		if strings.Contains(text, marker) {
			return false
		}
	}
	return !soldOutEnglish.MatchString(text)
}
