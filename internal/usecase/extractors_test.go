package usecase

import (
	"testing"

	"github.com/oshilens/backend/internal/domain"
)

func TestMatchProductURL(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		wantPlatform domain.Platform
		wantOK       bool
	}{
		{"mercari item page", "https://jp.mercari.com/item/m12345678901", domain.PlatformMercari, true},
		{"mercari search page", "https://jp.mercari.com/search?keyword=miku", "", false},
		{"mercari shop product", "https://jp.mercari.com/shops/product/abc", "", false},
		{"suruga-ya product page", "https://www.suruga-ya.jp/product/detail/602123456", domain.PlatformSurugaya, true},
		{"suruga-ya search page", "https://www.suruga-ya.jp/search?search_word=miku", "", false},
		{"other marketplace", "https://www.amazon.co.jp/dp/B000000000", "", false},
		{"empty url", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			platform, ok := MatchProductURL(tt.url)
			if ok != tt.wantOK {
				t.Errorf("MatchProductURL(%q) ok = %v, want %v", tt.url, ok, tt.wantOK)
			}
			if platform != tt.wantPlatform {
				t.Errorf("MatchProductURL(%q) platform = %q, want %q", tt.url, platform, tt.wantPlatform)
			}
		})
	}
}

func TestExtractPrice(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"yen symbol with comma", "Figure A ¥5,000 未使用", "¥5,000"},
		{"yen symbol with space", "価格 ¥ 1200", "¥1200"},
		{"yen word", "Figure B 1000円 売り切れ", "1000円"},
		{"yen word with space", "2,800 円 送料込み", "2,800円"},
		{"symbol wins over word", "定価1000円のところ ¥2,000", "¥2,000"},
		{"full-width yen and digits", "￥３，５００", "¥3,500"},
		{"full-width digits with yen word", "１２００円", "1200円"},
		{"trailing comma trimmed", "¥1,000, 送料無料", "¥1,000"},
		{"standalone number in range", "price 2500 yen", "¥2500"},
		{"standalone number at end", "buy now 4800", "¥4800"},
		{"number too small", "set of 50 pcs", ""},
		{"number too large", "views 20000000 total", ""},
		{"number inside identifier", "ref ID/12345 only", ""},
		{"number followed by letters", "12345abc", ""},
		{"year with kanji suffix", "発売 2024年", ""},
		{"yen symbol run too large to parse", "¥99,999,999,999,999,999,999", ""},
		{"yen word run too large to parse", "99999999999999999999999円", ""},
		{"unparsable yen symbol falls back to yen word", "¥99999999999999999999999 or 3000円", "3000円"},
		{"no digits", "no price here", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractPrice(tt.input); got != tt.expected {
				t.Errorf("ExtractPrice(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestExtractPrice_ResultAlwaysHasValue(t *testing.T) {
	inputs := []string{"¥5,000", "1000円", "only 999 left", "¥,", "円", "３００円"}
	for _, input := range inputs {
		price := ExtractPrice(input)
		if price != "" && PriceValue(price) <= 0 {
			t.Errorf("ExtractPrice(%q) = %q has no numeric value", input, price)
		}
	}
}

func TestPriceValue(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"¥5,000", 5000},
		{"1000円", 1000},
		{"¥1,234,567", 1234567},
		{"", 0},
		{"abc", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := PriceValue(tt.input); got != tt.expected {
				t.Errorf("PriceValue(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestExtractCondition(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"almost unused", "ほぼ未使用 美品", "Like New"},
		{"almost new", "ほぼ新品です", "Like New"},
		{"close to unused", "未使用に近い", "Like New"},
		{"unopened", "未開封 フィギュア", "Unopened"},
		{"unused", "¥5,000 未使用", "New"},
		{"brand new", "新品", "New"},
		{"opened", "開封済み", "Opened"},
		{"junk", "ジャンク品", "Junk"},
		{"half-width katakana junk", "ｼﾞｬﾝｸ品", "Junk"},
		{"full-width latin used", "ＵＳＥＤ品", "Used"},
		{"damaged", "箱に傷あり", "Used - With Damage"},
		{"good", "美品です", "Good"},
		{"used", "中古 フィギュア", "Used"},
		{"unused wins over used", "中古 未使用", "New"},
		{"english like new", "Like new condition", "Like New"},
		{"english used", "Used item", "Used"},
		{"english new uppercase", "Brand NEW figure", "New"},
		{"english word boundary", "renewal edition", ""},
		{"no condition", "Figure B 1000円", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractCondition(tt.input); got != tt.expected {
				t.Errorf("ExtractCondition(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCheckAvailability(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"plain listing", "¥5,000 未使用", true},
		{"in stock", "在庫あり", true},
		{"sold out japanese", "1000円 売り切れ", false},
		{"sold out short form", "売切れ", false},
		{"out of stock japanese", "品切れ中", false},
		{"no stock", "在庫なし", false},
		{"sales ended", "販売終了", false},
		{"deleted item", "このアイテムは削除されました", false},
		{"sold out english", "SOLD OUT", false},
		{"soldout joined", "soldout", false},
		{"deny list wins over in stock", "在庫あり 売り切れ", false},
		{"english deny list wins over in stock", "In stock SOLD OUT", false},
		{"out of stock english", "Out of stock", false},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckAvailability(tt.input); got != tt.expected {
				t.Errorf("CheckAvailability(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
