package usecase

import (
	"testing"

	"github.com/oshilens/backend/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestNormalizeHit(t *testing.T) {
	t.Run("rejects search pages", func(t *testing.T) {
		_, ok := NormalizeHit(domain.RawSearchHit{
			Title:   "初音ミク の検索結果",
			URL:     "https://jp.mercari.com/search?keyword=初音ミク",
			Snippet: "¥1,000 ~",
		})
		if ok {
			t.Error("expected search page to be rejected")
		}
	})

	t.Run("builds listing from title and snippet", func(t *testing.T) {
		listing, ok := NormalizeHit(domain.RawSearchHit{
			Title:   "初音ミク フィギュア 未開封",
			URL:     "https://jp.mercari.com/item/m98765",
			Snippet: "¥3,200 送料込み",
		})
		if !ok {
			t.Fatal("expected hit to be accepted")
		}
		if listing.Platform != domain.PlatformMercari {
			t.Errorf("Platform = %q, want %q", listing.Platform, domain.PlatformMercari)
		}
		if listing.Title != "初音ミク フィギュア 未開封" {
			t.Errorf("Title = %q, want original title", listing.Title)
		}
		if listing.Price == nil || *listing.Price != "¥3,200" {
			t.Errorf("Price = %v, want ¥3,200", listing.Price)
		}
		if listing.Condition == nil || *listing.Condition != "Unopened" {
			t.Errorf("Condition = %v, want Unopened", listing.Condition)
		}
		if listing.Link != "https://jp.mercari.com/item/m98765" {
			t.Errorf("Link = %q, want input URL", listing.Link)
		}
		if !listing.IsAvailable {
			t.Error("IsAvailable = false, want true")
		}
	})

	t.Run("reads page content when present", func(t *testing.T) {
		listing, ok := NormalizeHit(domain.RawSearchHit{
			Title:   "ワンピース ルフィ",
			URL:     "https://www.suruga-ya.jp/product/detail/123",
			Snippet: "駿河屋",
			Content: "中古 1,500円 品切れ",
		})
		if !ok {
			t.Fatal("expected hit to be accepted")
		}
		if listing.Price == nil || *listing.Price != "1,500円" {
			t.Errorf("Price = %v, want 1,500円", listing.Price)
		}
		if listing.Condition == nil || *listing.Condition != "Used" {
			t.Errorf("Condition = %v, want Used", listing.Condition)
		}
		if listing.IsAvailable {
			t.Error("IsAvailable = true, want false")
		}
	})

	t.Run("leaves price and condition nil when undetected", func(t *testing.T) {
		listing, ok := NormalizeHit(domain.RawSearchHit{
			Title: "アクリルスタンド",
			URL:   "https://jp.mercari.com/item/m1",
		})
		if !ok {
			t.Fatal("expected hit to be accepted")
		}
		if listing.Price != nil {
			t.Errorf("Price = %q, want nil", *listing.Price)
		}
		if listing.Condition != nil {
			t.Errorf("Condition = %q, want nil", *listing.Condition)
		}
	})
}

func TestNormalizeHits_EndToEnd(t *testing.T) {
	hits := []domain.RawSearchHit{
		{Title: "Figure A", URL: "https://jp.mercari.com/item/m123", Snippet: "¥5,000 未使用"},
		{Title: "Search", URL: "https://jp.mercari.com/search?keyword=x", Snippet: "¥100"},
		{Title: "Figure B", URL: "https://www.suruga-ya.jp/product/detail/456", Snippet: "1000円 売り切れ"},
	}

	ranked := RankListings(NormalizeHits(hits))
	if len(ranked) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(ranked))
	}

	first, second := ranked[0], ranked[1]
	if first.Title != "Figure A" || !first.IsAvailable {
		t.Errorf("first = %+v, want available Figure A", first)
	}
	if first.Price == nil || *first.Price != "¥5,000" {
		t.Errorf("first price = %v, want ¥5,000", first.Price)
	}
	if first.Condition == nil || *first.Condition != "New" {
		t.Errorf("first condition = %v, want New", first.Condition)
	}
	if second.Title != "Figure B" || second.IsAvailable {
		t.Errorf("second = %+v, want unavailable Figure B", second)
	}
	if second.Price == nil || *second.Price != "1000円" {
		t.Errorf("second price = %v, want 1000円", second.Price)
	}

	stats := ComputeStats(ranked)
	if stats.TotalResults != 2 || stats.AvailableCount != 1 || stats.UnavailableCount != 1 {
		t.Errorf("stats counts = %+v, want 2/1/1", stats)
	}
	want := domain.PriceRange{Min: 1000, Max: 5000, Average: 3000}
	if stats.PriceRange != want {
		t.Errorf("PriceRange = %+v, want %+v", stats.PriceRange, want)
	}
}

func TestNormalizeHits_Empty(t *testing.T) {
	listings := NormalizeHits(nil)
	if listings == nil || len(listings) != 0 {
		t.Errorf("NormalizeHits(nil) = %v, want empty non-nil slice", listings)
	}
}
