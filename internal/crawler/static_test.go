package crawler

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestStaticArticles(t *testing.T) {
	articles := StaticArticles()
	if len(articles) != 10 {
		t.Fatalf("expected 10 built-in guides, got %d", len(articles))
	}

	titles := make(map[string]bool)
	for _, a := range articles {
		if titles[a.Title] {
			t.Errorf("duplicate title %q", a.Title)
		}
		titles[a.Title] = true

		if utf8.RuneCountInString(a.Content) <= minPopulateRunes {
			t.Errorf("guide %q too short to be ingested", a.Title)
		}
		if a.URL == "" {
			t.Errorf("guide %q has no URL", a.Title)
		}
		if a.WordCount != len(strings.Fields(a.Content)) {
			t.Errorf("guide %q word count mismatch", a.Title)
		}
		if _, err := time.Parse(time.RFC3339, a.ExtractedAt); err != nil {
			t.Errorf("guide %q has bad timestamp %q: %v", a.Title, a.ExtractedAt, err)
		}
	}
}

func TestFallbackArticles_PerSource(t *testing.T) {
	wantCounts := map[string]int{
		"example_fashion_magazine": 3,
		"sample_style_blog":        3,
		"demo_fashion_site":        2,
		"fashion_content_api":      2,
		"style_knowledge_base":     2,
	}

	for _, src := range DefaultSources() {
		articles := fallbackArticles(src)
		if len(articles) != wantCounts[src.Name] {
			t.Errorf("source %q: expected %d fallback articles, got %d", src.Name, wantCounts[src.Name], len(articles))
		}
		for _, a := range articles {
			if utf8.RuneCountInString(a.Content) <= minPopulateRunes {
				t.Errorf("fallback %q too short to be ingested", a.Title)
			}
			if !strings.HasPrefix(a.URL, src.BaseURL) {
				t.Errorf("fallback %q URL %q not under source base", a.Title, a.URL)
			}
			if a.ExtractedAt == "" || a.WordCount == 0 {
				t.Errorf("fallback %q missing stamp fields", a.Title)
			}
		}
	}
}

func TestFallbackArticles_UnknownSourceGetsUniversal(t *testing.T) {
	articles := fallbackArticles(Source{Name: "brand_new_source", BaseURL: "https://new.example.com"})
	if len(articles) != 1 {
		t.Fatalf("expected the universal guide, got %d articles", len(articles))
	}
	a := articles[0]
	if a.Title != "Universal Style Principles for Every Wardrobe" {
		t.Errorf("unexpected title %q", a.Title)
	}
	if a.URL != "https://style-education.com/universal-principles" {
		t.Errorf("unexpected URL %q", a.URL)
	}
}
