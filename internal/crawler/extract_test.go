package crawler

import (
	"fmt"
	"strings"
	"testing"
)

func TestExtractArticle_ContentContainer(t *testing.T) {
	html := `<html>
<head><title>Site | Fall Trends</title><style>.x{color:red}</style></head>
<body>
<nav><p>Home News Contact</p></nav>
<header><p>Masthead</p></header>
<h1>  Fall Layering Guide  </h1>
<script>var x = 1;</script>
<article>
  <h2>Layering Basics</h2>
  <p>Start with fitted basics in neutral tones.</p>
  <p>   </p>
  <p>Add a structured blazer and finish with boots.</p>
</article>
<aside><p>Advert text</p></aside>
<footer><p>Copyright</p></footer>
</body>
</html>`

	article, err := extractArticle(html, "https://news-site.example/fashion/fall-layering")
	if err != nil {
		t.Fatalf("extractArticle failed: %v", err)
	}

	if article.Title != "Fall Layering Guide" {
		t.Errorf("expected title from h1, got %q", article.Title)
	}
	want := "Start with fitted basics in neutral tones. Add a structured blazer and finish with boots."
	if article.Content != want {
		t.Errorf("content mismatch:\ngot:  %q\nwant: %q", article.Content, want)
	}
	if article.WordCount != 15 {
		t.Errorf("expected word count 15, got %d", article.WordCount)
	}
	if article.URL != "https://news-site.example/fashion/fall-layering" {
		t.Errorf("unexpected URL %q", article.URL)
	}
	if !strings.Contains(article.Markdown, "## Layering Basics") {
		t.Errorf("expected markdown heading, got %q", article.Markdown)
	}
	if !strings.Contains(article.Markdown, "Start with fitted basics") {
		t.Errorf("expected markdown body, got %q", article.Markdown)
	}
	for _, junk := range []string{"Home News Contact", "Masthead", "Advert", "Copyright", "var x"} {
		if strings.Contains(article.Content, junk) {
			t.Errorf("content should not contain %q", junk)
		}
	}
}

func TestExtractArticle_FallbackToAllParagraphs(t *testing.T) {
	html := `<html><head><title>Loose Page</title></head><body>
<div><p>First paragraph here.</p></div>
<p>Second paragraph too.</p>
</body></html>`

	article, err := extractArticle(html, "https://news-site.example/style/loose")
	if err != nil {
		t.Fatalf("extractArticle failed: %v", err)
	}
	if article.Title != "Loose Page" {
		t.Errorf("expected title from title tag, got %q", article.Title)
	}
	if article.Content != "First paragraph here. Second paragraph too." {
		t.Errorf("unexpected content %q", article.Content)
	}
}

func TestExtractArticle_ContainerWithoutParagraphsIsSkipped(t *testing.T) {
	html := `<html><body>
<main><div>text not wrapped in a paragraph</div></main>
<p>Body paragraph wins.</p>
</body></html>`

	article, err := extractArticle(html, "https://news-site.example/style/bare")
	if err != nil {
		t.Fatalf("extractArticle failed: %v", err)
	}
	if article.Content != "Body paragraph wins." {
		t.Errorf("unexpected content %q", article.Content)
	}
}

func TestCleanContent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses whitespace", "multiple   spaces\tand\nnewlines", "multiple spaces and newlines"},
		{"keeps punctuation", "keep .,!?-:;() punctuation!", "keep .,!?-:;() punctuation!"},
		{"strips symbols", "strip $ymbols & emoji \U0001F4AB now", "strip ymbols  emoji  now"},
		{"trims edges", "  leading and trailing  ", "leading and trailing"},
		{"keeps accented letters", "café élégance", "café élégance"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanContent(tt.in); got != tt.want {
				t.Errorf("cleanContent(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFindArticleLinks_FirstSelectorWins(t *testing.T) {
	html := `<html><body>
<a href="/fashion/spring-looks">Spring looks</a>
<h2><a href="/posts/other-style-post">Another style post</a></h2>
</body></html>`

	links, err := findArticleLinks(html, Source{Name: "t", BaseURL: "https://news-site.example"})
	if err != nil {
		t.Fatalf("findArticleLinks failed: %v", err)
	}
	if len(links) != 1 {
		t.Fatalf("expected 1 link from the first matching selector, got %v", links)
	}
	if links[0] != "https://news-site.example/fashion/spring-looks" {
		t.Errorf("unexpected link %q", links[0])
	}
}

func TestFindArticleLinks_FiltersNonFashionLinks(t *testing.T) {
	html := `<html><body><article>
<a href="/read/1">Plain news item</a>
<a href="/read/2">Office outfit ideas</a>
</article></body></html>`

	links, err := findArticleLinks(html, Source{Name: "t", BaseURL: "https://news-site.example"})
	if err != nil {
		t.Fatalf("findArticleLinks failed: %v", err)
	}
	if len(links) != 1 || links[0] != "https://news-site.example/read/2" {
		t.Errorf("expected only the outfit link, got %v", links)
	}
}

func TestFindArticleLinks_DedupesAndCaps(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	b.WriteString(`<a href="/fashion/a0">First</a>`)
	for i := 0; i < 12; i++ {
		fmt.Fprintf(&b, `<a href="/fashion/a%d">Look %d</a>`, i, i)
	}
	b.WriteString("</body></html>")

	links, err := findArticleLinks(b.String(), Source{Name: "t", BaseURL: "https://news-site.example"})
	if err != nil {
		t.Fatalf("findArticleLinks failed: %v", err)
	}
	if len(links) != maxLinksPerSection {
		t.Fatalf("expected %d links, got %d", maxLinksPerSection, len(links))
	}
	if links[0] != "https://news-site.example/fashion/a0" {
		t.Errorf("expected first-seen order, got %q first", links[0])
	}
	seen := make(map[string]bool)
	for _, link := range links {
		if seen[link] {
			t.Errorf("duplicate link %q", link)
		}
		seen[link] = true
	}
}

func TestFindArticleLinks_SourceSelectorsExtendDefaults(t *testing.T) {
	html := `<html><body>
<div class="knowledge-article"><a href="/kb/chic-basics">Chic basics</a></div>
</body></html>`

	src := Source{
		Name:          "style_knowledge_base",
		BaseURL:       "https://news-site.example",
		LinkSelectors: []string{".knowledge-article a"},
	}
	links, err := findArticleLinks(html, src)
	if err != nil {
		t.Fatalf("findArticleLinks failed: %v", err)
	}
	if len(links) != 1 || links[0] != "https://news-site.example/kb/chic-basics" {
		t.Errorf("expected the source selector to match, got %v", links)
	}
}

func TestIsFashionRelated(t *testing.T) {
	tests := []struct {
		url   string
		title string
		want  bool
	}{
		{"https://x.example/fashion/spring", "", true},
		{"https://x.example/read/1", "Office outfit ideas", true},
		{"https://x.example/read/2", "Chic on a budget", true},
		{"https://x.example/read/3", "Election results", false},
		{"https://x.example/sports/scores", "Final standings", false},
	}
	for _, tt := range tests {
		if got := isFashionRelated(tt.url, tt.title); got != tt.want {
			t.Errorf("isFashionRelated(%q, %q) = %v, want %v", tt.url, tt.title, got, tt.want)
		}
	}
}

func TestRenderMarkdown(t *testing.T) {
	got := renderMarkdown("<h2>Capsule Basics</h2><p>Start with <b>five tops</b>.</p>")
	if !strings.Contains(got, "## Capsule Basics") {
		t.Errorf("expected heading in markdown, got %q", got)
	}
	if !strings.Contains(got, "**five tops**") {
		t.Errorf("expected bold text in markdown, got %q", got)
	}
	if strings.Contains(got, "\n\n") {
		t.Errorf("expected blank lines to be dropped, got %q", got)
	}

	if renderMarkdown("   ") != "" {
		t.Error("expected empty markdown for blank input")
	}
}
