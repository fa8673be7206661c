package crawler

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

// contentSelectors are tried in order; the first container holding
// paragraphs wins.
var contentSelectors = []string{
	"article",
	".article-content",
	".post-content",
	".entry-content",
	".content",
	"main",
	".article-body",
}

// articleLinkSelectors match article links on typical fashion site section
// pages. Source-specific selectors extend this set.
var articleLinkSelectors = []string{
	`a[href*="/fashion/"]`,
	`a[href*="/style/"]`,
	`a[href*="/trends/"]`,
	"article a",
	".article-link",
	".post-link",
	"h2 a",
	"h3 a",
}

var fashionKeywords = []string{
	"fashion", "style", "outfit", "trend", "clothing", "dress",
	"shoes", "accessory", "beauty", "wardrobe", "designer",
	"runway", "collection", "look", "wear", "chic",
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	// Strip everything outside word characters, whitespace, and common
	// punctuation. Crawled pages carry a lot of stray symbols.
	contentCharRe = regexp.MustCompile(`[^\p{L}\p{N}_\s.,!?\-:;()]`)
)

// extractArticle pulls the readable content out of an article page: the
// title from the first h1 (or the page title), the paragraph text from the
// first matching content container, and a markdown rendering of that
// container's HTML.
func extractArticle(html, pageURL string) (Article, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Article{}, fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, nav, header, footer, aside, advertisement").Remove()

	var title string
	if h1 := doc.Find("h1"); h1.Length() > 0 {
		title = strings.TrimSpace(h1.First().Text())
	} else {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	var content string
	var container *goquery.Selection
	for _, selector := range contentSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		paragraphs := sel.Find("p")
		if paragraphs.Length() == 0 {
			continue
		}
		content = joinParagraphs(paragraphs)
		container = sel
		break
	}
	if content == "" {
		content = joinParagraphs(doc.Find("p"))
	}
	content = cleanContent(content)

	var markdownHTML string
	if container != nil {
		markdownHTML, _ = goquery.OuterHtml(container)
	} else {
		markdownHTML, _ = doc.Find("body").Html()
	}

	return Article{
		Title:       title,
		Content:     content,
		Markdown:    renderMarkdown(markdownHTML),
		URL:         pageURL,
		ExtractedAt: time.Now().UTC().Format(time.RFC3339),
		WordCount:   len(strings.Fields(content)),
	}, nil
}

func joinParagraphs(paragraphs *goquery.Selection) string {
	var parts []string
	paragraphs.Each(func(_ int, p *goquery.Selection) {
		if text := strings.TrimSpace(p.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, " ")
}

func cleanContent(s string) string {
	s = whitespaceRe.ReplaceAllString(s, " ")
	s = contentCharRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// findArticleLinks discovers article links on a section page. Selectors are
// tried in order and the first one that yields fashion-related links wins;
// links are deduplicated in first-seen order and capped.
func findArticleLinks(html string, src Source) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	base, err := url.Parse(src.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %s: %w", src.BaseURL, err)
	}

	selectors := append(append([]string{}, articleLinkSelectors...), src.LinkSelectors...)

	var links []string
	for _, selector := range selectors {
		doc.Find(selector).Each(func(_ int, a *goquery.Selection) {
			href, ok := a.Attr("href")
			if !ok || strings.TrimSpace(href) == "" {
				return
			}
			ref, err := url.Parse(strings.TrimSpace(href))
			if err != nil {
				return
			}
			full := base.ResolveReference(ref).String()
			if isFashionRelated(full, a.Text()) {
				links = append(links, full)
			}
		})
		if len(links) > 0 {
			break
		}
	}

	seen := make(map[string]bool, len(links))
	unique := links[:0]
	for _, link := range links {
		if seen[link] {
			continue
		}
		seen[link] = true
		unique = append(unique, link)
	}
	if len(unique) > maxLinksPerSection {
		unique = unique[:maxLinksPerSection]
	}
	return unique, nil
}

func isFashionRelated(rawURL, title string) bool {
	text := strings.ToLower(rawURL + " " + title)
	for _, keyword := range fashionKeywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// renderMarkdown converts an HTML fragment to markdown, dropping blank
// lines. Rendering is best effort; failures yield an empty string.
func renderMarkdown(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(html)
	if err != nil {
		return ""
	}

	var lines []string
	for _, line := range strings.Split(markdown, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return strings.Join(lines, "\n")
}
