// Package crawler collects fashion articles for the document store. It
// combines built-in stylist content, Wikipedia summaries, and a generic
// site crawl over a configurable source list, and archives everything it
// collects in SQLite so the store can be rebuilt without going back to
// the network.
package crawler

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"fashionrag/internal/errlog"
	"fashionrag/internal/vectorstore"
)

const (
	// DefaultMaxArticles caps a full crawl run.
	DefaultMaxArticles = 50

	defaultSource       = "fashion_blog_crawl"
	defaultMaxPerSource = 3
	maxWikipediaTopics  = 3
	maxLinksPerSection  = 10
	minPopulateRunes    = 50

	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	// maxFetchBytes caps how much of a response body is read (2MB).
	maxFetchBytes = int64(2 * 1024 * 1024)
)

// Article is one unit of collected content. Markdown is a best-effort
// rendering of the source HTML and may be empty for plain-text content.
type Article struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	Markdown    string `json:"markdown,omitempty"`
	URL         string `json:"url"`
	Source      string `json:"source,omitempty"`
	ExtractedAt string `json:"extracted_at"`
	WordCount   int    `json:"word_count"`
}

// DocumentAdder is the slice of the document store the crawler feeds.
type DocumentAdder interface {
	AddDocuments(documents []string, metadatas []map[string]string, ids []string) (vectorstore.AddResult, error)
}

// Crawler fetches articles from the configured sources. The exported fields
// can be adjusted before the first crawl; tests zero the delays and point
// Wikipedia at a local server.
type Crawler struct {
	client  *http.Client
	sources []Source
	archive *Archive

	Wikipedia    *WikipediaClient
	MaxPerSource int
	SourceDelay  time.Duration
	ArticleDelay time.Duration
}

// New creates a crawler over the given sources. archive may be nil to skip
// persistence.
func New(sources []Source, archive *Archive) *Crawler {
	return &Crawler{
		client:       &http.Client{Timeout: 10 * time.Second},
		sources:      sources,
		archive:      archive,
		Wikipedia:    NewWikipediaClient(),
		MaxPerSource: defaultMaxPerSource,
		SourceDelay:  2 * time.Second,
		ArticleDelay: time.Second,
	}
}

// Crawl gathers articles from every configured channel: the built-in stylist
// guides, Wikipedia fashion summaries, then each crawl source in turn. A
// source that yields nothing (the usual case for unreachable sites) is
// replaced by its fallback content, so a crawl always produces articles.
// Everything collected is archived when an archive is configured.
func (c *Crawler) Crawl(maxArticles int) []Article {
	if maxArticles <= 0 {
		maxArticles = DefaultMaxArticles
	}

	articles := StaticArticles()

	log.Printf("[Crawler] Fetching Wikipedia fashion summaries")
	wiki := c.Wikipedia.FashionSummaries(maxWikipediaTopics)
	log.Printf("[Crawler] Added %d Wikipedia articles", len(wiki))
	articles = append(articles, wiki...)

	for _, src := range c.sources {
		if len(articles) >= maxArticles {
			break
		}

		log.Printf("[Crawler] Crawling source %s", src.Name)
		found, err := c.crawlSource(src)
		if err != nil {
			log.Printf("[Crawler] Source %s failed: %v", src.Name, err)
			errlog.Logf("[Crawler] source failed name=%s: %v", src.Name, err)
		}
		if len(found) == 0 {
			found = fallbackArticles(src)
			log.Printf("[Crawler] Using fallback content for %s", src.Name)
		} else {
			log.Printf("[Crawler] Found %d articles from %s", len(found), src.Name)
		}
		articles = append(articles, found...)

		c.sleep(c.SourceDelay)
	}

	if c.archive != nil {
		saved := 0
		for _, a := range articles {
			ok, err := c.archive.Save(a)
			if err != nil {
				errlog.Logf("[Crawler] archive failed url=%s: %v", a.URL, err)
				continue
			}
			if ok {
				saved++
			}
		}
		log.Printf("[Crawler] Archived %d new articles (%d already stored)", saved, len(articles)-saved)
	}

	log.Printf("[Crawler] Collected %d fashion articles", len(articles))
	return articles
}

// crawlSource scans each section page of a source for article links and
// fetches the articles behind them, up to MaxPerSource.
func (c *Crawler) crawlSource(src Source) ([]Article, error) {
	var articles []Article
	var lastErr error

	for _, sectionURL := range src.SectionURLs {
		if len(articles) >= c.MaxPerSource {
			break
		}

		log.Printf("[Crawler] Scanning section %s", sectionURL)
		links, err := c.sectionLinks(sectionURL, src)
		if err != nil {
			log.Printf("[Crawler] Section %s failed: %v", sectionURL, err)
			errlog.Logf("[Crawler] section fetch failed url=%s: %v", sectionURL, err)
			lastErr = err
			continue
		}
		if len(links) > c.MaxPerSource {
			links = links[:c.MaxPerSource]
		}

		for _, link := range links {
			if len(articles) >= c.MaxPerSource {
				break
			}

			article, err := c.crawlArticle(link)
			if err != nil {
				log.Printf("[Crawler] Article %s failed: %v", link, err)
				errlog.Logf("[Crawler] article fetch failed url=%s: %v", link, err)
				lastErr = err
			} else if article.Content != "" {
				articles = append(articles, article)
				log.Printf("[Crawler] Extracted: %s", article.Title)
			}

			c.sleep(c.ArticleDelay)
		}
	}

	if len(articles) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return articles, nil
}

// sectionLinks fetches a section page and discovers article links on it.
func (c *Crawler) sectionLinks(sectionURL string, src Source) ([]string, error) {
	page, err := c.fetchPage(sectionURL)
	if err != nil {
		return nil, err
	}
	return findArticleLinks(page, src)
}

// crawlArticle fetches a single article page and extracts its content.
func (c *Crawler) crawlArticle(link string) (Article, error) {
	page, err := c.fetchPage(link)
	if err != nil {
		return Article{}, err
	}
	return extractArticle(page, link)
}

func (c *Crawler) fetchPage(rawURL string) (string, error) {
	body, err := fetchURL(c.client, rawURL)
	if err != nil {
		return "", fmt.Errorf("request failed for %s: %w", rawURL, err)
	}
	return string(body), nil
}

func (c *Crawler) sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

// fetchURL performs a GET with browser-like headers and a capped body read.
// The transport negotiates compression on its own, so no Accept-Encoding
// header is set here.
func fetchURL(client *http.Client, rawURL string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

// Populate ingests every article with enough content into the store. The
// store's own dedup handles articles it has already seen.
func Populate(store DocumentAdder, articles []Article) (vectorstore.AddResult, error) {
	var documents []string
	var metadatas []map[string]string

	for _, a := range articles {
		if utf8.RuneCountInString(a.Content) <= minPopulateRunes {
			continue
		}
		source := a.Source
		if source == "" {
			source = defaultSource
		}
		documents = append(documents, a.Content)
		metadatas = append(metadatas, map[string]string{
			"title":        a.Title,
			"url":          a.URL,
			"source":       source,
			"extracted_at": a.ExtractedAt,
		})
	}

	if len(documents) == 0 {
		return vectorstore.AddResult{}, nil
	}

	result, err := store.AddDocuments(documents, metadatas, nil)
	if err != nil {
		return vectorstore.AddResult{}, fmt.Errorf("failed to add articles to store: %w", err)
	}
	log.Printf("[Crawler] Added %d articles to store (%d duplicates)", result.InsertedCount, result.DuplicateCount)
	return result, nil
}

// stampArticles fills the capture timestamp and word count on each article.
func stampArticles(articles []Article) []Article {
	now := time.Now().UTC().Format(time.RFC3339)
	for i := range articles {
		articles[i].ExtractedAt = now
		articles[i].WordCount = len(strings.Fields(articles[i].Content))
	}
	return articles
}
