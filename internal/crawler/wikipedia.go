package crawler

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"fashionrag/internal/errlog"
)

const (
	defaultWikipediaURL = "https://en.wikipedia.org"

	// Summaries shorter than this are stubs not worth indexing.
	minWikipediaExtractRunes = 100
)

// wikipediaTopics are the fashion pages fetched through the REST summary
// endpoint.
var wikipediaTopics = []string{
	"Fashion",
	"Fashion_design",
	"Sustainable_fashion",
	"Color_theory",
	"Business_casual",
	"Casual_wear",
	"Fashion_accessory",
	"Wardrobe_(clothing)",
}

// WikipediaClient fetches page summaries from the Wikipedia REST API.
// BaseURL and Delay can be overridden before use.
type WikipediaClient struct {
	BaseURL string
	Delay   time.Duration
	client  *http.Client
}

func NewWikipediaClient() *WikipediaClient {
	return &WikipediaClient{
		BaseURL: defaultWikipediaURL,
		Delay:   time.Second,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type wikiSummary struct {
	Title       string `json:"title"`
	Extract     string `json:"extract"`
	ExtractHTML string `json:"extract_html"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// FashionSummaries fetches up to maxArticles fashion topic summaries,
// skipping stubs. Collection is best effort; per-topic failures are logged
// and the rest of the topics are still tried.
func (w *WikipediaClient) FashionSummaries(maxArticles int) []Article {
	topics := wikipediaTopics
	if maxArticles > 0 && len(topics) > maxArticles {
		topics = topics[:maxArticles]
	}

	var articles []Article
	for _, topic := range topics {
		article, err := w.summary(topic)
		if err != nil {
			log.Printf("[Crawler] Wikipedia topic %s failed: %v", topic, err)
			errlog.Logf("[Crawler] wikipedia summary failed topic=%s: %v", topic, err)
		} else if utf8.RuneCountInString(article.Content) > minWikipediaExtractRunes {
			articles = append(articles, article)
			log.Printf("[Crawler] Wikipedia: %s", article.Title)
		}

		if w.Delay > 0 {
			time.Sleep(w.Delay)
		}
	}
	return articles
}

func (w *WikipediaClient) summary(topic string) (Article, error) {
	body, err := fetchURL(w.client, w.BaseURL+"/api/rest_v1/page/summary/"+topic)
	if err != nil {
		return Article{}, fmt.Errorf("failed to fetch summary for %s: %w", topic, err)
	}

	var data wikiSummary
	if err := json.Unmarshal(body, &data); err != nil {
		return Article{}, fmt.Errorf("failed to decode summary for %s: %w", topic, err)
	}

	title := data.Title
	if title == "" {
		title = strings.ReplaceAll(topic, "_", " ")
	}

	return Article{
		Title:       title,
		Content:     data.Extract,
		Markdown:    renderMarkdown(data.ExtractHTML),
		URL:         data.ContentURLs.Desktop.Page,
		Source:      "wikipedia_api",
		ExtractedAt: time.Now().UTC().Format(time.RFC3339),
		WordCount:   len(strings.Fields(data.Extract)),
	}, nil
}
