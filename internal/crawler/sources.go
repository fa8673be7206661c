package crawler

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Source describes one crawl target: a site whose section pages are scanned
// for article links. LinkSelectors extend the built-in discovery selectors
// for sites with their own markup conventions.
type Source struct {
	Name          string   `yaml:"name"`
	BaseURL       string   `yaml:"base_url"`
	SectionURLs   []string `yaml:"section_urls"`
	LinkSelectors []string `yaml:"link_selectors,omitempty"`
}

// DefaultSources returns the built-in source list. The domains are
// placeholders for demonstration; real deployments override them through
// the sources file.
func DefaultSources() []Source {
	return []Source{
		{
			Name:    "example_fashion_magazine",
			BaseURL: "https://example-fashion-magazine.com",
			SectionURLs: []string{
				"https://example-fashion-magazine.com/trends",
				"https://example-fashion-magazine.com/styling",
			},
			LinkSelectors: []string{".article-headline a", ".trend-article-link"},
		},
		{
			Name:    "sample_style_blog",
			BaseURL: "https://sample-style-blog.com",
			SectionURLs: []string{
				"https://sample-style-blog.com/seasonal-trends",
				"https://sample-style-blog.com/outfit-ideas",
			},
			LinkSelectors: []string{".blog-post-title a", ".style-article a"},
		},
		{
			Name:    "demo_fashion_site",
			BaseURL: "https://demo-fashion-site.com",
			SectionURLs: []string{
				"https://demo-fashion-site.com/fashion-tips",
			},
			LinkSelectors: []string{".fashion-content a", ".style-guide-link a"},
		},
		{
			Name:    "fashion_content_api",
			BaseURL: "https://fashion-content-api.com",
			SectionURLs: []string{
				"https://fashion-content-api.com/api/articles",
			},
			LinkSelectors: []string{".api-article-link", ".content-item a"},
		},
		{
			Name:    "style_knowledge_base",
			BaseURL: "https://style-knowledge-base.com",
			SectionURLs: []string{
				"https://style-knowledge-base.com/public-content",
			},
			LinkSelectors: []string{".knowledge-article a", ".style-tip-link a"},
		},
	}
}

// LoadSources reads the source list from a YAML file. An empty path or a
// missing file falls back to the built-in defaults.
func LoadSources(path string) ([]Source, error) {
	if path == "" {
		return DefaultSources(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSources(), nil
		}
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}

	var file struct {
		Sources []Source `yaml:"sources"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse sources file: %w", err)
	}
	if len(file.Sources) == 0 {
		return DefaultSources(), nil
	}

	for i, src := range file.Sources {
		if src.Name == "" || src.BaseURL == "" {
			return nil, fmt.Errorf("source %d is missing name or base_url", i)
		}
	}
	return file.Sources, nil
}
