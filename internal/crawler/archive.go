package crawler

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"fashionrag/internal/vectorstore"
)

// Archive persists collected articles in SQLite. It is the durable record a
// crawl leaves behind: the store can be rebuilt from it at any time without
// touching the network.
type Archive struct {
	db *sql.DB
}

func NewArchive(db *sql.DB) *Archive {
	return &Archive{db: db}
}

// Save stores an article keyed by its content fingerprint, so saving the
// same content twice is a no-op. Returns true when the article was new.
func (ar *Archive) Save(a Article) (bool, error) {
	if strings.TrimSpace(a.Content) == "" {
		return false, errors.New("article has no content")
	}

	source := a.Source
	if source == "" {
		source = defaultSource
	}

	id := vectorstore.Fingerprint(a.Content)
	res, err := ar.db.Exec(
		`INSERT OR IGNORE INTO articles (id, title, url, source, content, markdown, extracted_at, word_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, a.Title, a.URL, source, a.Content, a.Markdown, a.ExtractedAt, a.WordCount, time.Now().UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("failed to save article: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check insert result: %w", err)
	}
	return n > 0, nil
}

// All returns every archived article in insertion order.
func (ar *Archive) All() ([]Article, error) {
	rows, err := ar.db.Query(
		`SELECT title, url, source, content, markdown, extracted_at, word_count
		 FROM articles ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer rows.Close()

	var articles []Article
	for rows.Next() {
		var a Article
		if err := rows.Scan(&a.Title, &a.URL, &a.Source, &a.Content, &a.Markdown, &a.ExtractedAt, &a.WordCount); err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read articles: %w", err)
	}
	return articles, nil
}

// Count reports how many articles are archived.
func (ar *Archive) Count() (int, error) {
	var n int
	if err := ar.db.QueryRow(`SELECT COUNT(*) FROM articles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}
	return n, nil
}
