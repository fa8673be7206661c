package db

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

func testDBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "test.db")
}

func TestInitDB_CreatesTables(t *testing.T) {
	database, err := InitDB(testDBPath(t))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer database.Close()

	_, err = database.Exec(
		`INSERT INTO articles (id, title, url, source, content, markdown, extracted_at, word_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		"abc123", "Test Article", "https://example.com/a", "test", "some content", "# md", "2026-01-01T00:00:00", 2,
	)
	if err != nil {
		t.Fatalf("insert article: %v", err)
	}

	now := time.Now()
	_, err = database.Exec(
		`INSERT INTO rate_limits (client_key, query_count, first_query, last_query, last_reset)
		 VALUES (?, ?, ?, ?, ?)`,
		"client1", 1, now, now, now,
	)
	if err != nil {
		t.Fatalf("insert rate limit: %v", err)
	}

	var count int
	if err := database.QueryRow("SELECT COUNT(*) FROM articles").Scan(&count); err != nil {
		t.Fatalf("count articles: %v", err)
	}
	if count != 1 {
		t.Errorf("article count = %d, want 1", count)
	}
}

func TestInitDB_Idempotent(t *testing.T) {
	path := testDBPath(t)

	db1, err := InitDB(path)
	if err != nil {
		t.Fatalf("first InitDB: %v", err)
	}
	if _, err := db1.Exec(
		`INSERT INTO articles (id, title, source, content, extracted_at) VALUES (?, ?, ?, ?, ?)`,
		"keep", "Kept", "test", "body", "2026-01-01T00:00:00",
	); err != nil {
		t.Fatalf("insert: %v", err)
	}
	db1.Close()

	db2, err := InitDB(path)
	if err != nil {
		t.Fatalf("second InitDB: %v", err)
	}
	defer db2.Close()

	var title string
	if err := db2.QueryRow("SELECT title FROM articles WHERE id = ?", "keep").Scan(&title); err != nil {
		t.Fatalf("select after reinit: %v", err)
	}
	if title != "Kept" {
		t.Errorf("title = %q, want Kept", title)
	}
}

func TestMigrateTables_AddsMissingColumns(t *testing.T) {
	path := testDBPath(t)

	// Simulate a database created by an older schema without the markdown
	// and word_count columns.
	old, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	_, err = old.Exec(`CREATE TABLE articles (
		id           TEXT PRIMARY KEY,
		title        TEXT NOT NULL,
		url          TEXT DEFAULT '',
		source       TEXT NOT NULL,
		content      TEXT NOT NULL,
		extracted_at TEXT NOT NULL,
		created_at   DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		t.Fatalf("create old schema: %v", err)
	}
	if _, err := old.Exec(
		`INSERT INTO articles (id, title, source, content, extracted_at) VALUES (?, ?, ?, ?, ?)`,
		"old1", "Old Article", "test", "old content", "2025-01-01T00:00:00",
	); err != nil {
		t.Fatalf("insert old row: %v", err)
	}
	old.Close()

	database, err := InitDB(path)
	if err != nil {
		t.Fatalf("InitDB on old schema: %v", err)
	}
	defer database.Close()

	if !columnExists(database, "articles", "markdown") {
		t.Error("markdown column not added by migration")
	}
	if !columnExists(database, "articles", "word_count") {
		t.Error("word_count column not added by migration")
	}

	// Existing rows survive and the new columns are readable.
	var markdown string
	if err := database.QueryRow("SELECT markdown FROM articles WHERE id = ?", "old1").Scan(&markdown); err != nil {
		t.Fatalf("select migrated row: %v", err)
	}
	if markdown != "" {
		t.Errorf("markdown = %q, want empty default", markdown)
	}
}

func TestColumnExists(t *testing.T) {
	database, err := InitDB(testDBPath(t))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer database.Close()

	if !columnExists(database, "articles", "title") {
		t.Error("expected articles.title to exist")
	}
	if columnExists(database, "articles", "no_such_column") {
		t.Error("unexpected column reported as existing")
	}
	if columnExists(database, "no_such_table", "title") {
		t.Error("missing table reported as having column")
	}
}
