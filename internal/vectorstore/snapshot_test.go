package vectorstore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fashionrag/internal/embedding"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	encoder := embedding.NewLexicalEncoder()

	first := NewDocumentStore(encoder, path, 10)
	if _, err := first.AddDocuments(
		[]string{"summer trends overview", "winter layering guide"},
		[]map[string]string{{"title": "Summer"}, {"title": "Winter"}},
		[]string{"id-summer", "id-winter"},
	); err != nil {
		t.Fatalf("AddDocuments: %v", err)
	}

	second := NewDocumentStore(encoder, path, 10)
	if second.Count() != 2 {
		t.Fatalf("restored Count = %d, want 2", second.Count())
	}
	for i, want := range []string{"summer trends overview", "winter layering guide"} {
		if second.index.documents[i] != want {
			t.Errorf("document %d = %q, want %q", i, second.index.documents[i], want)
		}
	}
	if second.index.ids[0] != "id-summer" || second.index.ids[1] != "id-winter" {
		t.Errorf("ids = %v", second.index.ids)
	}
	if second.index.metadatas[0]["title"] != "Summer" {
		t.Errorf("metadata lost on round trip: %v", second.index.metadatas[0])
	}

	// Restored entries answer queries like the originals did.
	results, err := second.Query("winter", 1)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(results) != 1 || results[0].Document != "winter layering guide" {
		t.Errorf("query after restore = %v", results)
	}
}

func TestSnapshot_MissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.json")
	store := NewDocumentStore(embedding.NewLexicalEncoder(), path, 10)
	if store.Count() != 0 {
		t.Errorf("Count = %d, want 0", store.Count())
	}
}

func TestSnapshot_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := os.WriteFile(path, []byte("{not valid json"), 0644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	store := NewDocumentStore(embedding.NewLexicalEncoder(), path, 10)
	if store.Count() != 0 {
		t.Errorf("Count = %d, want 0 after corrupt snapshot", store.Count())
	}

	// The store remains usable.
	if _, err := store.AddDocuments([]string{"fresh content"}, nil, nil); err != nil {
		t.Fatalf("AddDocuments after corrupt snapshot: %v", err)
	}
}

func TestLoadSnapshot_CorruptConditions(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		snap, err := loadSnapshot(filepath.Join(dir, "missing.json"))
		if err != nil {
			t.Fatalf("missing file should not error: %v", err)
		}
		if len(snap.Documents) != 0 {
			t.Errorf("expected empty snapshot, got %d documents", len(snap.Documents))
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		path := filepath.Join(dir, "garbage.json")
		os.WriteFile(path, []byte("garbage"), 0644)
		_, err := loadSnapshot(path)
		if !errors.Is(err, ErrCorruptSnapshot) {
			t.Errorf("err = %v, want ErrCorruptSnapshot", err)
		}
	})

	t.Run("misaligned arrays", func(t *testing.T) {
		path := filepath.Join(dir, "misaligned.json")
		os.WriteFile(path, []byte(`{"documents":["a","b"],"metadatas":[{}],"ids":["x","y"],"timestamp":"t","count":2}`), 0644)
		_, err := loadSnapshot(path)
		if !errors.Is(err, ErrCorruptSnapshot) {
			t.Errorf("err = %v, want ErrCorruptSnapshot", err)
		}
	})
}

func TestSnapshot_TailKeptWhenOverCapacity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")

	snap := snapshotFile{
		Documents: []string{"first", "second", "third", "fourth", "fifth"},
		Metadatas: []map[string]string{{}, {}, {}, {}, {}},
		IDs:       []string{"1", "2", "3", "4", "5"},
		Timestamp: "2026-01-01T00:00:00.000000",
		Count:     5,
	}
	if err := writeSnapshot(path, snap); err != nil {
		t.Fatalf("writeSnapshot: %v", err)
	}

	store := NewDocumentStore(embedding.NewLexicalEncoder(), path, 3)
	if store.Count() != 3 {
		t.Fatalf("Count = %d, want 3", store.Count())
	}
	want := []string{"third", "fourth", "fifth"}
	for i, doc := range store.index.documents {
		if doc != want[i] {
			t.Errorf("document %d = %q, want %q", i, doc, want[i])
		}
	}
}

func TestSnapshot_RestoreDeduplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")

	// A hand-edited snapshot may contain repeated content; replaying it
	// through ingestion collapses the repeats.
	snap := snapshotFile{
		Documents: []string{"same entry", "same entry", "other entry"},
		Metadatas: []map[string]string{{}, {}, {}},
		IDs:       []string{"a", "b", "c"},
		Timestamp: "2026-01-01T00:00:00.000000",
		Count:     3,
	}
	if err := writeSnapshot(path, snap); err != nil {
		t.Fatalf("writeSnapshot: %v", err)
	}

	store := NewDocumentStore(embedding.NewLexicalEncoder(), path, 10)
	if store.Count() != 2 {
		t.Errorf("Count = %d, want 2 after dedup", store.Count())
	}
}

func TestSnapshot_FileShapeExcludesEmbeddings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	store := NewDocumentStore(embedding.NewLexicalEncoder(), path, 10)
	if _, err := store.AddDocuments([]string{"persisted fashion doc"}, nil, nil); err != nil {
		t.Fatalf("AddDocuments: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("parse snapshot: %v", err)
	}
	for _, key := range []string{"documents", "metadatas", "ids", "timestamp", "count"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("snapshot missing key %q", key)
		}
	}
	if _, ok := raw["embeddings"]; ok {
		t.Error("snapshot contains embeddings")
	}

	var parsed snapshotFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("parse snapshot struct: %v", err)
	}
	if parsed.Count != 1 {
		t.Errorf("count = %d, want 1", parsed.Count)
	}
	if parsed.Timestamp == "" {
		t.Error("timestamp is empty")
	}
}

func TestSnapshot_SaveFailureKeepsMemoryState(t *testing.T) {
	// Snapshot path inside a directory that does not exist: every save
	// fails, but mutations still land in memory.
	path := filepath.Join(t.TempDir(), "no-such-dir", "snapshot.json")
	store := NewDocumentStore(embedding.NewLexicalEncoder(), path, 10)

	result, err := store.AddDocuments([]string{"kept despite save failure"}, nil, nil)
	if err != nil {
		t.Fatalf("AddDocuments: %v", err)
	}
	if result.InsertedCount != 1 {
		t.Errorf("InsertedCount = %d, want 1", result.InsertedCount)
	}
	if store.Count() != 1 {
		t.Errorf("Count = %d, want 1", store.Count())
	}

	stats := store.Stats()
	if stats.DocumentCount != 1 || stats.BackupFileSizeKB != 0 {
		t.Errorf("stats = %+v, want count 1 size 0", stats)
	}
}
