// Package vectorstore provides a bounded, deduplicated document store with
// in-memory cosine similarity search and JSON snapshot persistence.
//
// The store holds at most maxDocuments entries. Incoming documents are
// truncated to a fixed content cap, fingerprinted, and dropped when their
// fingerprint is already present. When an insert would exceed the bound, the
// least recently added entries are evicted first. Every successful mutation
// is snapshotted to disk; embeddings are derived state and recomputed on
// restore, never persisted.
package vectorstore

import (
	"fmt"
	"log"
	"math"
	"os"
	"sort"
	"sync"
	"time"

	"fashionrag/internal/embedding"
	"fashionrag/internal/errlog"
)

// maxQueryResults caps the number of matches a single query may return.
const maxQueryResults = 5

// createdAtLayout is fixed-width so lexicographic comparison of stored
// timestamps matches chronological order.
const createdAtLayout = "2006-01-02T15:04:05.000000"

// defaultCreatedAt ranks entries with missing timestamps as oldest.
const defaultCreatedAt = "2000-01-01T00:00:00"

// Store-managed metadata keys.
const (
	metaContentHash = "content_hash"
	metaCreatedAt   = "created_at"
)

// AddResult reports the outcome of an ingestion batch.
type AddResult struct {
	InsertedCount  int `json:"inserted_count"`
	DuplicateCount int `json:"duplicate_count"`
}

// QueryResult is a retrieved document with its metadata. Similarity scores
// are internal and stripped before results leave the store.
type QueryResult struct {
	Document string            `json:"document"`
	Metadata map[string]string `json:"metadata"`
}

// Stats describes the store state. Producing it never fails.
type Stats struct {
	DocumentCount    int     `json:"document_count"`
	MaxDocuments     int     `json:"max_documents"`
	BackupFileSizeKB float64 `json:"backup_file_size_kb"`
	MemoryUsage      string  `json:"memory_usage"`
}

// --- similarity index ---

// similarityIndex holds the parallel entry state: embeddings with
// pre-computed L2 norms, documents, metadatas, and ids, aligned by position.
// Callers synchronize through the DocumentStore lock.
type similarityIndex struct {
	embeddings [][]float64
	norms      []float64
	documents  []string
	metadatas  []map[string]string
	ids        []string
}

func newSimilarityIndex() *similarityIndex {
	return &similarityIndex{}
}

func (ix *similarityIndex) count() int {
	return len(ix.documents)
}

// insert appends a batch of aligned entries. All four slices must have the
// same length; a misaligned batch is rejected without partial insertion.
func (ix *similarityIndex) insert(embeddings [][]float64, documents []string, metadatas []map[string]string, ids []string) error {
	n := len(documents)
	if len(embeddings) != n || len(metadatas) != n || len(ids) != n {
		return fmt.Errorf("misaligned insert: %d embeddings, %d documents, %d metadatas, %d ids",
			len(embeddings), n, len(metadatas), len(ids))
	}
	for i := 0; i < n; i++ {
		ix.embeddings = append(ix.embeddings, embeddings[i])
		ix.norms = append(ix.norms, vectorNorm(embeddings[i]))
		ix.documents = append(ix.documents, documents[i])
		ix.metadatas = append(ix.metadatas, metadatas[i])
		ix.ids = append(ix.ids, ids[i])
	}
	return nil
}

// scoredResult pairs an entry with its similarity score during ranking.
type scoredResult struct {
	Document string
	Metadata map[string]string
	Score    float64
}

// query returns the top k entries by cosine similarity, score descending.
// Ties keep insertion order. k is clamped to maxQueryResults. Zero-norm
// vectors on either side score 0 and stay in the ranking.
func (ix *similarityIndex) query(vector []float64, k int) []scoredResult {
	if k > maxQueryResults {
		k = maxQueryResults
	}
	if k <= 0 || ix.count() == 0 {
		return nil
	}

	queryNorm := vectorNorm(vector)

	scored := make([]scoredResult, ix.count())
	for i := range ix.documents {
		var score float64
		if queryNorm != 0 && ix.norms[i] != 0 && len(ix.embeddings[i]) == len(vector) {
			score = dotProductUnrolled(vector, ix.embeddings[i]) / (queryNorm * ix.norms[i])
		}
		scored[i] = scoredResult{
			Document: ix.documents[i],
			Metadata: ix.metadatas[i],
			Score:    score,
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored
}

// snapshotData returns the persistable entry state. Embeddings are excluded.
func (ix *similarityIndex) snapshotData() (documents []string, metadatas []map[string]string, ids []string) {
	return ix.documents, ix.metadatas, ix.ids
}

// clear drops all entries.
func (ix *similarityIndex) clear() {
	ix.embeddings = nil
	ix.norms = nil
	ix.documents = nil
	ix.metadatas = nil
	ix.ids = nil
}

// vectorNorm computes the L2 norm of a vector.
func vectorNorm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// dotProductUnrolled computes the dot product with 4-way loop unrolling for
// better instruction-level parallelism. Lengths must match.
func dotProductUnrolled(a, b []float64) float64 {
	n := len(a)
	var sum0, sum1, sum2, sum3 float64
	i := 0
	for ; i <= n-4; i += 4 {
		sum0 += a[i] * b[i]
		sum1 += a[i+1] * b[i+1]
		sum2 += a[i+2] * b[i+2]
		sum3 += a[i+3] * b[i+3]
	}
	for ; i < n; i++ {
		sum0 += a[i] * b[i]
	}
	return sum0 + sum1 + sum2 + sum3
}

// --- document store ---

// DocumentStore is the bounded, deduplicated, persistent similarity store.
// A single RWMutex guards the index: mutations take the write lock, queries
// and stats the read lock.
type DocumentStore struct {
	mu           sync.RWMutex
	index        *similarityIndex
	encoder      embedding.EmbeddingService
	maxDocuments int
	snapshotPath string
}

// NewDocumentStore creates a store bounded to maxDocuments entries and
// restores the snapshot at snapshotPath when one exists. A corrupt snapshot
// is logged and the store starts empty.
func NewDocumentStore(encoder embedding.EmbeddingService, snapshotPath string, maxDocuments int) *DocumentStore {
	if maxDocuments < 1 {
		maxDocuments = 1
	}
	s := &DocumentStore{
		index:        newSimilarityIndex(),
		encoder:      encoder,
		maxDocuments: maxDocuments,
		snapshotPath: snapshotPath,
	}
	s.restore()
	return s
}

// restore loads the snapshot and replays it through the normal ingestion
// path without re-saving.
func (s *DocumentStore) restore() {
	snap, err := loadSnapshot(s.snapshotPath)
	if err != nil {
		log.Printf("[VectorStore] Could not load snapshot, starting fresh: %v", err)
		errlog.Logf("[VectorStore] snapshot load failed path=%s: %v", s.snapshotPath, err)
		return
	}
	if len(snap.Documents) == 0 {
		log.Printf("[VectorStore] No snapshot found, starting fresh")
		return
	}

	docs, metas, ids := snap.Documents, snap.Metadatas, snap.IDs
	if len(docs) > s.maxDocuments {
		// Keep the most recent tail; persisted order is append order.
		start := len(docs) - s.maxDocuments
		docs, metas, ids = docs[start:], metas[start:], ids[start:]
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	result, err := s.addLocked(docs, metas, ids, false)
	if err != nil {
		log.Printf("[VectorStore] Snapshot replay failed, starting fresh: %v", err)
		errlog.Logf("[VectorStore] snapshot replay failed: %v", err)
		s.index = newSimilarityIndex()
		return
	}
	log.Printf("[VectorStore] Restored %d documents from snapshot", result.InsertedCount)
}

// AddDocuments ingests a batch. Each document is truncated to the content
// cap and fingerprinted; documents whose fingerprint is already stored, or
// that repeat within the batch, are skipped and counted as duplicates.
// metadatas and ids may be nil (defaults are generated per entry), but a
// non-nil slice whose length differs from documents is a validation error.
func (s *DocumentStore) AddDocuments(documents []string, metadatas []map[string]string, ids []string) (AddResult, error) {
	if len(documents) == 0 {
		return AddResult{}, nil
	}
	if metadatas != nil && len(metadatas) != len(documents) {
		return AddResult{}, fmt.Errorf("metadatas length %d does not match documents length %d", len(metadatas), len(documents))
	}
	if ids != nil && len(ids) != len(documents) {
		return AddResult{}, fmt.Errorf("ids length %d does not match documents length %d", len(ids), len(documents))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(documents, metadatas, ids, true)
}

// addLocked runs the ingestion pipeline: dedup filter, capacity eviction,
// encode, index insert, snapshot save. Caller must hold the write lock.
func (s *DocumentStore) addLocked(documents []string, metadatas []map[string]string, ids []string, save bool) (AddResult, error) {
	// Fingerprints currently in the store, rebuilt from entry metadata.
	known := make(map[string]bool, s.index.count())
	for _, meta := range s.index.metadatas {
		if h := meta[metaContentHash]; h != "" {
			known[h] = true
		}
	}

	now := time.Now().Format(createdAtLayout)

	var (
		newDocs  []string
		newMetas []map[string]string
		newIDs   []string
		dupes    int
	)
	for i, doc := range documents {
		content := truncateContent(doc)
		hash := Fingerprint(content)

		if known[hash] {
			dupes++
			continue
		}
		known[hash] = true

		meta := make(map[string]string)
		if metadatas != nil {
			for k, v := range metadatas[i] {
				meta[k] = v
			}
		}
		meta[metaContentHash] = hash
		meta[metaCreatedAt] = now

		id := "doc_" + hash
		if ids != nil {
			id = ids[i]
		}

		newDocs = append(newDocs, content)
		newMetas = append(newMetas, meta)
		newIDs = append(newIDs, id)
	}

	if len(newDocs) == 0 {
		log.Printf("[VectorStore] All %d documents already stored, skipping", len(documents))
		return AddResult{DuplicateCount: dupes}, nil
	}

	// A single batch larger than the bound: evict everything and keep the
	// batch head; the remainder is dropped.
	if len(newDocs) > s.maxDocuments {
		dropped := len(newDocs) - s.maxDocuments
		newDocs = newDocs[:s.maxDocuments]
		newMetas = newMetas[:s.maxDocuments]
		newIDs = newIDs[:s.maxDocuments]
		log.Printf("[VectorStore] Batch exceeds capacity %d, dropping %d trailing documents", s.maxDocuments, dropped)
		errlog.Logf("[VectorStore] batch exceeds capacity %d, dropped %d documents", s.maxDocuments, dropped)
	}

	if s.index.count()+len(newDocs) > s.maxDocuments {
		s.evictLocked(s.maxDocuments - len(newDocs))
	}

	embeddings := s.encodeAll(newDocs)
	if err := s.index.insert(embeddings, newDocs, newMetas, newIDs); err != nil {
		return AddResult{DuplicateCount: dupes}, err
	}

	log.Printf("[VectorStore] Added %d new documents, skipped %d duplicates", len(newDocs), dupes)

	if save {
		s.saveLocked()
	}
	return AddResult{InsertedCount: len(newDocs), DuplicateCount: dupes}, nil
}

// evictLocked retains only the target most recent entries, ranked by the
// created_at metadata with timestamp ties ranking the later-inserted entry
// as more recent. The replacement index is built completely, in the retained
// entries' original insertion order, then swapped in. Caller must hold the
// write lock.
func (s *DocumentStore) evictLocked(target int) {
	if target < 0 {
		target = 0
	}
	count := s.index.count()
	if count <= target {
		return
	}

	type ranked struct {
		createdAt string
		idx       int
	}
	order := make([]ranked, count)
	for i, meta := range s.index.metadatas {
		createdAt := meta[metaCreatedAt]
		if createdAt == "" {
			createdAt = defaultCreatedAt
		}
		order[i] = ranked{createdAt: createdAt, idx: i}
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].createdAt != order[j].createdAt {
			return order[i].createdAt > order[j].createdAt
		}
		return order[i].idx > order[j].idx
	})

	retain := make(map[int]bool, target)
	for _, r := range order[:target] {
		retain[r.idx] = true
	}

	replacement := newSimilarityIndex()
	for i := 0; i < count; i++ {
		if !retain[i] {
			continue
		}
		doc := s.index.documents[i]
		vec := s.encodeOne(doc)
		replacement.embeddings = append(replacement.embeddings, vec)
		replacement.norms = append(replacement.norms, vectorNorm(vec))
		replacement.documents = append(replacement.documents, doc)
		replacement.metadatas = append(replacement.metadatas, s.index.metadatas[i])
		replacement.ids = append(replacement.ids, s.index.ids[i])
	}

	s.index = replacement
	log.Printf("[VectorStore] Evicted %d old documents, retained %d", count-target, replacement.count())
}

// encodeAll embeds a batch of documents. An encoder failure degrades to
// all-default vectors instead of dropping the batch.
func (s *DocumentStore) encodeAll(documents []string) [][]float64 {
	embeddings, err := s.encoder.EmbedBatch(documents)
	if err == nil && len(embeddings) == len(documents) {
		return embeddings
	}
	if err != nil {
		log.Printf("[VectorStore] Embedding batch failed, using default vectors: %v", err)
		errlog.Logf("[VectorStore] batch embedding failed count=%d: %v", len(documents), err)
	}
	out := make([][]float64, len(documents))
	for i := range out {
		out[i] = make([]float64, s.encoder.Dimension())
	}
	return out
}

// encodeOne embeds a single document, degrading to the all-default vector
// on failure.
func (s *DocumentStore) encodeOne(document string) []float64 {
	vec, err := s.encoder.Embed(document)
	if err != nil {
		log.Printf("[VectorStore] Embedding failed, using default vector: %v", err)
		errlog.Logf("[VectorStore] document embedding failed: %v", err)
		return make([]float64, s.encoder.Dimension())
	}
	return vec
}

// saveLocked snapshots the current entry state. A save failure is logged
// and never aborts the completed in-memory mutation. Caller must hold at
// least the read lock.
func (s *DocumentStore) saveLocked() {
	documents, metadatas, ids := s.index.snapshotData()
	snap := snapshotFile{
		Documents: documents,
		Metadatas: metadatas,
		IDs:       ids,
		Timestamp: time.Now().Format(createdAtLayout),
		Count:     len(documents),
	}
	if err := writeSnapshot(s.snapshotPath, snap); err != nil {
		log.Printf("[VectorStore] Snapshot save failed: %v", err)
		errlog.Logf("[VectorStore] snapshot save failed: %v", err)
	}
}

// Query returns up to k documents most similar to text, most similar first.
// Scores are stripped from the results. An empty store yields an empty
// result and no error.
func (s *DocumentStore) Query(text string, k int) ([]QueryResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.index.count() == 0 {
		return nil, nil
	}

	vec, err := s.encoder.Embed(text)
	if err != nil {
		log.Printf("[VectorStore] Query embedding failed: %v", err)
		errlog.Logf("[VectorStore] query embedding failed: %v", err)
		return nil, nil
	}

	scored := s.index.query(vec, k)
	results := make([]QueryResult, len(scored))
	for i, r := range scored {
		results[i] = QueryResult{Document: r.Document, Metadata: r.Metadata}
	}
	return results, nil
}

// Stats reports the store state. It never fails; when the snapshot file
// cannot be inspected the size reads 0.
func (s *DocumentStore) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sizeKB float64
	if info, err := os.Stat(s.snapshotPath); err == nil {
		sizeKB = math.Round(float64(info.Size())/1024.0*100) / 100
	}

	return Stats{
		DocumentCount:    s.index.count(),
		MaxDocuments:     s.maxDocuments,
		BackupFileSizeKB: sizeKB,
		MemoryUsage:      "minimal (in-memory index)",
	}
}

// Count returns the number of stored documents.
func (s *DocumentStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.count()
}
