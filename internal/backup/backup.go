// Package backup provides backup and restore for the fashion RAG data directory.
//
// A backup is a single tar.gz of the files the service writes at runtime,
// plus a manifest describing what was captured. The WAL is checkpointed
// before the database file is copied so the copy is consistent on its own.
// Rotated error logs are operational state and are not included.
//
// Archive layout (tar.gz):
//
//	fashionrag.db            SQLite database (articles, rate limit state)
//	fashion_backup.json      vector store snapshot
//	config.json              system configuration (API keys stay encrypted)
//	encryption.key           AES key; without it a restored config is unreadable
//	sources.yaml             crawler source definitions
//	manifest.json            backup metadata, also saved alongside the archive
package backup

import (
	"archive/tar"
	"compress/gzip"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Manifest records backup metadata and is saved alongside the archive.
type Manifest struct {
	Timestamp         string         `json:"timestamp"`          // backup time (RFC3339)
	DataDir           string         `json:"data_dir"`           // original data directory path
	Files             []string       `json:"files"`              // archive entries in write order
	DBRowCounts       map[string]int `json:"db_row_counts"`      // table -> rows at backup time
	SnapshotDocuments int            `json:"snapshot_documents"` // documents in the vector snapshot
}

// Options configures a backup operation.
type Options struct {
	DataDir   string // data directory path (default "./data")
	OutputDir string // output directory for the archive (default ".")
}

// Result holds backup results.
type Result struct {
	ArchivePath  string
	ManifestPath string
	FilesWritten int
	BytesWritten int64
}

// dataFiles are the data directory entries captured by a backup, in the
// order they are written to the archive.
var dataFiles = []string{"fashionrag.db", "fashion_backup.json", "config.json", "encryption.key", "sources.yaml"}

// dataTables have their row counts recorded in the manifest so a restore
// can be sanity-checked against the state at backup time.
var dataTables = []string{"articles", "rate_limits"}

// Run executes a backup of the data directory.
func Run(db *sql.DB, opts Options) (*Result, error) {
	if opts.DataDir == "" {
		opts.DataDir = "./data"
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}

	// Checkpoint WAL so the copied database file is self-contained.
	if db != nil {
		if _, err := db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
			log.Printf("[Backup] WAL checkpoint failed: %v", err)
		}
	}

	now := time.Now()
	hostname, _ := os.Hostname()
	if hostname == "" {
		hostname = "local"
	}

	// Archive name: fashionrag_<hostname>_<timestamp>.tar.gz
	stamp := now.Format("20060102-150405")
	archiveName := fmt.Sprintf("fashionrag_%s_%s.tar.gz", hostname, stamp)
	manifestName := fmt.Sprintf("fashionrag_%s_%s.manifest.json", hostname, stamp)
	archivePath := filepath.Join(opts.OutputDir, archiveName)
	manifestPath := filepath.Join(opts.OutputDir, manifestName)

	manifest := &Manifest{
		Timestamp:   now.Format(time.RFC3339),
		DataDir:     opts.DataDir,
		Files:       []string{},
		DBRowCounts: make(map[string]int),
	}

	out, err := os.Create(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create archive: %w", err)
	}
	defer out.Close()

	gw := gzip.NewWriter(out)
	defer gw.Close()
	tw := tar.NewWriter(gw)
	defer tw.Close()

	result := &Result{ArchivePath: archivePath, ManifestPath: manifestPath}

	// 1. Data files. Absent ones are skipped: a store that has never
	// crawled has no snapshot yet.
	for _, name := range dataFiles {
		p := filepath.Join(opts.DataDir, name)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		n, err := addFileToTar(tw, p, name)
		if err != nil {
			return nil, fmt.Errorf("failed to add %s: %w", name, err)
		}
		manifest.Files = append(manifest.Files, name)
		result.BytesWritten += n
		result.FilesWritten++
	}

	// 2. Row counts for reference
	for _, t := range dataTables {
		if cnt, err := countRows(db, t); err == nil {
			manifest.DBRowCounts[t] = cnt
		}
	}
	manifest.SnapshotDocuments = snapshotDocumentCount(filepath.Join(opts.DataDir, "fashion_backup.json"))

	// 3. Embed manifest in archive
	manifestData, _ := json.MarshalIndent(manifest, "", "  ")
	if _, err := addBytesToTar(tw, manifestData, "manifest.json"); err != nil {
		return nil, fmt.Errorf("failed to embed manifest: %w", err)
	}

	// 4. Save manifest alongside archive
	if err := os.WriteFile(manifestPath, manifestData, 0644); err != nil {
		return nil, fmt.Errorf("failed to save manifest: %w", err)
	}

	return result, nil
}

// validTables is a whitelist of tables allowed in count queries.
var validTables = map[string]bool{"articles": true, "rate_limits": true}

// countRows returns the row count for a table.
func countRows(db *sql.DB, table string) (int, error) {
	if db == nil {
		return 0, fmt.Errorf("no database")
	}
	if !validTables[table] {
		return 0, fmt.Errorf("invalid table name: %s", table)
	}
	var n int
	err := db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&n)
	return n, err
}

// snapshotDocumentCount reads the count field from a vector store snapshot.
// A missing or unreadable snapshot counts as zero.
func snapshotDocumentCount(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	var snap struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return 0
	}
	return snap.Count
}

// Restore extracts a backup archive into the target data directory.
// Existing files are overwritten. The service must not be running against
// the target directory while a restore is in progress.
func Restore(archivePath, targetDir string) error {
	if targetDir == "" {
		targetDir = "./data"
	}
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return fmt.Errorf("failed to create target directory: %w", err)
	}

	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("failed to decompress archive: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	fileCount := 0
	var totalExtracted int64
	const maxTotalSize = 10 << 30 // total extraction limit
	const maxFileCount = 10000

	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read archive: %w", err)
		}

		target := filepath.Join(targetDir, filepath.FromSlash(header.Name))

		// Security: prevent path traversal
		if !strings.HasPrefix(filepath.Clean(target), filepath.Clean(targetDir)) {
			return fmt.Errorf("illegal path in archive: %s", header.Name)
		}

		// Security: reject symlinks to prevent symlink attacks
		if header.Typeflag == tar.TypeSymlink || header.Typeflag == tar.TypeLink {
			return fmt.Errorf("link entries are not allowed: %s", header.Name)
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf("failed to create directory: %w", err)
			}
			// Limit individual file size to keep decompression bounded
			if header.Size > 2<<30 {
				return fmt.Errorf("file too large in archive: %s (%d bytes)", header.Name, header.Size)
			}
			out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(header.Mode)&0755)
			if err != nil {
				return fmt.Errorf("failed to create file %s: %w", target, err)
			}
			if _, err := io.Copy(out, io.LimitReader(tr, header.Size+1)); err != nil {
				out.Close()
				return fmt.Errorf("failed to write file %s: %w", target, err)
			}
			out.Close()
			totalExtracted += header.Size
			if totalExtracted > maxTotalSize {
				return fmt.Errorf("archive exceeds total size limit")
			}
			fileCount++
			if fileCount > maxFileCount {
				return fmt.Errorf("archive exceeds file count limit (%d)", maxFileCount)
			}
		}
	}

	log.Printf("[Backup] Restored %d files to %s", fileCount, targetDir)
	return nil
}

// --- tar helpers ---

func addFileToTar(tw *tar.Writer, absPath, archiveName string) (int64, error) {
	info, err := os.Stat(absPath)
	if err != nil {
		return 0, err
	}
	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return 0, err
	}
	header.Name = archiveName

	if err := tw.WriteHeader(header); err != nil {
		return 0, err
	}
	f, err := os.Open(absPath)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	n, err := io.Copy(tw, f)
	return n, err
}

func addBytesToTar(tw *tar.Writer, data []byte, archiveName string) (int64, error) {
	header := &tar.Header{
		Name:    archiveName,
		Size:    int64(len(data)),
		Mode:    0644,
		ModTime: time.Now(),
	}
	if err := tw.WriteHeader(header); err != nil {
		return 0, err
	}
	n, err := tw.Write(data)
	return int64(n), err
}
